// Package catalog implements the Catalog Store (C1): an in-memory,
// immutable-per-snapshot view over the community catalog, loaded once from
// a tabular workbook (§4.1, §6).
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/platform/apperr"
)

// Store holds the catalog in memory behind a read/write lock. Reads take a
// point-in-time snapshot; a write re-derives the normalized fields of the
// mutated row only and drops the cached snapshot, which the next read
// rebuilds, matching §5's "writer lock, publish a new snapshot" policy.
type Store struct {
	mu          sync.RWMutex
	communities map[int]domain.Community
	snapshot    []domain.Community // cache, nil forces a rebuild
}

// NewStore builds a Store from already-normalized communities (typically
// the output of LoadWorkbook).
func NewStore(communities []domain.Community) *Store {
	s := &Store{communities: make(map[int]domain.Community, len(communities))}
	for _, c := range communities {
		s.communities[c.CommunityID] = c
	}
	return s
}

// Snapshot returns the immutable view to use for the duration of one
// consultation (§5 "Shared-resource policy").
func (s *Store) Snapshot() []domain.Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		s.snapshot = s.rebuildLocked()
	}
	out := make([]domain.Community, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

func (s *Store) rebuildLocked() []domain.Community {
	out := make([]domain.Community, 0, len(s.communities))
	for _, c := range s.communities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CommunityID < out[j].CommunityID })
	return out
}

// All returns every community in the catalog.
func (s *Store) All() []domain.Community {
	return s.Snapshot()
}

// Filter returns the communities matching predicate.
func (s *Store) Filter(predicate func(domain.Community) bool) []domain.Community {
	all := s.Snapshot()
	out := make([]domain.Community, 0, len(all))
	for _, c := range all {
		if predicate(c) {
			out = append(out, c)
		}
	}
	return out
}

// Get returns a single community by id.
func (s *Store) Get(id int) (domain.Community, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.communities[id]
	return c, ok
}

// Upsert adds or replaces a community row, re-running normalization derived
// fields for it, and invalidates the cached snapshot.
func (s *Store) Upsert(c domain.Community) error {
	if c.CommunityID == 0 {
		return apperr.Validation("community_id is required")
	}
	if !domain.IsKnownCareLevel(c.CareLevel) {
		return apperr.Validation("invalid care_level")
	}
	if c.MonthlyFee < 0 {
		return apperr.Validation("monthly_fee must be non-negative")
	}
	if c.ZIPCode != "" && !zipPattern.MatchString(c.ZIPCode) {
		return apperr.Validation("zip_code must match ^\\d{5}$")
	}

	c.ApartmentTypeCategory = normalizeApartmentType(c.ApartmentTypeCategory)
	c.AvailabilityScore = waitlistToAvailability(c.WaitlistStatus)
	c.WillingnessScore = willingnessScore(c.WorksWithPlacement)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.communities[c.CommunityID] = c
	s.snapshot = nil
	return nil
}

// Delete removes a community by id.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.communities[id]; !ok {
		return apperr.NotFound(fmt.Sprintf("community %d not found", id))
	}
	delete(s.communities, id)
	s.snapshot = nil
	return nil
}

// Stats summarizes the catalog for the /api/stats endpoint (§6).
type Stats struct {
	TotalCommunities int
	ByCareLevel      map[string]int
	AverageMonthlyFee float64
	WorkingWithPlacement int
}

// Stats computes aggregate catalog statistics.
func (s *Store) Stats() Stats {
	all := s.Snapshot()
	stats := Stats{TotalCommunities: len(all), ByCareLevel: make(map[string]int)}
	var feeSum float64
	for _, c := range all {
		stats.ByCareLevel[c.CareLevel]++
		feeSum += c.MonthlyFee
		if c.WorksWithPlacement {
			stats.WorkingWithPlacement++
		}
	}
	if len(all) > 0 {
		stats.AverageMonthlyFee = feeSum / float64(len(all))
	}
	return stats
}
