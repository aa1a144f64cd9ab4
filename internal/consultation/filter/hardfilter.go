// Package filter implements the Hard Filter (C6): the conservative
// eliminate-only stage between extraction and ranking (§4.5).
package filter

import (
	"portal_final_backend/internal/consultation/domain"
)

const (
	timelineImmediateMaxAvailability = 20
	timelineNearTermMaxAvailability  = 60
)

// Apply returns the subset of candidates satisfying every hard condition.
// tolerance scales the budget check (monthly_fee <= budget * tolerance); the
// spec's default is 1.00, configurable per PipelineConfig.
func Apply(candidates []domain.Community, req domain.ClientRequirements, tolerance float64) []domain.Community {
	out := make([]domain.Community, 0, len(candidates))
	for _, c := range candidates {
		if passes(c, req, tolerance) {
			out = append(out, c)
		}
	}
	return out
}

func passes(c domain.Community, req domain.ClientRequirements, tolerance float64) bool {
	if c.CareLevel != req.CareLevel {
		return false
	}
	if req.NeedsEnhanced && !c.Enhanced {
		return false
	}
	if req.NeedsEnriched && !c.Enriched {
		return false
	}
	if req.HasBudget() && c.MonthlyFee > *req.BudgetMonthly*tolerance {
		return false
	}
	switch req.Timeline {
	case domain.TimelineImmediate:
		if c.AvailabilityScore > timelineImmediateMaxAvailability {
			return false
		}
	case domain.TimelineNearTerm:
		if c.AvailabilityScore > timelineNearTermMaxAvailability {
			return false
		}
	}
	return true
}
