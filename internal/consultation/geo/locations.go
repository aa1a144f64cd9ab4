package geo

import (
	"encoding/json"
	"os"
	"regexp"
	"sort"
	"strings"
)

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// LocalityEntry pairs a curated phrase with the postal code it resolves to
// (§4.3, §9 design note).
type LocalityEntry struct {
	Phrase     string `json:"phrase"`
	PostalCode string `json:"postal_code"`
}

// LocationResolver is C3: it turns a client's free-text location
// preference into a postal code, either by recognizing it as a bare ZIP or
// by longest-match against a curated phrase table.
type LocationResolver struct {
	entries []LocalityEntry // sorted longest-phrase-first
}

// LoadLocationResolver reads the curated phrase table from a JSON file
// (CatalogConfig.GetLocalityTablePath).
func LoadLocationResolver(path string) (*LocationResolver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []LocalityEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return NewLocationResolver(entries), nil
}

// NewLocationResolver builds a resolver from already-loaded entries,
// normalizing and ordering them for longest-match lookup.
func NewLocationResolver(entries []LocalityEntry) *LocationResolver {
	normalized := make([]LocalityEntry, 0, len(entries))
	for _, e := range entries {
		normalized = append(normalized, LocalityEntry{
			Phrase:     normalizePhrase(e.Phrase),
			PostalCode: e.PostalCode,
		})
	}
	sort.Slice(normalized, func(i, j int) bool {
		return len(normalized[i].Phrase) > len(normalized[j].Phrase)
	})
	return &LocationResolver{entries: normalized}
}

// Resolve returns the postal code for a free-text location preference, or
// "", false if it has no match. A 5-digit ZIP always passes through
// unchanged (returned with true), taking priority over phrase matching.
func (r *LocationResolver) Resolve(locationPreference string) (string, bool) {
	trimmed := strings.TrimSpace(locationPreference)
	if zipPattern.MatchString(trimmed) {
		return trimmed, true
	}

	normalized := normalizePhrase(trimmed)
	if normalized == "" {
		return "", false
	}
	for _, e := range r.entries {
		if e.Phrase != "" && strings.Contains(normalized, e.Phrase) {
			return e.PostalCode, true
		}
	}
	return "", false
}

func normalizePhrase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}
