package rank

import "portal_final_backend/internal/consultation/domain"

// Dimensions collects the per-dimension RankingResults produced across C7
// and C9, plus whether each dimension actually had signal for this
// consultation. A dimension that is not applicable (budget-efficiency with
// no budget, couple-suitability for a single client, an AI ranker that
// degraded) still carries a neutral RankingResult for score computation,
// but reports nil in the final per-community rankings map (§8 invariant 2).
type Dimensions struct {
	rankings   map[string]domain.RankingResult
	applicable map[string]bool
}

// NewDimensions builds an empty Dimensions set.
func NewDimensions() *Dimensions {
	return &Dimensions{
		rankings:   make(map[string]domain.RankingResult, len(domain.AllDimensions)),
		applicable: make(map[string]bool, len(domain.AllDimensions)),
	}
}

// Set records one dimension's ranking and whether it had real signal.
func (d *Dimensions) Set(dimension string, ranking domain.RankingResult, applicable bool) {
	d.rankings[dimension] = ranking
	d.applicable[dimension] = applicable
}

// DefaultWeights returns weight 1.0 for every dimension (§4.9).
func DefaultWeights() map[string]float64 {
	w := make(map[string]float64, len(domain.AllDimensions))
	for _, d := range domain.AllDimensions {
		w[d] = 1.0
	}
	return w
}

// MergeWeights overlays custom weights onto the defaults, overriding only
// the named dimensions (§4.9 "Weights are configurable").
func MergeWeights(custom map[string]float64) map[string]float64 {
	w := DefaultWeights()
	for k, v := range custom {
		w[k] = v
	}
	return w
}

// CombinedScore computes Σ weight[d] * rank[d][id] over the given
// dimensions for each community id, substituting NeutralRank for any
// dimension/community pair missing from its RankingResult.
func (d *Dimensions) CombinedScore(ids []int, dimensions []string, weights map[string]float64) map[int]float64 {
	n := len(ids)
	out := make(map[int]float64, n)
	for _, id := range ids {
		var score float64
		for _, dim := range dimensions {
			rank := domain.NeutralRank(n)
			if r, ok := d.rankings[dim][id]; ok && r != nil {
				rank = *r
			}
			score += weights[dim] * rank
		}
		out[id] = score
	}
	return out
}

// RankFor returns a dimension's rank for a community, or nil if the
// dimension is not applicable for this consultation.
func (d *Dimensions) RankFor(dimension string, id int) *float64 {
	if !d.applicable[dimension] {
		return nil
	}
	return d.rankings[dimension][id]
}
