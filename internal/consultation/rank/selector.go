package rank

import (
	"sort"

	"portal_final_backend/internal/consultation/domain"
)

const maxShortlistSize = 10

// deterministicDimensions are the five dimensions available before the
// AI rankers run (§4.7).
var deterministicDimensions = []string{
	domain.DimensionBusiness,
	domain.DimensionCost,
	domain.DimensionDistance,
	domain.DimensionBudgetEfficiency,
	domain.DimensionCouple,
}

// SelectShortlist computes a preliminary combined score over the five
// deterministic dimensions using default weights, sorts ascending, and
// retains the first min(shortlistSize, N) communities (§4.7 "Top-K
// Selector"). shortlistSize is configurable; the spec's default is 10.
func SelectShortlist(candidates []domain.Community, dims *Dimensions, shortlistSize int) []domain.Community {
	if shortlistSize <= 0 {
		shortlistSize = maxShortlistSize
	}

	ids := make([]int, len(candidates))
	byID := make(map[int]domain.Community, len(candidates))
	for i, c := range candidates {
		ids[i] = c.CommunityID
		byID[c.CommunityID] = c
	}

	scores := dims.CombinedScore(ids, deterministicDimensions, DefaultWeights())

	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] < scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if shortlistSize > len(ids) {
		shortlistSize = len(ids)
	}
	out := make([]domain.Community, shortlistSize)
	for i := 0; i < shortlistSize; i++ {
		out[i] = byID[ids[i]]
	}
	return out
}
