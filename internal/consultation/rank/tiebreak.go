// Package rank implements the Deterministic Rankers (C7), the Top-K
// Selector (C8), and the Rank Aggregator (C10): §4.6, §4.7, §4.9.
package rank

import (
	"sort"

	"portal_final_backend/internal/consultation/domain"
)

// scoredCommunity pairs a community id with a float score for one
// dimension. Every scored entry is ranked; a ranker with no signal skips
// scoring and uses neutralResult instead.
type scoredCommunity struct {
	id    int
	score float64
}

// rankAscending assigns rank 1 to the lowest score, using average-rank tie
// handling: t items tied starting at position k all receive k+(t-1)/2
// (§GLOSSARY "Average-rank tie handling").
func rankAscending(scored []scoredCommunity) domain.RankingResult {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score < scored[j].score
		}
		return scored[i].id < scored[j].id
	})

	out := make(domain.RankingResult, len(scored))
	i := 0
	for i < len(scored) {
		j := i
		for j < len(scored) && scored[j].score == scored[i].score {
			j++
		}
		tieCount := j - i
		avgRank := float64(i+1) + float64(tieCount-1)/2
		for k := i; k < j; k++ {
			out[scored[k].id] = domain.Rank(avgRank)
		}
		i = j
	}
	return out
}

// rankDescending ranks the highest score as rank 1 (used by the
// business-value ranker, where a higher score is better).
func rankDescending(scored []scoredCommunity) domain.RankingResult {
	negated := make([]scoredCommunity, len(scored))
	for i, s := range scored {
		negated[i] = scoredCommunity{id: s.id, score: -s.score}
	}
	return rankAscending(negated)
}

// rankAscendingWithTrailingUnknown ranks known scores ascending 1..len(known),
// then appends unknownIDs as one tied block at the trailing positions
// (§4.6 distance ranker: "unknown distances sort to the end, averaged-tied
// among themselves").
func rankAscendingWithTrailingUnknown(known []scoredCommunity, unknownIDs []int) domain.RankingResult {
	out := rankAscending(known)
	if len(unknownIDs) == 0 {
		return out
	}
	start := len(known) + 1
	avgRank := float64(start) + float64(len(unknownIDs)-1)/2
	for _, id := range unknownIDs {
		out[id] = domain.Rank(avgRank)
	}
	return out
}

// neutralResult assigns domain.NeutralRank(n) to every id, used when a
// ranker has no signal to contribute (§4.6 budget-efficiency/couple,
// §4.8 AI ranker degraded to neutral).
func neutralResult(ids []int) domain.RankingResult {
	out := make(domain.RankingResult, len(ids))
	neutral := domain.NeutralRank(len(ids))
	for _, id := range ids {
		out[id] = domain.Rank(neutral)
	}
	return out
}
