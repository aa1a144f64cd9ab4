package rank

import (
	"fmt"
	"sort"

	"portal_final_backend/internal/consultation/domain"
)

// AggregateInput carries everything the aggregator needs per community
// beyond its rank vector, for key_metrics and deterministic explanations
// (§3 "Recommendation", §4.9).
type AggregateInput struct {
	Community     domain.Community
	DistanceMiles *float64
	HasPet        bool
}

// ExplanationFunc produces an AI ranker's per-community rationale, already
// returned by the LLM call (§4.9 "AI rankers' explanations come from the
// rationale field").
type ExplanationFunc func(dimension string, communityID int) (string, bool)

// Aggregate runs the weighted Borda count (§4.9): combines all eight
// per-dimension ranks, sorts ascending, breaks ties by (holistic rank,
// distance rank, community_id), and returns up to 5 recommendations with
// per-dimension explanations.
func Aggregate(inputs []AggregateInput, dims *Dimensions, weights map[string]float64, aiExplanations ExplanationFunc) []domain.Recommendation {
	ids := make([]int, len(inputs))
	byID := make(map[int]AggregateInput, len(inputs))
	for i, in := range inputs {
		ids[i] = in.Community.CommunityID
		byID[in.Community.CommunityID] = in
	}

	scores := dims.CombinedScore(ids, domain.AllDimensions, weights)

	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if scores[a] != scores[b] {
			return scores[a] < scores[b]
		}
		if d := compareRank(dims.RankFor(domain.DimensionHolistic, a), dims.RankFor(domain.DimensionHolistic, b)); d != 0 {
			return d < 0
		}
		if d := compareRank(dims.RankFor(domain.DimensionDistance, a), dims.RankFor(domain.DimensionDistance, b)); d != 0 {
			return d < 0
		}
		return a < b
	})

	limit := 5
	if limit > len(ids) {
		limit = len(ids)
	}

	out := make([]domain.Recommendation, limit)
	for i := 0; i < limit; i++ {
		id := ids[i]
		in := byID[id]
		out[i] = domain.Recommendation{
			FinalRank:         i + 1,
			CommunityID:       id,
			CombinedRankScore: scores[id],
			Rankings:          buildRankings(dims, id),
			Explanations:      buildExplanations(dims, in, aiExplanations),
			MonthlyFee:        in.Community.MonthlyFee,
			DistanceMiles:     in.DistanceMiles,
			EstWaitlist:       in.Community.WaitlistStatus,
		}
	}
	return out
}

// compareRank orders two possibly-nil ranks; nil (not applicable) sorts
// after any real value, since a missing tiebreaker signal shouldn't win a
// tie.
func compareRank(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func buildRankings(dims *Dimensions, id int) map[string]*float64 {
	out := make(map[string]*float64, len(domain.AllDimensions))
	for _, dim := range domain.AllDimensions {
		out[dim] = dims.RankFor(dim, id)
	}
	return out
}

func buildExplanations(dims *Dimensions, in AggregateInput, aiExplanations ExplanationFunc) map[string]string {
	c := in.Community
	out := map[string]string{
		domain.DimensionBusiness: fmt.Sprintf("%.0f%% willingness at %.0f%% contract rate", float64(c.WillingnessScore)*10, c.ContractRate*100),
		domain.DimensionCost:     fmt.Sprintf("$%.0f/month + $%.0f amortized upfront", c.MonthlyFee, c.AmortizedUpfront(in.HasPet)),
	}

	if dims.RankFor(domain.DimensionDistance, c.CommunityID) != nil && in.DistanceMiles != nil {
		out[domain.DimensionDistance] = fmt.Sprintf("%.2f miles from ZIP %s", *in.DistanceMiles, c.ZIPCode)
	} else {
		out[domain.DimensionDistance] = "distance unknown"
	}

	if r := dims.RankFor(domain.DimensionBudgetEfficiency, c.CommunityID); r != nil {
		out[domain.DimensionBudgetEfficiency] = "within stated budget efficiency"
	} else {
		out[domain.DimensionBudgetEfficiency] = "no budget supplied"
	}

	if r := dims.RankFor(domain.DimensionCouple, c.CommunityID); r != nil {
		out[domain.DimensionCouple] = fmt.Sprintf("second-person fee $%.0f", c.Upfront.SecondPersonFee)
	} else {
		out[domain.DimensionCouple] = "not applicable"
	}

	for _, dim := range []string{domain.DimensionAvailability, domain.DimensionAmenity, domain.DimensionHolistic} {
		if dims.RankFor(dim, c.CommunityID) == nil {
			out[dim] = "Not ranked by AI"
			continue
		}
		if aiExplanations != nil {
			if text, ok := aiExplanations(dim, c.CommunityID); ok {
				out[dim] = text
				continue
			}
		}
		out[dim] = ""
	}

	return out
}
