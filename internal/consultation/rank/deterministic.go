package rank

import (
	"math"

	"portal_final_backend/internal/consultation/domain"
)

// Business ranks communities descending by willingness_score * contract_rate
// (§4.6 "Business-value ranker").
func Business(candidates []domain.Community) domain.RankingResult {
	scored := make([]scoredCommunity, len(candidates))
	for i, c := range candidates {
		scored[i] = scoredCommunity{id: c.CommunityID, score: float64(c.WillingnessScore) * c.ContractRate}
	}
	return rankDescending(scored)
}

// TotalCost ranks communities ascending by monthly_fee + amortized_upfront
// (§4.6 "Total-cost ranker").
func TotalCost(candidates []domain.Community, hasPet bool) domain.RankingResult {
	scored := make([]scoredCommunity, len(candidates))
	for i, c := range candidates {
		scored[i] = scoredCommunity{id: c.CommunityID, score: c.MonthlyFee + c.AmortizedUpfront(hasPet)}
	}
	return rankAscending(scored)
}

// BudgetEfficiency ranks communities ascending by monthly_fee/budget_monthly
// utilization when a budget is present; otherwise every community receives
// the neutral rank and the dimension is reported not applicable, so it
// contributes no signal beyond the Borda-invariant neutral (§4.6
// "Budget-efficiency ranker", §9 "neutral rank choice").
func BudgetEfficiency(candidates []domain.Community, budgetMonthly *float64) (domain.RankingResult, bool) {
	ids := communityIDs(candidates)
	if budgetMonthly == nil || *budgetMonthly <= 0 {
		return neutralResult(ids), false
	}
	scored := make([]scoredCommunity, len(candidates))
	for i, c := range candidates {
		scored[i] = scoredCommunity{id: c.CommunityID, score: c.MonthlyFee / *budgetMonthly}
	}
	return rankAscending(scored), true
}

// CoupleSuitability ranks communities ascending by second_person_fee (missing
// treated as +Inf) when the client is a couple; otherwise every community
// is neutral and the dimension is reported not applicable (§4.6
// "Couple-suitability ranker").
func CoupleSuitability(candidates []domain.Community, isCouple bool) (domain.RankingResult, bool) {
	ids := communityIDs(candidates)
	if !isCouple {
		return neutralResult(ids), false
	}
	scored := make([]scoredCommunity, len(candidates))
	for i, c := range candidates {
		fee := math.Inf(1)
		if c.Upfront.SecondPersonFeeKnown {
			fee = c.Upfront.SecondPersonFee
		}
		scored[i] = scoredCommunity{id: c.CommunityID, score: fee}
	}
	return rankAscending(scored), true
}

func communityIDs(candidates []domain.Community) []int {
	ids := make([]int, len(candidates))
	for i, c := range candidates {
		ids[i] = c.CommunityID
	}
	return ids
}
