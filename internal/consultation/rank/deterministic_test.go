package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal_final_backend/internal/consultation/domain"
)

func TestBusiness_HigherScoreRanksBetter(t *testing.T) {
	candidates := []domain.Community{
		{CommunityID: 1, WillingnessScore: 10, ContractRate: 0.10},
		{CommunityID: 2, WillingnessScore: 0, ContractRate: 0.10},
	}
	result := Business(candidates)
	require.NotNil(t, result[1])
	require.NotNil(t, result[2])
	assert.Less(t, *result[1], *result[2])
}

func TestTotalCost_IncludesAmortizedUpfront(t *testing.T) {
	candidates := []domain.Community{
		{CommunityID: 1, MonthlyFee: 3000, Upfront: domain.UpfrontCosts{Deposit: 2400}},
		{CommunityID: 2, MonthlyFee: 3000},
	}
	result := TotalCost(candidates, false)
	assert.Greater(t, *result[1], *result[2])
}

func TestTotalCost_Tie(t *testing.T) {
	candidates := []domain.Community{
		{CommunityID: 1, MonthlyFee: 3000},
		{CommunityID: 2, MonthlyFee: 3000},
		{CommunityID: 3, MonthlyFee: 4000},
	}
	result := TotalCost(candidates, false)
	assert.Equal(t, 1.5, *result[1])
	assert.Equal(t, 1.5, *result[2])
	assert.Equal(t, 3.0, *result[3])
}

func TestBudgetEfficiency_NoBudgetIsNeutralAndNotApplicable(t *testing.T) {
	candidates := []domain.Community{{CommunityID: 1}, {CommunityID: 2}}
	result, applicable := BudgetEfficiency(candidates, nil)
	assert.False(t, applicable)
	assert.Equal(t, domain.NeutralRank(2), *result[1])
	assert.Equal(t, domain.NeutralRank(2), *result[2])
}

func TestBudgetEfficiency_WithBudgetRanksLowerUtilizationBetter(t *testing.T) {
	budget := 5000.0
	candidates := []domain.Community{
		{CommunityID: 1, MonthlyFee: 2500},
		{CommunityID: 2, MonthlyFee: 4900},
	}
	result, applicable := BudgetEfficiency(candidates, &budget)
	assert.True(t, applicable)
	assert.Less(t, *result[1], *result[2])
}

func TestCoupleSuitability_NotCoupleIsNeutral(t *testing.T) {
	candidates := []domain.Community{{CommunityID: 1}, {CommunityID: 2}}
	result, applicable := CoupleSuitability(candidates, false)
	assert.False(t, applicable)
	assert.Equal(t, domain.NeutralRank(2), *result[1])
}

func TestCoupleSuitability_LowerFeeRanksBetter(t *testing.T) {
	candidates := []domain.Community{
		{CommunityID: 1, Upfront: domain.UpfrontCosts{SecondPersonFee: 500, SecondPersonFeeKnown: true}},
		{CommunityID: 2, Upfront: domain.UpfrontCosts{SecondPersonFee: 1000, SecondPersonFeeKnown: true}},
	}
	result, applicable := CoupleSuitability(candidates, true)
	assert.True(t, applicable)
	assert.Less(t, *result[1], *result[2])
}

func TestCoupleSuitability_UnknownFeeTreatedAsWorst(t *testing.T) {
	candidates := []domain.Community{
		{CommunityID: 1, Upfront: domain.UpfrontCosts{SecondPersonFee: 500, SecondPersonFeeKnown: true}},
		{CommunityID: 2}, // fee unknown
	}
	result, _ := CoupleSuitability(candidates, true)
	assert.Less(t, *result[1], *result[2])
}
