package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portal_final_backend/internal/consultation/domain"
)

func budget(v float64) *float64 { return &v }

func TestApply_BudgetBoundary(t *testing.T) {
	req := domain.ClientRequirements{CareLevel: domain.CareLevelAssistedLiving, BudgetMonthly: budget(5000)}
	candidates := []domain.Community{
		{CommunityID: 1, CareLevel: domain.CareLevelAssistedLiving, MonthlyFee: 5000},
		{CommunityID: 2, CareLevel: domain.CareLevelAssistedLiving, MonthlyFee: 5001},
	}

	out := Apply(candidates, req, 1.0)

	assert.Len(t, out, 1)
	assert.Equal(t, 1, out[0].CommunityID)
}

func TestApply_TimelineBoundary(t *testing.T) {
	req := domain.ClientRequirements{CareLevel: domain.CareLevelIndependentLiving, Timeline: domain.TimelineNearTerm}
	candidates := []domain.Community{
		{CommunityID: 1, CareLevel: domain.CareLevelIndependentLiving, AvailabilityScore: 60},
		{CommunityID: 2, CareLevel: domain.CareLevelIndependentLiving, AvailabilityScore: 61},
	}

	out := Apply(candidates, req, 1.0)

	assert.Len(t, out, 1)
	assert.Equal(t, 1, out[0].CommunityID)
}

func TestApply_CareLevelMismatchExcluded(t *testing.T) {
	req := domain.ClientRequirements{CareLevel: domain.CareLevelMemoryCare}
	candidates := []domain.Community{{CommunityID: 1, CareLevel: domain.CareLevelAssistedLiving}}

	out := Apply(candidates, req, 1.0)

	assert.Empty(t, out)
}

func TestApply_EnhancedRequirement(t *testing.T) {
	req := domain.ClientRequirements{CareLevel: domain.CareLevelMemoryCare, NeedsEnhanced: true}
	candidates := []domain.Community{
		{CommunityID: 1, CareLevel: domain.CareLevelMemoryCare, Enhanced: false},
		{CommunityID: 2, CareLevel: domain.CareLevelMemoryCare, Enhanced: true},
	}

	out := Apply(candidates, req, 1.0)

	assert.Len(t, out, 1)
	assert.Equal(t, 2, out[0].CommunityID)
}

func TestApply_NoBudgetDoesNotFilterOnFee(t *testing.T) {
	req := domain.ClientRequirements{CareLevel: domain.CareLevelIndependentLiving}
	candidates := []domain.Community{{CommunityID: 1, CareLevel: domain.CareLevelIndependentLiving, MonthlyFee: 999999}}

	out := Apply(candidates, req, 1.0)

	assert.Len(t, out, 1)
}

func TestApply_EmptyResultWhenNoneSurvive(t *testing.T) {
	req := domain.ClientRequirements{CareLevel: domain.CareLevelMemoryCare}
	out := Apply(nil, req, 1.0)
	assert.Empty(t, out)
}
