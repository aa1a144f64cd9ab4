package airank

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/internal/consultation/rank"
	"portal_final_backend/platform/apperr"
)

func emptyDims() *rank.Dimensions {
	return rank.NewDimensions()
}

type stubRankClient struct {
	onCall func(req llm.RankRequest) (llm.RankResult, error)
}

func (s *stubRankClient) Rank(ctx context.Context, req llm.RankRequest) (llm.RankResult, error) {
	return s.onCall(req)
}

func TestRun_AllSucceed(t *testing.T) {
	shortlist := []domain.Community{{CommunityID: 1}, {CommunityID: 2}}
	client := &stubRankClient{onCall: func(req llm.RankRequest) (llm.RankResult, error) {
		return llm.RankResult{
			OrderedCommunityIDs: []int{2, 1},
			Explanations:        map[string]string{"2": "great fit", "1": "ok fit"},
		}, nil
	}}

	results := Run(context.Background(), shortlist, domain.ClientRequirements{}, emptyDims(), client)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Applicable)
		assert.False(t, r.Degraded)
		assert.Equal(t, 1.0, *r.Ranking[2])
		assert.Equal(t, 2.0, *r.Ranking[1])
	}
}

func TestRun_OneDegradedDoesNotAffectOthers(t *testing.T) {
	shortlist := []domain.Community{{CommunityID: 1}, {CommunityID: 2}}
	client := &stubRankClient{onCall: func(req llm.RankRequest) (llm.RankResult, error) {
		if req.Dimension == domain.DimensionHolistic {
			return llm.RankResult{}, apperr.LLMUnavailable("down")
		}
		return llm.RankResult{OrderedCommunityIDs: []int{1, 2}}, nil
	}}

	results := Run(context.Background(), shortlist, domain.ClientRequirements{}, emptyDims(), client)

	byDim := make(map[string]Result, len(results))
	for _, r := range results {
		byDim[r.Dimension] = r
	}

	holistic := byDim[domain.DimensionHolistic]
	assert.True(t, holistic.Degraded)
	assert.False(t, holistic.Applicable)
	assert.Equal(t, domain.NeutralRank(2), *holistic.Ranking[1])
	assert.Equal(t, "Not ranked by AI", holistic.Explanations[1])

	availability := byDim[domain.DimensionAvailability]
	assert.True(t, availability.Applicable)
	assert.False(t, availability.Degraded)
}

func TestNormalizeOrdering_MissingIDsTiedAtEnd(t *testing.T) {
	out := normalizeOrdering([]int{1, 2, 3}, []int{1})
	assert.Equal(t, 1.0, *out[1])
	assert.Equal(t, 2.5, *out[2])
	assert.Equal(t, 2.5, *out[3])
}

func TestNormalizeOrdering_IgnoresUnknownAndDuplicateIDs(t *testing.T) {
	out := normalizeOrdering([]int{1, 2}, []int{99, 1, 1, 2})
	assert.Equal(t, 1.0, *out[1])
	assert.Equal(t, 2.0, *out[2])
}

func TestRun_GenericErrorAlsoDegrades(t *testing.T) {
	shortlist := []domain.Community{{CommunityID: 1}}
	client := &stubRankClient{onCall: func(req llm.RankRequest) (llm.RankResult, error) {
		return llm.RankResult{}, errors.New("boom")
	}}

	results := Run(context.Background(), shortlist, domain.ClientRequirements{}, emptyDims(), client)
	for _, r := range results {
		assert.True(t, r.Degraded)
	}
}

func TestRun_HolisticInstructionCarriesPriorDeterministicRanks(t *testing.T) {
	shortlist := []domain.Community{{CommunityID: 1}, {CommunityID: 2}}

	dims := rank.NewDimensions()
	dims.Set(domain.DimensionBusiness, domain.RankingResult{1: domain.Rank(1), 2: domain.Rank(2)}, true)
	dims.Set(domain.DimensionCost, domain.RankingResult{1: domain.Rank(2), 2: domain.Rank(1)}, true)

	var holisticInstruction string
	client := &stubRankClient{onCall: func(req llm.RankRequest) (llm.RankResult, error) {
		if req.Dimension == domain.DimensionHolistic {
			holisticInstruction = req.Instruction
		}
		return llm.RankResult{OrderedCommunityIDs: []int{1, 2}}, nil
	}}

	Run(context.Background(), shortlist, domain.ClientRequirements{}, dims, client)

	assert.Contains(t, holisticInstruction, "business=1.00")
	assert.Contains(t, holisticInstruction, "cost=2.00")
	assert.Contains(t, holisticInstruction, "id=1")
	assert.Contains(t, holisticInstruction, "id=2")
	assert.Contains(t, holisticInstruction, "couple=n/a")
}
