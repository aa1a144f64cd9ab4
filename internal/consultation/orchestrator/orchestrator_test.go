package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal_final_backend/internal/consultation/airank"
	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/extract"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/platform/apperr"
)

type stubStore struct{ communities []domain.Community }

func (s *stubStore) Snapshot() []domain.Community { return s.communities }

type stubExtractor struct {
	result extract.Result
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, input llm.ExtractionInput) (extract.Result, error) {
	return s.result, s.err
}

type stubDistanceResolver struct{}

func (stubDistanceResolver) DistanceMiles(ctx context.Context, fromZIP, toZIP string) (float64, error) {
	return 1.0, nil
}

type stubAIClient struct{}

func (stubAIClient) Rank(ctx context.Context, req llm.RankRequest) (llm.RankResult, error) {
	return llm.RankResult{OrderedCommunityIDs: []int{1, 2}}, nil
}

func baseConfig() Config {
	return Config{BudgetTolerance: 1.0, ShortlistSize: 10, OverallBudget: 5 * time.Second}
}

func TestProcess_HappyPath(t *testing.T) {
	store := &stubStore{communities: []domain.Community{
		{CommunityID: 1, CareLevel: domain.CareLevelAssistedLiving, MonthlyFee: 4000, ZIPCode: "02139"},
		{CommunityID: 2, CareLevel: domain.CareLevelAssistedLiving, MonthlyFee: 4500, ZIPCode: "02108"},
	}}
	extractor := &stubExtractor{result: extract.Result{Requirements: domain.ClientRequirements{
		CareLevel: domain.CareLevelAssistedLiving, ResolvedZIPCode: "02139",
	}}}

	o := New(store, extractor, stubDistanceResolver{}, stubAIClient{}, baseConfig(), nil)

	result, err := o.Process(context.Background(), llm.ExtractionInput{Text: "x"}, Options{})
	require.NoError(t, err)
	assert.False(t, result.NoMatches)
	assert.Len(t, result.Recommendations, 2)
	assert.NotEmpty(t, result.ConsultationID)
}

func TestProcess_ExtractionFailurePropagates(t *testing.T) {
	store := &stubStore{}
	extractor := &stubExtractor{err: apperr.Extraction("no care level")}
	o := New(store, extractor, stubDistanceResolver{}, stubAIClient{}, baseConfig(), nil)

	_, err := o.Process(context.Background(), llm.ExtractionInput{Text: "x"}, Options{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindExtraction, apperr.GetKind(err))
}

func TestProcess_NoMatchesAfterFilter(t *testing.T) {
	store := &stubStore{communities: []domain.Community{
		{CommunityID: 1, CareLevel: domain.CareLevelIndependentLiving},
	}}
	extractor := &stubExtractor{result: extract.Result{Requirements: domain.ClientRequirements{
		CareLevel: domain.CareLevelMemoryCare,
	}}}
	o := New(store, extractor, stubDistanceResolver{}, stubAIClient{}, baseConfig(), nil)

	result, err := o.Process(context.Background(), llm.ExtractionInput{Text: "x"}, Options{})
	require.NoError(t, err)
	assert.True(t, result.NoMatches)
	assert.Empty(t, result.Recommendations)
}

func TestProcess_AIRankerDegradationSurfacesInMetrics(t *testing.T) {
	store := &stubStore{communities: []domain.Community{
		{CommunityID: 1, CareLevel: domain.CareLevelAssistedLiving, ZIPCode: "02139"},
	}}
	extractor := &stubExtractor{result: extract.Result{Requirements: domain.ClientRequirements{
		CareLevel: domain.CareLevelAssistedLiving, ResolvedZIPCode: "02139",
	}}}
	failingAI := aiClientFunc(func(ctx context.Context, req llm.RankRequest) (llm.RankResult, error) {
		return llm.RankResult{}, apperr.LLMUnavailable("down")
	})
	o := New(store, extractor, stubDistanceResolver{}, failingAI, baseConfig(), nil)

	result, err := o.Process(context.Background(), llm.ExtractionInput{Text: "x"}, Options{})
	require.NoError(t, err)
	assert.Len(t, result.Metrics.AIRankerDegraded, 3)
	assert.Equal(t, "Not ranked by AI", result.Recommendations[0].Explanations[domain.DimensionHolistic])
}

type aiClientFunc func(ctx context.Context, req llm.RankRequest) (llm.RankResult, error)

func (f aiClientFunc) Rank(ctx context.Context, req llm.RankRequest) (llm.RankResult, error) {
	return f(ctx, req)
}

var _ airank.RankClient = aiClientFunc(nil)
