// Package orchestrator implements the Pipeline Orchestrator (C11): the one
// long-lived actor per consultation, driving C5 through C10 and returning a
// single ConsultationResult (§4.10).
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"portal_final_backend/internal/consultation/airank"
	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/extract"
	"portal_final_backend/internal/consultation/filter"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/internal/consultation/rank"
	"portal_final_backend/platform/apperr"
	"portal_final_backend/platform/logger"
)

// CatalogSnapshotter is the subset of the Catalog Store (C1) the
// orchestrator depends on.
type CatalogSnapshotter interface {
	Snapshot() []domain.Community
}

// Extractor is the subset of C5 the orchestrator depends on.
type Extractor interface {
	Extract(ctx context.Context, input llm.ExtractionInput) (extract.Result, error)
}

// Config carries the PipelineConfig and PricingConfig values the
// orchestrator needs.
type Config struct {
	BudgetTolerance     float64
	ShortlistSize       int
	OverallBudget       time.Duration
	InputTokenPriceUSD  float64
	OutputTokenPriceUSD float64
}

// Orchestrator is C11.
type Orchestrator struct {
	store     CatalogSnapshotter
	extractor Extractor
	geocoder  rank.DistanceResolver
	aiClient  airank.RankClient
	cfg       Config
	log       *logger.Logger
}

func New(store CatalogSnapshotter, extractor Extractor, geocoder rank.DistanceResolver, aiClient airank.RankClient, cfg Config, log *logger.Logger) *Orchestrator {
	return &Orchestrator{store: store, extractor: extractor, geocoder: geocoder, aiClient: aiClient, cfg: cfg, log: log}
}

// Options holds per-call overrides; a caller may supply custom weights for
// named dimensions (§4.9).
type Options struct {
	Weights map[string]float64
}

// Process runs one consultation end to end (§4.10 "One operation").
func (o *Orchestrator) Process(ctx context.Context, input llm.ExtractionInput, opts Options) (domain.ConsultationResult, error) {
	consultationID := uuid.New().String()
	stage := domain.StageCreated
	metrics := newMetricsAccumulator(o.cfg.InputTokenPriceUSD, o.cfg.OutputTokenPriceUSD)

	budget := o.cfg.OverallBudget
	if budget <= 0 {
		budget = 180 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	if o.log != nil {
		o.log.PhaseStarted(consultationID, domain.StageExtracting)
	}
	stage = advance(stage, domain.StageExtracting)
	extractStart := time.Now()
	extracted, err := o.extractor.Extract(ctx, input)
	metrics.record(domain.StageExtracting, time.Since(extractStart), extracted.Metrics)
	if err != nil {
		stage = domain.StageFailed
		if o.log != nil {
			o.log.PhaseCompleted(consultationID, string(stage), float64(time.Since(extractStart).Milliseconds()))
		}
		return domain.ConsultationResult{ConsultationID: consultationID, Metrics: metrics.finish()}, err
	}
	req := extracted.Requirements

	stage = advance(stage, domain.StageFiltering)
	filterStart := time.Now()
	snapshot := o.store.Snapshot()
	filtered := filter.Apply(snapshot, req, o.budgetTolerance())
	metrics.record(domain.StageFiltering, time.Since(filterStart), llm.CallMetrics{})

	if len(filtered) == 0 {
		return domain.ConsultationResult{
			ConsultationID: consultationID,
			ClientInfo:     req,
			Recommendations: nil,
			NoMatches:      true,
			Metrics:        metrics.finish(),
		}, nil
	}

	stage = advance(stage, domain.StageRankingDet)
	detStart := time.Now()
	dims, distanceMiles := o.runDeterministicRankers(ctx, filtered, req)
	metrics.record(domain.StageRankingDet, time.Since(detStart), llm.CallMetrics{})

	stage = advance(stage, domain.StageShortlisted)
	shortlist := rank.SelectShortlist(filtered, dims, o.shortlistSize())

	stage = advance(stage, domain.StageRankingAI)
	aiStart := time.Now()
	aiResults := airank.Run(ctx, shortlist, req, dims, o.aiClient)
	var degraded []string
	for _, r := range aiResults {
		dims.Set(r.Dimension, r.Ranking, r.Applicable)
		metrics.record("rank:"+r.Dimension, 0, r.Metrics)
		if r.Degraded {
			degraded = append(degraded, r.Dimension)
		}
	}
	metrics.record(domain.StageRankingAI, time.Since(aiStart), llm.CallMetrics{})

	stage = advance(stage, domain.StageAggregating)
	aggStart := time.Now()
	inputs := make([]rank.AggregateInput, len(shortlist))
	for i, c := range shortlist {
		inputs[i] = rank.AggregateInput{Community: c, DistanceMiles: distanceMiles[c.CommunityID], HasPet: req.HasPet}
	}
	explanationLookup := buildExplanationLookup(aiResults)
	recommendations := rank.Aggregate(inputs, dims, rank.MergeWeights(opts.Weights), explanationLookup)
	metrics.record(domain.StageAggregating, time.Since(aggStart), llm.CallMetrics{})

	stage = advance(stage, domain.StageDone)
	perfMetrics := metrics.finish()
	perfMetrics.AIRankerDegraded = degraded

	return domain.ConsultationResult{
		ConsultationID:  consultationID,
		ClientInfo:      req,
		Recommendations: recommendations,
		Metrics:         perfMetrics,
		NoMatches:       false,
	}, nil
}

func (o *Orchestrator) budgetTolerance() float64 {
	if o.cfg.BudgetTolerance <= 0 {
		return 1.0
	}
	return o.cfg.BudgetTolerance
}

func (o *Orchestrator) shortlistSize() int {
	if o.cfg.ShortlistSize <= 0 {
		return 10
	}
	return o.cfg.ShortlistSize
}

// advance validates and applies a lifecycle transition, per the state
// machine (§4.10). A violation here is a programming error, not a runtime
// condition the caller can act on.
func advance(from, to string) string {
	if !domain.CanTransition(from, to) {
		panic(apperr.Internal("invalid consultation stage transition " + from + " -> " + to).Error())
	}
	return to
}

func buildExplanationLookup(results []airank.Result) rank.ExplanationFunc {
	byDim := make(map[string]airank.Result, len(results))
	for _, r := range results {
		byDim[r.Dimension] = r
	}
	return func(dimension string, communityID int) (string, bool) {
		r, ok := byDim[dimension]
		if !ok {
			return "", false
		}
		text, ok := r.Explanations[communityID]
		return text, ok
	}
}
