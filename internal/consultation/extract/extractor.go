// Package extract implements the Extractor (C5): turns a raw consultation
// input into structured ClientRequirements via the LLM Client, then
// resolves any free-text location preference to a postal code (§4.5).
package extract

import (
	"context"
	"fmt"

	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/platform/apperr"
)

// LLMExtractor is the subset of the LLM Client the Extractor depends on.
type LLMExtractor interface {
	Extract(ctx context.Context, input llm.ExtractionInput) (llm.ExtractionResult, error)
}

// LocationResolver is the subset of C3 the Extractor depends on.
type LocationResolver interface {
	Resolve(locationPreference string) (string, bool)
}

// Extractor is C5.
type Extractor struct {
	llmClient LLMExtractor
	locations LocationResolver
}

func NewExtractor(llmClient LLMExtractor, locations LocationResolver) *Extractor {
	return &Extractor{llmClient: llmClient, locations: locations}
}

// Result is the structured requirements plus the LLM call metrics, so the
// orchestrator can fold them into the consultation's performance metrics.
type Result struct {
	Requirements domain.ClientRequirements
	Metrics      llm.CallMetrics
}

// Extract runs the extraction call and resolves location. A missing or
// unrecognized care_level is a hard failure (apperr.Extraction); a missing
// budget or an unresolvable location preference are not — the pipeline
// continues with those fields unset (§4.5 "Edge cases").
func (e *Extractor) Extract(ctx context.Context, input llm.ExtractionInput) (Result, error) {
	raw, err := e.llmClient.Extract(ctx, input)
	if err != nil {
		return Result{}, err // apperr.LLMUnavailable after retries, or a plain error for an unusable response
	}

	if !domain.IsKnownCareLevel(raw.CareLevel) {
		return Result{}, apperr.Extraction(fmt.Sprintf("could not determine a valid care level (got %q)", raw.CareLevel))
	}

	req := domain.ClientRequirements{
		ClientName:          raw.ClientName,
		CareLevel:           raw.CareLevel,
		BudgetMonthly:       raw.BudgetMonthly,
		Timeline:            raw.Timeline,
		LocationPreference:  raw.LocationPreference,
		NeedsEnhanced:       raw.NeedsEnhanced,
		NeedsEnriched:       raw.NeedsEnriched,
		IsCouple:            raw.IsCouple,
		HasPet:              raw.HasPet,
		ApartmentPreference: raw.ApartmentPreference,
		SpecialNotes:        raw.SpecialNotes,
	}

	if raw.LocationPreference != "" {
		if zip, ok := e.locations.Resolve(raw.LocationPreference); ok {
			req.ResolvedZIPCode = zip
		}
	}

	return Result{Requirements: req, Metrics: raw.Metrics}, nil
}
