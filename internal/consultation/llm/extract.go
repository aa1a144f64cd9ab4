package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"portal_final_backend/internal/consultation/domain"
)

// ExtractionInput is either spoken consultation audio or its transcript
// (§4.4 "Input modes"). Exactly one of Audio/Text is set.
type ExtractionInput struct {
	Audio     []byte
	AudioMIME string
	Text      string
}

// extractionSchema is the JSON shape the model is constrained to produce;
// field names mirror domain.ClientRequirements (§4.4 "Output contract").
type extractionSchema struct {
	ClientName          string   `json:"client_name"`
	CareLevel           string   `json:"care_level"`
	BudgetMonthly       *float64 `json:"budget_monthly"`
	Timeline            string   `json:"timeline"`
	LocationPreference  string   `json:"location_preference"`
	NeedsEnhanced       bool     `json:"needs_enhanced"`
	NeedsEnriched       bool     `json:"needs_enriched"`
	IsCouple            bool     `json:"is_couple"`
	HasPet              bool     `json:"has_pet"`
	ApartmentPreference string   `json:"apartment_preference"`
	SpecialNotes        string   `json:"special_notes"`
}

const extractionPrompt = `You are extracting structured placement requirements from a senior-living
placement consultation. Read the input carefully and return ONLY a JSON
object with these fields: client_name, care_level (one of
"independent_living", "assisted_living", "memory_care"), budget_monthly
(number or null if not mentioned), timeline (one of "immediate",
"near_term", "flexible"), location_preference (free text, or "" if not
mentioned), needs_enhanced (bool), needs_enriched (bool), is_couple (bool),
has_pet (bool), apartment_preference (free text, or ""), special_notes
(free text summary of anything else relevant, or "").

If care_level cannot be determined with confidence, set it to "".`

// careLevelVocabulary maps the prompt's snake_case care_level vocabulary to
// the domain's Title-Case constants. Anything else (including "") is left
// untouched, so an unrecognized value still fails domain.IsKnownCareLevel
// downstream instead of silently matching.
var careLevelVocabulary = map[string]string{
	"independent_living": domain.CareLevelIndependentLiving,
	"assisted_living":    domain.CareLevelAssistedLiving,
	"memory_care":        domain.CareLevelMemoryCare,
}

// timelineVocabulary maps the prompt's timeline vocabulary to the domain's
// hyphenated constants.
var timelineVocabulary = map[string]string{
	"immediate":  domain.TimelineImmediate,
	"near_term":  domain.TimelineNearTerm,
	"flexible":   domain.TimelineFlexible,
}

func normalizeCareLevel(level string) string {
	if mapped, ok := careLevelVocabulary[level]; ok {
		return mapped
	}
	return level
}

func normalizeTimeline(timeline string) string {
	if mapped, ok := timelineVocabulary[timeline]; ok {
		return mapped
	}
	return timeline
}

// ExtractionResult is the raw decoded model output plus its call metrics.
type ExtractionResult struct {
	ClientName          string
	CareLevel           string
	BudgetMonthly       *float64
	Timeline            string
	LocationPreference  string
	NeedsEnhanced       bool
	NeedsEnriched       bool
	IsCouple            bool
	HasPet              bool
	ApartmentPreference string
	SpecialNotes        string
	Metrics             CallMetrics
}

// Extract runs the single structured-extraction call (§4.4). Audio input
// and ranking calls both use temperature 0.0; a text transcript may use up
// to 0.1 per the spec's allowance for marginally more natural parsing.
func (c *Client) Extract(ctx context.Context, input ExtractionInput) (ExtractionResult, error) {
	var parts []*genai.Part
	temperature := float32(0.0)

	switch {
	case len(input.Audio) > 0:
		parts = []*genai.Part{
			{Text: extractionPrompt},
			{InlineData: &genai.Blob{MIMEType: input.AudioMIME, Data: input.Audio}},
		}
	case input.Text != "":
		parts = []*genai.Part{{Text: extractionPrompt + "\n\nTranscript:\n" + input.Text}}
		temperature = 0.1
	default:
		return ExtractionResult{}, fmt.Errorf("extraction input must set Audio or Text")
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	resp, metrics, err := c.generate(ctx, "extract_structured", contents, genConfig)
	if err != nil {
		return ExtractionResult{}, err
	}

	text, err := responseText(resp)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("extract_structured: %w", err)
	}

	return parseExtractionResponse(text, metrics)
}

// parseExtractionResponse decodes the model's raw JSON text into an
// ExtractionResult, normalizing care_level/timeline from the prompt's
// vocabulary to the domain's constants. Split out from Extract so the
// LLM-JSON-to-domain-constant boundary is directly testable without a live
// model call.
func parseExtractionResponse(text string, metrics CallMetrics) (ExtractionResult, error) {
	var schema extractionSchema
	if err := decodeJSON(text, &schema); err != nil {
		return ExtractionResult{}, fmt.Errorf("extract_structured: %w", err)
	}

	return ExtractionResult{
		ClientName:          schema.ClientName,
		CareLevel:           normalizeCareLevel(schema.CareLevel),
		BudgetMonthly:       schema.BudgetMonthly,
		Timeline:            normalizeTimeline(schema.Timeline),
		LocationPreference:  schema.LocationPreference,
		NeedsEnhanced:       schema.NeedsEnhanced,
		NeedsEnriched:       schema.NeedsEnriched,
		IsCouple:            schema.IsCouple,
		HasPet:              schema.HasPet,
		ApartmentPreference: schema.ApartmentPreference,
		SpecialNotes:        schema.SpecialNotes,
		Metrics:             metrics,
	}, nil
}
