package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/platform/apperr"
)

type stubLLM struct {
	result llm.ExtractionResult
	err    error
}

func (s *stubLLM) Extract(ctx context.Context, input llm.ExtractionInput) (llm.ExtractionResult, error) {
	return s.result, s.err
}

type stubLocations struct {
	zip string
	ok  bool
}

func (s *stubLocations) Resolve(locationPreference string) (string, bool) {
	return s.zip, s.ok
}

func TestExtract_Success(t *testing.T) {
	stub := &stubLLM{result: llm.ExtractionResult{
		ClientName:         "Jane Doe",
		CareLevel:          domain.CareLevelAssistedLiving,
		LocationPreference: "Cambridge",
	}}
	e := NewExtractor(stub, &stubLocations{zip: "02139", ok: true})

	res, err := e.Extract(context.Background(), llm.ExtractionInput{Text: "transcript"})
	require.NoError(t, err)
	assert.Equal(t, domain.CareLevelAssistedLiving, res.Requirements.CareLevel)
	assert.Equal(t, "02139", res.Requirements.ResolvedZIPCode)
}

func TestExtract_InvalidCareLevelFails(t *testing.T) {
	stub := &stubLLM{result: llm.ExtractionResult{CareLevel: "unknown"}}
	e := NewExtractor(stub, &stubLocations{})

	_, err := e.Extract(context.Background(), llm.ExtractionInput{Text: "transcript"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindExtraction, apperr.GetKind(err))
}

func TestExtract_UnresolvableLocationIsNotFatal(t *testing.T) {
	stub := &stubLLM{result: llm.ExtractionResult{
		CareLevel:          domain.CareLevelMemoryCare,
		LocationPreference: "nowhere",
	}}
	e := NewExtractor(stub, &stubLocations{ok: false})

	res, err := e.Extract(context.Background(), llm.ExtractionInput{Text: "transcript"})
	require.NoError(t, err)
	assert.Empty(t, res.Requirements.ResolvedZIPCode)
}

func TestExtract_LLMErrorPropagates(t *testing.T) {
	stub := &stubLLM{err: apperr.LLMUnavailable("down")}
	e := NewExtractor(stub, &stubLocations{})

	_, err := e.Extract(context.Background(), llm.ExtractionInput{Text: "transcript"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindLLMUnavailable, apperr.GetKind(err))
}
