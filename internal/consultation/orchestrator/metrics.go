package orchestrator

import (
	"time"

	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/llm"
)

// metricsAccumulator folds per-phase timings and LLM call metrics into the
// PerformanceMetrics returned with every ConsultationResult (§4.10).
type metricsAccumulator struct {
	inputPriceUSD  float64
	outputPriceUSD float64
	timings        []domain.PhaseMetric
	totalTokensIn  int
	totalTokensOut int
	totalCostUSD   float64
}

func newMetricsAccumulator(inputPriceUSD, outputPriceUSD float64) *metricsAccumulator {
	return &metricsAccumulator{inputPriceUSD: inputPriceUSD, outputPriceUSD: outputPriceUSD}
}

func (m *metricsAccumulator) record(phase string, duration time.Duration, call llm.CallMetrics) {
	costUSD := float64(call.TokensIn)*m.inputPriceUSD + float64(call.TokensOut)*m.outputPriceUSD
	durationMS := float64(duration.Milliseconds())
	if durationMS == 0 {
		durationMS = call.DurationMS
	}
	m.timings = append(m.timings, domain.PhaseMetric{
		Phase:      phase,
		DurationMS: durationMS,
		TokensIn:   call.TokensIn,
		TokensOut:  call.TokensOut,
		CostUSD:    costUSD,
	})
	m.totalTokensIn += call.TokensIn
	m.totalTokensOut += call.TokensOut
	m.totalCostUSD += costUSD
}

func (m *metricsAccumulator) finish() domain.PerformanceMetrics {
	return domain.PerformanceMetrics{
		Timings:        m.timings,
		TotalTokensIn:  m.totalTokensIn,
		TotalTokensOut: m.totalTokensOut,
		TotalCostUSD:   m.totalCostUSD,
	}
}
