package orchestrator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/rank"
)

// runDeterministicRankers fans the five deterministic rankers (C7) out over
// a bounded goroutine group, since they're pure/CPU-light and independent
// over the same filtered frame (§5).
func (o *Orchestrator) runDeterministicRankers(ctx context.Context, filtered []domain.Community, req domain.ClientRequirements) (*rank.Dimensions, map[int]*float64) {
	dims := rank.NewDimensions()

	var businessResult, costResult domain.RankingResult
	var distanceResult rank.DistanceResult
	var budgetEffResult, coupleResult domain.RankingResult
	var budgetEffApplicable, coupleApplicable bool

	var g errgroup.Group
	g.Go(func() error {
		businessResult = rank.Business(filtered)
		return nil
	})
	g.Go(func() error {
		costResult = rank.TotalCost(filtered, req.HasPet)
		return nil
	})
	g.Go(func() error {
		distanceResult = rank.Distance(ctx, filtered, req.ResolvedZIPCode, o.geocoder)
		return nil
	})
	g.Go(func() error {
		budgetEffResult, budgetEffApplicable = rank.BudgetEfficiency(filtered, req.BudgetMonthly)
		return nil
	})
	g.Go(func() error {
		coupleResult, coupleApplicable = rank.CoupleSuitability(filtered, req.IsCouple)
		return nil
	})
	_ = g.Wait()

	// Dimensions.Set mutates unsynchronized maps; every call happens here,
	// after the fan-out has joined, never from within a goroutine.
	dims.Set(domain.DimensionBusiness, businessResult, true)
	dims.Set(domain.DimensionCost, costResult, true)
	dims.Set(domain.DimensionDistance, distanceResult.Ranking, true)
	dims.Set(domain.DimensionBudgetEfficiency, budgetEffResult, budgetEffApplicable)
	dims.Set(domain.DimensionCouple, coupleResult, coupleApplicable)
	return dims, distanceResult.Miles
}
