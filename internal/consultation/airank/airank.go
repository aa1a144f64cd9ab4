// Package airank implements the AI Rankers (C9): three LLM-driven
// qualitative rankers running concurrently over the shortlist, each
// degrading to a neutral rank on LLMUnavailable without affecting its
// peers (§4.8).
package airank

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"portal_final_backend/internal/consultation/domain"
	"portal_final_backend/internal/consultation/llm"
	"portal_final_backend/internal/consultation/rank"
)

// RankClient is the subset of the LLM Client (C4) the AI rankers depend on.
type RankClient interface {
	Rank(ctx context.Context, req llm.RankRequest) (llm.RankResult, error)
}

// Result is one AI ranker's outcome.
type Result struct {
	Dimension    string
	Ranking      domain.RankingResult
	Applicable   bool
	Explanations map[int]string
	Degraded     bool
	Metrics      llm.CallMetrics
}

// Run executes the availability-match, amenity/lifestyle, and holistic-fit
// rankers concurrently via a bounded goroutine group. dims carries the
// deterministic rankings (C7) already computed for this shortlist; the
// holistic ranker's prompt includes those five ranks per community. The
// availability and amenity ranks are not included in it, since all three
// rankers run concurrently within this call (§4.8). A
// ranker that fails (LLMUnavailable, or the orchestrator's overall budget
// cancelling it) degrades to a neutral rank and a "Not ranked by AI"
// placeholder rather than failing the consultation or cancelling its peers
// (§4.8, §5, §7).
func Run(ctx context.Context, shortlist []domain.Community, req domain.ClientRequirements, dims *rank.Dimensions, client RankClient) []Result {
	shortlistIDs := make([]int, len(shortlist))
	for i, c := range shortlist {
		shortlistIDs[i] = c.CommunityID
	}
	shortlistContext := renderShortlist(shortlist)
	priorRanks := renderPriorRanks(dims, shortlist)

	dimensions := []string{domain.DimensionAvailability, domain.DimensionAmenity, domain.DimensionHolistic}
	results := make([]Result, len(dimensions))

	var g errgroup.Group
	for i, dim := range dimensions {
		i, dim := i, dim
		g.Go(func() error {
			results[i] = runOne(ctx, dim, shortlistIDs, req, shortlistContext, priorRanks, client)
			return nil
		})
	}
	_ = g.Wait() // each stage reports its own failure in Result.Degraded

	return results
}

func runOne(ctx context.Context, dimension string, shortlistIDs []int, req domain.ClientRequirements, shortlistContext, priorRanks string, client RankClient) Result {
	instruction := instructionFor(dimension, req, priorRanks)

	resp, err := client.Rank(ctx, llm.RankRequest{
		Dimension:        dimension,
		Instruction:      instruction,
		CommunityContext: shortlistContext,
	})
	if err != nil {
		return Result{
			Dimension:    dimension,
			Ranking:      neutralRanking(shortlistIDs),
			Applicable:   false,
			Explanations: placeholderExplanations(shortlistIDs),
			Degraded:     true,
		}
	}

	explanations := make(map[int]string, len(resp.Explanations))
	for idStr, text := range resp.Explanations {
		var id int
		if _, scanErr := fmt.Sscanf(idStr, "%d", &id); scanErr == nil {
			explanations[id] = text
		}
	}

	return Result{
		Dimension:    dimension,
		Ranking:      normalizeOrdering(shortlistIDs, resp.OrderedCommunityIDs),
		Applicable:   true,
		Explanations: explanations,
		Metrics:      resp.Metrics,
	}
}

func instructionFor(dimension string, req domain.ClientRequirements, priorRanks string) string {
	switch dimension {
	case domain.DimensionAvailability:
		return availabilityInstruction(req)
	case domain.DimensionAmenity:
		return amenityInstruction(req)
	case domain.DimensionHolistic:
		return holisticInstruction(req, priorRanks)
	default:
		return ""
	}
}

func neutralRanking(ids []int) domain.RankingResult {
	out := make(domain.RankingResult, len(ids))
	neutral := domain.NeutralRank(len(ids))
	for _, id := range ids {
		out[id] = domain.Rank(neutral)
	}
	return out
}

func placeholderExplanations(ids []int) map[int]string {
	out := make(map[int]string, len(ids))
	for _, id := range ids {
		out[id] = "Not ranked by AI"
	}
	return out
}
