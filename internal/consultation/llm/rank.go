package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// RankRequest is one AI-ranker call (§4.9): a dimension-specific prompt
// plus the shortlisted community ids and their rendered context.
type RankRequest struct {
	Dimension        string
	Instruction      string
	CommunityContext string
}

type rankingSchema struct {
	OrderedCommunityIDs []int             `json:"ordered_community_ids"`
	Explanations        map[string]string `json:"explanations"`
}

// RankResult is one AI ranker's ordering plus its per-community rationale
// strings and call metrics.
type RankResult struct {
	OrderedCommunityIDs []int
	Explanations        map[string]string
	Metrics             CallMetrics
}

const rankPromptTemplate = `You are ranking senior-living communities for a client on the %s dimension.

%s

Communities:
%s

Return ONLY a JSON object: {"ordered_community_ids": [<ids best to worst>],
"explanations": {"<id>": "<one-sentence rationale>"}}. Every community id
given must appear exactly once in ordered_community_ids.`

// Rank runs one AI-ranker call at temperature 0.0 (§4.9 "Determinism").
func (c *Client) Rank(ctx context.Context, req RankRequest) (RankResult, error) {
	prompt := fmt.Sprintf(rankPromptTemplate, req.Dimension, req.Instruction, req.CommunityContext)
	temperature := float32(0.0)

	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}}
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	resp, metrics, err := c.generate(ctx, "rank:"+req.Dimension, contents, genConfig)
	if err != nil {
		return RankResult{}, err
	}

	text, err := responseText(resp)
	if err != nil {
		return RankResult{}, fmt.Errorf("rank:%s: %w", req.Dimension, err)
	}

	var schema rankingSchema
	if err := decodeJSON(text, &schema); err != nil {
		return RankResult{}, fmt.Errorf("rank:%s: %w", req.Dimension, err)
	}

	return RankResult{
		OrderedCommunityIDs: schema.OrderedCommunityIDs,
		Explanations:        schema.Explanations,
		Metrics:             metrics,
	}, nil
}
