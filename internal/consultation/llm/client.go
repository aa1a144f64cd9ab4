// Package llm implements the LLM Client (C4): the sole boundary between the
// pipeline and the generative model, used for structured extraction
// (§4.4) and for each ranking call (§4.9). It is deliberately a thin
// wrapper over google.golang.org/genai rather than the ADK agent/runner
// machinery the rest of the codebase uses elsewhere, since extraction and
// ranking are single-shot calls with no tool use or multi-turn state; see
// DESIGN.md.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"

	"portal_final_backend/platform/apperr"
	"portal_final_backend/platform/logger"
)

// Client wraps a genai.Client with the retry/backoff contract (§4.4
// "Resilience": a first attempt plus one retry after each configured delay,
// 2s/4s/8s by default, so up to 4 attempts) and per-call token/latency
// metrics.
type Client struct {
	genaiClient *genai.Client
	model       string
	callTimeout time.Duration
	retryDelays []time.Duration
	log         *logger.Logger
}

// Config carries the pieces of LLMConfig the client needs, kept narrow per
// the teacher's per-module config interface convention.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	CallTimeout time.Duration
	RetryDelays []time.Duration
}

// CallMetrics reports what a single LLM call cost, surfaced into the
// pipeline's per-phase PerformanceMetrics (§4.11).
type CallMetrics struct {
	DurationMS float64
	TokensIn   int
	TokensOut  int
	Attempts   int
}

// NewClient builds a Client against the Gemini API.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if len(cfg.RetryDelays) == 0 {
		cfg.RetryDelays = []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
	}
	return &Client{
		genaiClient: gc,
		model:       cfg.Model,
		callTimeout: cfg.CallTimeout,
		retryDelays: cfg.RetryDelays,
		log:         log,
	}, nil
}

// fixedDelays is a go-retry Backoff that yields the configured delays in
// order and then stops, so retry.Do makes one retry per delay after the
// first attempt. The delays are used as given, not go-retry's built-in
// exponential backoff.
type fixedDelays struct {
	delays []time.Duration
	idx    int
}

func (f *fixedDelays) Next() (time.Duration, bool) {
	if f.idx >= len(f.delays) {
		return 0, true
	}
	d := f.delays[f.idx]
	f.idx++
	return d, false
}

func (c *Client) backoff() retry.Backoff {
	return &fixedDelays{delays: c.retryDelays}
}

// generate runs one genai call with the retry contract, converting
// exhaustion into apperr.LLMUnavailable (§7).
func (c *Client) generate(ctx context.Context, operation string, contents []*genai.Content, genConfig *genai.GenerateContentConfig) (*genai.GenerateContentResponse, CallMetrics, error) {
	start := time.Now()
	attempts := 0
	var resp *genai.GenerateContentResponse

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	err := retry.Do(callCtx, c.backoff(), func(ctx context.Context) error {
		attempts++
		r, genErr := c.genaiClient.Models.GenerateContent(ctx, c.model, contents, genConfig)
		if genErr != nil {
			if c.log != nil {
				c.log.LLMCallFailed(operation, attempts, genErr)
			}
			return retry.RetryableError(genErr)
		}
		resp = r
		return nil
	})

	metrics := CallMetrics{DurationMS: float64(time.Since(start).Milliseconds()), Attempts: attempts}
	if resp != nil && resp.UsageMetadata != nil {
		metrics.TokensIn = int(resp.UsageMetadata.PromptTokenCount)
		metrics.TokensOut = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	if err != nil {
		return nil, metrics, apperr.LLMUnavailable(fmt.Sprintf("%s: llm unavailable after %d attempts: %v", operation, attempts, err))
	}
	return resp, metrics, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty llm response")
	}
	var out string
	for _, p := range resp.Candidates[0].Content.Parts {
		out += p.Text
	}
	if out == "" {
		return "", fmt.Errorf("empty llm response text")
	}
	return out, nil
}

// decodeJSON unmarshals a model response's text as JSON into v, tolerating
// the common ```json ... ``` fencing some prompts still elicit despite
// response_mime_type being set.
func decodeJSON(text string, v any) error {
	trimmed := stripFence(text)
	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		return fmt.Errorf("decode llm json: %w", err)
	}
	return nil
}

func stripFence(s string) string {
	text := strings.TrimSpace(s)
	const fence = "```"
	if strings.HasPrefix(text, fence) {
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		}
		if end := strings.LastIndex(text, fence); end >= 0 {
			text = text[:end]
		}
	}
	return strings.TrimSpace(text)
}
