package llm

import (
	"context"
	"fmt"
	"time"

	genai "google.golang.org/genai"
)

// geminiClient implements Client against the Gemini API using the official
// genai SDK. The API key is read by the SDK from GEMINI_API_KEY.
type geminiClient struct {
	cli      *genai.Client
	cfg      Config
	observer Observer
}

// NewGeminiClient creates a Client backed by the Gemini API.
func NewGeminiClient(ctx context.Context, cfg Config, observer Observer) (Client, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cli: cli, cfg: cfg, observer: observer}, nil
}

func (g *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := g.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := g.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	// Gemini has no separate system channel in this call shape; prepend it.
	full := req.UserPrompt
	if req.SystemPrompt != "" {
		full = req.SystemPrompt + "\n\n" + req.UserPrompt
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temp)),
	}
	if maxTok > 0 {
		genCfg.MaxOutputTokens = int32(maxTok)
	}

	var resp *genai.GenerateContentResponse
	var lastErr error
	attempts := 1 + g.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, lastErr = g.cli.Models.GenerateContent(ctx, g.cfg.Model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
			genCfg,
		)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()

	if lastErr != nil {
		g.observer.OnCallComplete(CallEvent{
			Task:      req.Task,
			Model:     g.cfg.Model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: errorCode(lastErr, ctx),
		})
		if ctx.Err() != nil {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		g.observer.OnCallComplete(CallEvent{
			Task:      req.Task,
			Model:     g.cfg.Model,
			LatencyMs: latency,
			Success:   false,
			ErrorCode: "EMPTY_RESPONSE",
		})
		return nil, fmt.Errorf("%w: empty response from model", ErrGenerationFailed)
	}

	g.observer.OnCallComplete(CallEvent{
		Task:      req.Task,
		Model:     g.cfg.Model,
		LatencyMs: latency,
		Success:   true,
	})

	return &GenerateResponse{
		Text:      resp.Candidates[0].Content.Parts[0].Text,
		Model:     g.cfg.Model,
		LatencyMs: latency,
	}, nil
}

// Available reports whether the Gemini backend can be used. There is no
// cheap liveness probe for the hosted API, so this checks client construction.
func (g *geminiClient) Available(ctx context.Context) bool {
	return g.cli != nil
}
