package generation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"linkedin-content-api/internal/application/usage"
	"linkedin-content-api/internal/config"
	"linkedin-content-api/internal/domain/entity"
	wfchain "linkedin-content-api/internal/workflow/chain"
	wfmodel "linkedin-content-api/internal/workflow/model"
	wfnode "linkedin-content-api/internal/workflow/node"
	"linkedin-content-api/pkg/errors"
	"linkedin-content-api/pkg/metrics"
)

// ToneRequest 专业语气改写请求。
type ToneRequest struct {
	UserID string
	Text   string
}

// ToneResult 三个专业语气版本。
type ToneResult struct {
	ToneOne    string
	ToneTwo    string
	ToneThree  string
	TokensUsed int
}

// ToneGenerator 专业语气改写编排。
type ToneGenerator struct {
	chain    *wfchain.ToneChain
	recorder *usage.Recorder
	cfg      *config.Config
}

func NewToneGenerator(chain *wfchain.ToneChain, recorder *usage.Recorder, cfg *config.Config) *ToneGenerator {
	return &ToneGenerator{
		chain:    chain,
		recorder: recorder,
		cfg:      cfg,
	}
}

func (g *ToneGenerator) Generate(ctx context.Context, req *ToneRequest) (*ToneResult, error) {
	if g == nil || g.chain == nil {
		return nil, errors.New(errors.CodeInternalError, "tone generator not configured")
	}
	start := time.Now()

	if err := checkDailyQuota(ctx, g.recorder, g.cfg, req.UserID); err != nil {
		return nil, err
	}

	msg, err := g.chain.Invoke(ctx, &wfmodel.ToneGenerateInput{Text: req.Text})
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindTone), "error").Inc()
		return nil, errors.Wrap(err, errors.CodeLLMCallFailed, "failed to generate tone variations")
	}

	raw := wfnode.ExtractJSONObject(msg.Content)
	var payload wfmodel.TonePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindTone), "error").Inc()
		return nil, errors.Wrap(err, errors.CodeGenerationFailed, "failed to parse tone payload")
	}
	if strings.TrimSpace(payload.ToneOne) == "" &&
		strings.TrimSpace(payload.ToneTwo) == "" &&
		strings.TrimSpace(payload.ToneThree) == "" {
		metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindTone), "error").Inc()
		return nil, errors.New(errors.CodeGenerationFailed, "model returned empty tone variations")
	}

	promptTokens, completionTokens := tokenUsage(msg, msg.Content)
	result := &ToneResult{
		ToneOne:    payload.ToneOne,
		ToneTwo:    payload.ToneTwo,
		ToneThree:  payload.ToneThree,
		TokensUsed: promptTokens + completionTokens,
	}

	provider, model := defaultProviderModel(g.cfg)
	g.recorder.Record(ctx, &entity.GenerationEvent{
		UserID:           req.UserID,
		Kind:             entity.GenerationKindTone,
		Provider:         provider,
		Model:            model,
		TokensPrompt:     promptTokens,
		TokensCompletion: completionTokens,
		DurationMs:       int(time.Since(start).Milliseconds()),
	})

	metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindTone), "success").Inc()
	metrics.GenerationDuration.WithLabelValues(string(entity.GenerationKindTone)).Observe(time.Since(start).Seconds())

	return result, nil
}
