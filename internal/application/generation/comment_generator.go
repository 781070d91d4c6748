package generation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"linkedin-content-api/internal/application/memory"
	"linkedin-content-api/internal/application/usage"
	"linkedin-content-api/internal/config"
	"linkedin-content-api/internal/domain/entity"
	wfchain "linkedin-content-api/internal/workflow/chain"
	wfmodel "linkedin-content-api/internal/workflow/model"
	wfnode "linkedin-content-api/internal/workflow/node"
	"linkedin-content-api/pkg/errors"
	"linkedin-content-api/pkg/metrics"
)

// CommentRequest 评论生成请求。CommentType 已在接入层归一化为小写。
type CommentRequest struct {
	UserID       string
	PostText     string
	CommentStyle string
	CommentType  string
}

// CommentResult 评论生成结果：三条变体及其元数据。
type CommentResult struct {
	Comment1 string
	Comment2 string
	Comment3 string

	TokensUsed     int
	CommentStyle   string
	CommentType    string
	ActivityStored bool
}

// Lengths 返回三条评论各自的字符数。
func (r *CommentResult) Lengths() map[string]int {
	return map[string]int{
		"comment1": CountCharacters(r.Comment1),
		"comment2": CountCharacters(r.Comment2),
		"comment3": CountCharacters(r.Comment3),
	}
}

// CommentGenerator 评论生成编排。
type CommentGenerator struct {
	chain    *wfchain.CommentChain
	memories *memory.Service
	recorder *usage.Recorder
	cfg      *config.Config
}

func NewCommentGenerator(
	chain *wfchain.CommentChain,
	memories *memory.Service,
	recorder *usage.Recorder,
	cfg *config.Config,
) *CommentGenerator {
	return &CommentGenerator{
		chain:    chain,
		memories: memories,
		recorder: recorder,
		cfg:      cfg,
	}
}

func (g *CommentGenerator) Generate(ctx context.Context, req *CommentRequest) (*CommentResult, error) {
	if g == nil || g.chain == nil {
		return nil, errors.New(errors.CodeInternalError, "comment generator not configured")
	}
	start := time.Now()

	if err := checkDailyQuota(ctx, g.recorder, g.cfg, req.UserID); err != nil {
		return nil, err
	}

	msg, err := g.chain.Invoke(ctx, &wfmodel.CommentGenerateInput{
		PostText:       req.PostText,
		CommentStyle:   req.CommentStyle,
		CommentType:    req.CommentType,
		CharacterLimit: CommentStyleLimit(req.CommentStyle),
	})
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindComment), "error").Inc()
		return nil, errors.Wrap(err, errors.CodeLLMCallFailed, "failed to generate linkedin comments")
	}

	raw := wfnode.ExtractJSONObject(msg.Content)
	var payload wfmodel.CommentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindComment), "error").Inc()
		return nil, errors.Wrap(err, errors.CodeGenerationFailed, "failed to parse comment payload")
	}
	c := payload.LinkedInComment
	if strings.TrimSpace(c.LinkedInComment1) == "" &&
		strings.TrimSpace(c.LinkedInComment2) == "" &&
		strings.TrimSpace(c.LinkedInComment3) == "" {
		metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindComment), "error").Inc()
		return nil, errors.New(errors.CodeGenerationFailed, "model returned empty comments")
	}

	promptTokens, completionTokens := tokenUsage(msg, msg.Content)
	result := &CommentResult{
		Comment1:     c.LinkedInComment1,
		Comment2:     c.LinkedInComment2,
		Comment3:     c.LinkedInComment3,
		TokensUsed:   promptTokens + completionTokens,
		CommentStyle: req.CommentStyle,
		CommentType:  req.CommentType,
	}

	result.ActivityStored = g.memories.Append(ctx, req.UserID, []memory.Record{{
		Kind: entity.MemoryKindActivity,
		Memory: memory.FormatRecord(req.UserID, map[string]any{
			"action":            "linkedin_comment_generated",
			"post_text_preview": PreviewText(req.PostText, 100),
			"comment_style":     req.CommentStyle,
			"comment_type":      req.CommentType,
			"tokens_used":       result.TokensUsed,
		}),
	}})

	provider, model := defaultProviderModel(g.cfg)
	g.recorder.Record(ctx, &entity.GenerationEvent{
		UserID:           req.UserID,
		Kind:             entity.GenerationKindComment,
		Provider:         provider,
		Model:            model,
		TokensPrompt:     promptTokens,
		TokensCompletion: completionTokens,
		DurationMs:       int(time.Since(start).Milliseconds()),
	})

	metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindComment), "success").Inc()
	metrics.GenerationDuration.WithLabelValues(string(entity.GenerationKindComment)).Observe(time.Since(start).Seconds())

	return result, nil
}

// checkDailyQuota 生成前的用户日配额闸口，配额为 0 时不拦截。
func checkDailyQuota(ctx context.Context, recorder *usage.Recorder, cfg *config.Config, userID string) error {
	if recorder == nil || cfg == nil {
		return nil
	}
	if err := recorder.CheckDailyQuota(ctx, userID, cfg.Security.Quota.MaxTokensPerDayPerUser); err != nil {
		return errors.Wrap(err, errors.CodeTooManyRequests, "daily token quota exhausted")
	}
	return nil
}

func defaultProviderModel(cfg *config.Config) (string, string) {
	if cfg == nil {
		return "", ""
	}
	provider := cfg.LLM.DefaultProvider
	if pc, ok := cfg.LLM.Providers[provider]; ok {
		return provider, pc.Model
	}
	return provider, ""
}
