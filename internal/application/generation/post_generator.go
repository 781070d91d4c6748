package generation

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"linkedin-content-api/internal/application/memory"
	"linkedin-content-api/internal/application/usage"
	"linkedin-content-api/internal/config"
	"linkedin-content-api/internal/domain/entity"
	"linkedin-content-api/internal/infrastructure/image"
	wfchain "linkedin-content-api/internal/workflow/chain"
	wfmodel "linkedin-content-api/internal/workflow/model"
	wfnode "linkedin-content-api/internal/workflow/node"
	"linkedin-content-api/pkg/errors"
	"linkedin-content-api/pkg/logger"
	"linkedin-content-api/pkg/metrics"
)

// PostRequest 帖子生成请求。
type PostRequest struct {
	UserID        string
	InputContext  string
	GenerateImage bool
}

// PostResult 帖子生成结果及其元数据。
type PostResult struct {
	Post                string
	CharacterCount      int
	WordCount           int
	WithinLimits        bool
	Hashtags            []string
	Engagement          EngagementElements
	TokensUsed          int
	UserPreferencesUsed bool
	ActivityStored      bool
	ImageURL            string
}

// PostGenerator 帖子生成编排：
// 记忆检索 -> 提示词拼装 -> LLM 调用 -> 后处理 -> 活动回写与用量记录。
type PostGenerator struct {
	chain    *wfchain.PostChain
	memories *memory.Service
	recorder *usage.Recorder
	images   *image.Generator
	cfg      *config.Config
}

func NewPostGenerator(
	chain *wfchain.PostChain,
	memories *memory.Service,
	recorder *usage.Recorder,
	images *image.Generator,
	cfg *config.Config,
) *PostGenerator {
	return &PostGenerator{
		chain:    chain,
		memories: memories,
		recorder: recorder,
		images:   images,
		cfg:      cfg,
	}
}

func (g *PostGenerator) Generate(ctx context.Context, req *PostRequest) (*PostResult, error) {
	if g == nil || g.chain == nil {
		return nil, errors.New(errors.CodeInternalError, "post generator not configured")
	}
	start := time.Now()

	if err := checkDailyQuota(ctx, g.recorder, g.cfg, req.UserID); err != nil {
		return nil, err
	}

	prefHits, prefErr := g.memories.Search(ctx, req.UserID, "linkedin post preferences", 5)
	if prefErr != nil {
		logger.Warn(ctx, "preference search failed, generating without preferences",
			"user_id", req.UserID, "error", prefErr.Error())
	}
	actHits, actErr := g.memories.Search(ctx, req.UserID, "previous posts and activity", 5)
	if actErr != nil {
		logger.Warn(ctx, "activity search failed, generating without history",
			"user_id", req.UserID, "error", actErr.Error())
	}

	preferencesUsed := prefErr == nil && len(prefHits) > 0
	userContext := BuildUserContext(
		FormatPreferences(prefHits, prefErr == nil),
		FormatActivity(actHits, actErr == nil),
		req.InputContext,
	)

	msg, err := g.chain.Invoke(ctx, &wfmodel.PostGenerateInput{
		UserID:       req.UserID,
		InputContext: req.InputContext,
		UserContext:  userContext,
	})
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindPost), "error").Inc()
		return nil, errors.Wrap(err, errors.CodeLLMCallFailed, "failed to generate linkedin post")
	}

	post := extractPostText(ctx, msg.Content)
	if strings.TrimSpace(post) == "" {
		metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindPost), "error").Inc()
		return nil, errors.New(errors.CodeGenerationFailed, "model returned empty post")
	}
	post = TruncatePost(post)

	promptTokens, completionTokens := tokenUsage(msg, post)
	hashtags := ExtractHashtags(post)
	engagement := AnalyzeEngagementElements(post)
	charCount := CountCharacters(post)
	wordCount := CountWords(post)

	result := &PostResult{
		Post:                post,
		CharacterCount:      charCount,
		WordCount:           wordCount,
		WithinLimits:        WithinLimits(charCount, wordCount),
		Hashtags:            hashtags,
		Engagement:          engagement,
		TokensUsed:          promptTokens + completionTokens,
		UserPreferencesUsed: preferencesUsed,
	}

	if req.GenerateImage && g.images != nil && g.cfg != nil && g.cfg.Features.ImageGeneration.Enabled {
		img, imgErr := g.images.Generate(ctx, req.InputContext)
		if imgErr != nil {
			logger.Warn(ctx, "image generation failed", "user_id", req.UserID, "error", imgErr.Error())
		} else {
			result.ImageURL = img.URL
		}
	}

	result.ActivityStored = g.memories.Append(ctx, req.UserID, []memory.Record{{
		Kind: entity.MemoryKindActivity,
		Memory: memory.FormatRecord(req.UserID, map[string]any{
			"action":              "linkedin_post_generated",
			"input_context":       req.InputContext,
			"generated_post":      post,
			"post_length":         charCount,
			"hashtags_used":       hashtags,
			"engagement_elements": engagementAsMap(engagement),
			"timestamp":           time.Now().UTC().Format(time.RFC3339),
		}),
	}})

	provider, model := defaultProviderModel(g.cfg)
	g.recorder.Record(ctx, &entity.GenerationEvent{
		UserID:           req.UserID,
		Kind:             entity.GenerationKindPost,
		Provider:         provider,
		Model:            model,
		TokensPrompt:     promptTokens,
		TokensCompletion: completionTokens,
		DurationMs:       int(time.Since(start).Milliseconds()),
	})

	metrics.GenerationTotal.WithLabelValues(string(entity.GenerationKindPost), "success").Inc()
	metrics.GenerationDuration.WithLabelValues(string(entity.GenerationKindPost)).Observe(time.Since(start).Seconds())
	metrics.PostCharacterCount.Observe(float64(charCount))

	return result, nil
}

// extractPostText 解析结构化输出；降级到纯文本时直接使用模型回复。
func extractPostText(ctx context.Context, content string) string {
	raw := wfnode.ExtractJSONObject(content)
	var payload wfmodel.PostPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil && payload.LinkedInPost.LinkedInPost != "" {
		return payload.LinkedInPost.LinkedInPost
	}
	logger.Debug(ctx, "post payload not structured, using raw content")
	return strings.TrimSpace(content)
}

// tokenUsage 优先取模型返回的用量，缺失时用 tiktoken 估算。
func tokenUsage(msg *schema.Message, fallbackText string) (int, int) {
	if msg != nil && msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		u := msg.ResponseMeta.Usage
		if u.PromptTokens > 0 || u.CompletionTokens > 0 {
			return u.PromptTokens, u.CompletionTokens
		}
	}
	return 0, EstimateTokens(fallbackText)
}

func engagementAsMap(el EngagementElements) map[string]any {
	return map[string]any{
		"has_question":           el.HasQuestion,
		"has_call_to_action":     el.HasCallToAction,
		"has_personal_story":     el.HasPersonalStory,
		"has_line_breaks":        el.HasLineBreaks,
		"word_count":             el.WordCount,
		"character_count":        el.CharacterCount,
		"within_linkedin_limits": el.WithinLinkedInLimits,
		"optimal_length":         el.OptimalLength,
	}
}
