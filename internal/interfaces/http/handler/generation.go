package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkedin-content-api/internal/application/generation"
	"linkedin-content-api/internal/interfaces/http/dto"
	"linkedin-content-api/pkg/errors"
	"linkedin-content-api/pkg/logger"
)

// PostGenerating 帖子生成能力
type PostGenerating interface {
	Generate(ctx context.Context, req *generation.PostRequest) (*generation.PostResult, error)
}

// CommentGenerating 评论生成能力
type CommentGenerating interface {
	Generate(ctx context.Context, req *generation.CommentRequest) (*generation.CommentResult, error)
}

// ToneGenerating 专业语气改写能力
type ToneGenerating interface {
	Generate(ctx context.Context, req *generation.ToneRequest) (*generation.ToneResult, error)
}

// GenerationHandler 内容生成处理器
type GenerationHandler struct {
	posts    PostGenerating
	comments CommentGenerating
	tones    ToneGenerating
}

func NewGenerationHandler(posts PostGenerating, comments CommentGenerating, tones ToneGenerating) *GenerationHandler {
	return &GenerationHandler{
		posts:    posts,
		comments: comments,
		tones:    tones,
	}
}

// GeneratePost 生成 LinkedIn 帖子
// @Summary 生成 LinkedIn 帖子
// @Description 结合用户偏好与历史活动生成个性化帖子
// @Tags Content Generation
// @Accept json
// @Produce json
// @Param body body dto.PostGenerationRequest true "生成请求"
// @Success 200 {object} dto.PostGenerationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /generate-post [post]
func (h *GenerationHandler) GeneratePost(c *gin.Context) {
	var req dto.PostGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, req.UserID)
	logger.Info(ctx, "generating post", "user_id", req.UserID)

	result, err := h.posts.Generate(ctx, &generation.PostRequest{
		UserID:        req.UserID,
		InputContext:  req.InputContext,
		GenerateImage: req.GenerateImage,
	})
	if err != nil {
		writeGenerationError(c, err, "failed to generate post", req.UserID)
		return
	}

	c.JSON(http.StatusOK, dto.PostGenerationResponse{
		Success: true,
		Post:    result.Post,
		Metadata: &dto.PostMetadata{
			CharacterCount:      result.CharacterCount,
			WordCount:           result.WordCount,
			WithinLimits:        result.WithinLimits,
			Hashtags:            result.Hashtags,
			TokensUsed:          result.TokensUsed,
			UserPreferencesUsed: result.UserPreferencesUsed,
			ActivityStored:      result.ActivityStored,
			ImageURL:            result.ImageURL,
		},
		Timestamp: dto.Timestamp(),
	})
}

// GenerateComment 生成 LinkedIn 评论
// @Summary 生成 LinkedIn 评论
// @Description 基于帖子内容生成 3 条指定风格/倾向的评论
// @Tags Content Generation
// @Accept json
// @Produce json
// @Param body body dto.CommentGenerationRequest true "生成请求"
// @Success 200 {object} dto.CommentGenerationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /generate-comment [post]
func (h *GenerationHandler) GenerateComment(c *gin.Context) {
	var req dto.CommentGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	commentType, ok := req.NormalizeCommentType()
	if !ok {
		dto.BadRequest(c, "comment_type must be one of: positive, negative")
		return
	}

	ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, req.UserID)
	logger.Info(ctx, "generating comment", "user_id", req.UserID, "style", req.CommentStyle, "type", commentType)

	result, err := h.comments.Generate(ctx, &generation.CommentRequest{
		UserID:       req.UserID,
		PostText:     req.PostText,
		CommentStyle: req.CommentStyle,
		CommentType:  commentType,
	})
	if err != nil {
		writeGenerationError(c, err, "failed to generate comments", req.UserID)
		return
	}

	c.JSON(http.StatusOK, dto.CommentGenerationResponse{
		Success: true,
		Comments: map[string]string{
			"comment1": result.Comment1,
			"comment2": result.Comment2,
			"comment3": result.Comment3,
		},
		Metadata: &dto.CommentMetadata{
			TokensUsed:     result.TokensUsed,
			CommentStyle:   result.CommentStyle,
			CommentType:    result.CommentType,
			ActivityStored: result.ActivityStored,
			CommentLengths: result.Lengths(),
		},
		Timestamp: dto.Timestamp(),
	})
}

// GenerateTone 专业语气改写
// @Summary 专业语气改写
// @Description 把输入文本改写为三个专业语气版本
// @Tags Content Generation
// @Accept json
// @Produce json
// @Param body body dto.ToneGenerationRequest true "改写请求"
// @Success 200 {object} dto.ToneGenerationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /professional-tone [post]
func (h *GenerationHandler) GenerateTone(c *gin.Context) {
	var req dto.ToneGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, req.UserID)

	result, err := h.tones.Generate(ctx, &generation.ToneRequest{
		UserID: req.UserID,
		Text:   req.Text,
	})
	if err != nil {
		writeGenerationError(c, err, "failed to generate tone variations", req.UserID)
		return
	}

	c.JSON(http.StatusOK, dto.ToneGenerationResponse{
		Success: true,
		Tones: &dto.ToneVariations{
			ToneOne:   result.ToneOne,
			ToneTwo:   result.ToneTwo,
			ToneThree: result.ToneThree,
		},
		Metadata:  &dto.ToneMetadata{TokensUsed: result.TokensUsed},
		Timestamp: dto.Timestamp(),
	})
}

func writeGenerationError(c *gin.Context, err error, fallback, userID string) {
	logger.Error(c.Request.Context(), fallback, err, "user_id", userID)
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		dto.Fail(c, appErr.HTTPStatus, appErr.Message)
		return
	}
	dto.InternalError(c, fallback)
}
