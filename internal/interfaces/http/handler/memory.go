package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	redispkg "linkedin-content-api/internal/infrastructure/persistence/redis"
	"linkedin-content-api/internal/interfaces/http/dto"
	"linkedin-content-api/pkg/logger"
)

// MemoryResetting 用户记忆清除能力
type MemoryResetting interface {
	Forget(ctx context.Context, userID string) error
}

// UserRateLimiter 按用户维度的限流能力
type UserRateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// 记忆清除是破坏性操作，单独按用户限流，和 IP 维度的全局限流互不影响。
const (
	memoryResetLimit  = 5
	memoryResetWindow = time.Minute
)

// MemoryHandler 用户记忆管理处理器
type MemoryHandler struct {
	memories MemoryResetting
	limiter  UserRateLimiter
}

func NewMemoryHandler(memories MemoryResetting, limiter UserRateLimiter) *MemoryHandler {
	return &MemoryHandler{
		memories: memories,
		limiter:  limiter,
	}
}

// ResetMemories 清除用户的全部记忆
// @Summary 清除用户记忆
// @Description 删除指定用户存储的所有偏好与活动记忆
// @Tags Memory
// @Produce json
// @Param user_id path string true "用户 ID"
// @Success 200 {object} dto.MemoryResetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /user-memory/{user_id} [delete]
func (h *MemoryHandler) ResetMemories(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" || len(userID) > 100 {
		dto.BadRequest(c, "user_id must be 1-100 characters")
		return
	}

	ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, userID)

	if h.limiter != nil {
		key := redispkg.BuildUserRateLimitKey(userID, "memory-reset")
		allowed, err := h.limiter.Allow(ctx, key, memoryResetLimit, memoryResetWindow)
		// 限流器故障时放行
		if err == nil && !allowed {
			dto.Fail(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
	}

	logger.Info(ctx, "resetting user memories", "user_id", userID)

	if err := h.memories.Forget(ctx, userID); err != nil {
		writeGenerationError(c, err, "failed to reset user memories", userID)
		return
	}

	c.JSON(http.StatusOK, dto.MemoryResetResponse{
		Success:   true,
		Timestamp: dto.Timestamp(),
	})
}
