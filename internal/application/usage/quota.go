package usage

import (
	"context"
	"fmt"
	"time"

	"linkedin-content-api/pkg/logger"
)

// QuotaExceededError 表示用户当日 Token 配额已耗尽
type QuotaExceededError struct {
	UserID string
	Used   int64
	Max    int64
}

func (e QuotaExceededError) Error() string {
	return fmt.Sprintf("token quota exceeded: user=%s used=%d max=%d", e.UserID, e.Used, e.Max)
}

// CheckDailyQuota 检查用户当日 Token 配额。
// maxPerDay <= 0 表示不限额；用量查询失败时放行，不阻塞生成。
func (r *Recorder) CheckDailyQuota(ctx context.Context, userID string, maxPerDay int64) error {
	if r == nil || r.repo == nil || maxPerDay <= 0 {
		return nil
	}

	now := r.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	used, err := r.TokenUsageSince(ctx, userID, start)
	if err != nil {
		logger.Warn(ctx, "token usage query failed, skipping quota check",
			"user_id", userID, "error", err.Error())
		return nil
	}
	if used >= maxPerDay {
		return QuotaExceededError{UserID: userID, Used: used, Max: maxPerDay}
	}
	return nil
}
