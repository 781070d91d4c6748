// Package usage 记录内容生成的 token 用量流水
package usage

import (
	"context"
	"time"

	"linkedin-content-api/internal/domain/entity"
	"linkedin-content-api/internal/domain/repository"
	"linkedin-content-api/pkg/logger"
)

// Recorder 用量流水记录器。写入失败只记日志，不影响生成请求。
type Recorder struct {
	repo repository.GenerationEventRepository
	now  func() time.Time
}

func NewRecorder(repo repository.GenerationEventRepository) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

// Record 写入一条生成事件。
func (r *Recorder) Record(ctx context.Context, event *entity.GenerationEvent) {
	if r == nil || r.repo == nil || event == nil {
		return
	}
	if err := r.repo.Create(ctx, event); err != nil {
		logger.Error(ctx, "failed to record generation event", err,
			"user_id", event.UserID,
			"kind", string(event.Kind),
		)
	}
}

// TokenUsageSince 查询用户在给定时间窗口内消耗的总 token 数。
func (r *Recorder) TokenUsageSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	if r == nil || r.repo == nil {
		return 0, nil
	}
	return r.repo.GetTokenUsage(ctx, userID, since, r.now())
}
