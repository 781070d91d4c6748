// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"linkedin-content-api/internal/domain/entity"
)

type GenerationEventRepository interface {
	Create(ctx context.Context, event *entity.GenerationEvent) error
	GetTokenUsage(ctx context.Context, userID string, startInclusive, endExclusive time.Time) (int64, error)
}
