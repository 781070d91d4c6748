// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"
	"time"

	"linkedin-content-api/internal/domain/entity"
)

type GenerationEventRepository struct {
	client *Client
}

func NewGenerationEventRepository(client *Client) *GenerationEventRepository {
	return &GenerationEventRepository{client: client}
}

func (r *GenerationEventRepository) Create(ctx context.Context, event *entity.GenerationEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.GenerationEventRepository.Create")
	defer span.End()

	db := r.client.db.WithContext(ctx)
	if err := db.Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create generation event: %w", err)
	}
	return nil
}

func (r *GenerationEventRepository) GetTokenUsage(ctx context.Context, userID string, startInclusive, endExclusive time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.GenerationEventRepository.GetTokenUsage")
	defer span.End()

	db := r.client.db.WithContext(ctx)

	var total int64
	if err := db.Model(&entity.GenerationEvent{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, startInclusive, endExclusive).
		Select("COALESCE(SUM(COALESCE(tokens_prompt,0) + COALESCE(tokens_completion,0)),0)").
		Scan(&total).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get token usage: %w", err)
	}
	return total, nil
}
