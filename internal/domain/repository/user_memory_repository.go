// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"linkedin-content-api/internal/domain/entity"
)

// UserMemoryRepository 用户记忆向量存取接口
type UserMemoryRepository interface {
	// Insert 写入记忆记录及其向量，records 与 vectors 一一对应
	Insert(ctx context.Context, records []*entity.UserMemory, vectors [][]float32) error
	// Search 在指定用户的记忆中做向量相似检索，按相似度降序返回
	Search(ctx context.Context, userID string, vector []float32, topK int) ([]entity.MemoryHit, error)
	// DeleteByUser 删除指定用户的全部记忆
	DeleteByUser(ctx context.Context, userID string) error
}
