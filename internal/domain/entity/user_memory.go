// Package entity 定义领域实体
package entity

// MemoryKind 用户记忆类型
type MemoryKind string

const (
	// MemoryKindPreference 用户偏好（写作风格、行业、目标受众等）
	MemoryKindPreference MemoryKind = "preference"
	// MemoryKindActivity 用户历史内容（过往帖子与互动）
	MemoryKindActivity MemoryKind = "activity"
)

// UserMemory 用户记忆记录，按用户隔离存储在向量库中
type UserMemory struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Kind      MemoryKind `json:"kind"`
	Memory    string     `json:"memory"`
	CreatedAt int64      `json:"created_at"`
}

// MemoryHit 向量检索命中结果
type MemoryHit struct {
	Memory UserMemory `json:"memory"`
	Score  float32    `json:"score"`
}
