// Package entity 定义领域实体
package entity

import "time"

// GenerationKind 内容生成类型
type GenerationKind string

const (
	GenerationKindPost    GenerationKind = "post"
	GenerationKindComment GenerationKind = "comment"
	GenerationKindTone    GenerationKind = "tone"
)

// GenerationEvent 一次内容生成的用量记录
type GenerationEvent struct {
	ID               string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           string         `json:"user_id" gorm:"type:varchar(100);index;not null"`
	Kind             GenerationKind `json:"kind" gorm:"type:varchar(16);not null"`
	Provider         string         `json:"provider" gorm:"type:varchar(32);not null"`
	Model            string         `json:"model" gorm:"type:varchar(64);not null"`
	TokensPrompt     int            `json:"tokens_prompt" gorm:"not null;default:0"`
	TokensCompletion int            `json:"tokens_completion" gorm:"not null;default:0"`
	DurationMs       int            `json:"duration_ms" gorm:"not null;default:0"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (GenerationEvent) TableName() string {
	return "generation_events"
}
