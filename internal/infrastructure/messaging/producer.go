// Package messaging 提供消息队列实现
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("messaging")

// Producer 消息生产者
type Producer struct {
	client *redis.Client
	maxLen int64
}

// NewProducer 创建消息生产者
func NewProducer(client *redis.Client, maxLen int64) *Producer {
	if maxLen <= 0 {
		maxLen = 100000
	}
	return &Producer{
		client: client,
		maxLen: maxLen,
	}
}

// Publish 发布消息到指定流
func (p *Producer) Publish(ctx context.Context, stream Stream, msg *Message) (string, error) {
	ctx, span := tracer.Start(ctx, "producer.Publish",
		trace.WithAttributes(
			attribute.String("stream", string(stream)),
			attribute.String("message.id", msg.ID),
			attribute.String("message.type", msg.Type),
		))
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: string(stream),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	span.SetAttributes(attribute.String("stream.message_id", result))
	return result, nil
}

// PublishMemoryAppend 发布记忆回写任务
func (p *Producer) PublishMemoryAppend(ctx context.Context, append *MemoryAppendMessage) (string, error) {
	msg, err := NewMessage(append.MessageID, "memory_append", append.UserID, append)
	if err != nil {
		return "", err
	}

	if append.RequestID != "" {
		msg.SetMetadata("request_id", append.RequestID)
	}
	if append.TraceID != "" {
		msg.SetMetadata("trace_id", append.TraceID)
	}

	return p.Publish(ctx, StreamMemoryAppend, msg)
}

// MemoryRecord 单条待写入的记忆
type MemoryRecord struct {
	Kind   string `json:"kind"`
	Memory string `json:"memory"`
}

// MemoryAppendMessage 记忆回写消息
type MemoryAppendMessage struct {
	MessageID string         `json:"message_id"`
	UserID    string         `json:"user_id"`
	Records   []MemoryRecord `json:"records"`
	RequestID string         `json:"request_id,omitempty"`
	TraceID   string         `json:"trace_id,omitempty"`
}
