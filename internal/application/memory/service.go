package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"linkedin-content-api/internal/config"
	"linkedin-content-api/internal/domain/entity"
	"linkedin-content-api/internal/domain/repository"
	"linkedin-content-api/internal/infrastructure/embedding"
	"linkedin-content-api/internal/infrastructure/messaging"
	redispkg "linkedin-content-api/internal/infrastructure/persistence/redis"
	"linkedin-content-api/pkg/errors"
	"linkedin-content-api/pkg/logger"
)

// 检索结果缓存时长。写入新记忆时会按用户失效。
const searchCacheTTL = 5 * time.Minute

// Record 一条待写入的记忆
type Record struct {
	Kind   entity.MemoryKind
	Memory string
}

// Service 用户记忆服务：向量化写入、相似检索、缓存与异步回写。
type Service struct {
	repo     repository.UserMemoryRepository
	embedder embedding.Provider
	cache    *redispkg.Cache
	producer *messaging.Producer

	writebackEnabled bool
	writebackAsync   bool
}

func NewService(
	repo repository.UserMemoryRepository,
	embedder embedding.Provider,
	cache *redispkg.Cache,
	producer *messaging.Producer,
	cfg *config.FeaturesConfig,
) *Service {
	s := &Service{
		repo:     repo,
		embedder: embedder,
		cache:    cache,
		producer: producer,
	}
	if cfg != nil {
		s.writebackEnabled = cfg.MemoryWriteback.Enabled
		s.writebackAsync = cfg.MemoryWriteback.Async
	}
	return s
}

// Search 在用户自己的记忆里做相似检索，结果短暂缓存。
func (s *Service) Search(ctx context.Context, userID, query string, topK int) ([]entity.MemoryHit, error) {
	if s == nil || s.repo == nil || s.embedder == nil {
		return nil, errors.New(errors.CodeVectorDBError, "memory service not configured")
	}
	if topK <= 0 {
		topK = 5
	}

	load := func() (interface{}, error) {
		vectors, err := s.embedder.Embed(ctx, []string{query})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeEmbeddingFailed, "failed to embed search query")
		}
		if len(vectors) == 0 {
			return nil, errors.New(errors.CodeEmbeddingFailed, "embedding provider returned no vector")
		}
		return s.repo.Search(ctx, userID, vectors[0], topK)
	}

	if s.cache == nil {
		hits, err := load()
		if err != nil {
			return nil, err
		}
		return hits.([]entity.MemoryHit), nil
	}

	data, err := s.cache.GetOrLoadSafe(ctx, redispkg.BuildMemorySearchKey(userID, query), searchCacheTTL, load)
	if err != nil {
		return nil, err
	}
	var hits []entity.MemoryHit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, errors.Wrap(err, errors.CodeCacheError, "failed to decode cached memory hits")
	}
	return hits, nil
}

// Remember 同步写入记忆：向量化 -> 入库 -> 失效该用户的检索缓存。
func (s *Service) Remember(ctx context.Context, userID string, records []Record) error {
	if s == nil || s.repo == nil || s.embedder == nil {
		return errors.New(errors.CodeVectorDBError, "memory service not configured")
	}
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, 0, len(records))
	for _, r := range records {
		texts = append(texts, r.Memory)
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return errors.Wrap(err, errors.CodeEmbeddingFailed, "failed to embed memory records")
	}
	if len(vectors) != len(records) {
		return errors.New(errors.CodeEmbeddingFailed,
			fmt.Sprintf("embedding count mismatch: got %d, want %d", len(vectors), len(records)))
	}

	now := time.Now().Unix()
	entities := make([]*entity.UserMemory, 0, len(records))
	for _, r := range records {
		entities = append(entities, &entity.UserMemory{
			ID:        uuid.NewString(),
			UserID:    userID,
			Kind:      r.Kind,
			Memory:    r.Memory,
			CreatedAt: now,
		})
	}
	if err := s.repo.Insert(ctx, entities, vectors); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUserMemories(ctx, userID); err != nil {
			logger.Warn(ctx, "failed to invalidate memory cache", "user_id", userID, "error", err.Error())
		}
	}
	return nil
}

// Forget 删除用户的全部记忆，并清掉该用户的检索缓存。
// 记忆不可用时返回错误，调用方据此报 502 而不是假装删成功。
func (s *Service) Forget(ctx context.Context, userID string) error {
	if s == nil || s.repo == nil {
		return errors.New(errors.CodeVectorDBError, "memory service not configured")
	}

	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateUserMemories(ctx, userID); err != nil {
			logger.Warn(ctx, "failed to invalidate memory cache", "user_id", userID, "error", err.Error())
		}
	}
	return nil
}

// Append 按回写策略写入记忆。
// 异步模式下只负责投递消息，由 memory-worker 消费落库。
// 返回值表示记忆是否已被接收（投递成功或同步写入成功）。
func (s *Service) Append(ctx context.Context, userID string, records []Record) bool {
	if s == nil || !s.writebackEnabled || len(records) == 0 {
		return false
	}

	if s.writebackAsync && s.producer != nil {
		msg := &messaging.MemoryAppendMessage{
			MessageID: uuid.NewString(),
			UserID:    userID,
			RequestID: ctxString(ctx, logger.RequestIDKey),
			TraceID:   ctxString(ctx, logger.TraceIDKey),
		}
		for _, r := range records {
			msg.Records = append(msg.Records, messaging.MemoryRecord{
				Kind:   string(r.Kind),
				Memory: r.Memory,
			})
		}
		if _, err := s.producer.PublishMemoryAppend(ctx, msg); err != nil {
			logger.Error(ctx, "failed to publish memory writeback", err, "user_id", userID)
			return false
		}
		return true
	}

	if err := s.Remember(ctx, userID, records); err != nil {
		logger.Error(ctx, "failed to store memory", err, "user_id", userID)
		return false
	}
	return true
}

func ctxString(ctx context.Context, key logger.ContextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
