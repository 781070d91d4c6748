// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/gin-gonic/gin"

	"linkedin-content-api/internal/application/memory"
	"linkedin-content-api/internal/config"
	"linkedin-content-api/internal/domain/repository"
	"linkedin-content-api/internal/infrastructure/embedding"
	"linkedin-content-api/internal/infrastructure/image"
	"linkedin-content-api/internal/infrastructure/messaging"
	"linkedin-content-api/internal/infrastructure/persistence/milvus"
	"linkedin-content-api/internal/infrastructure/persistence/postgres"
	"linkedin-content-api/internal/infrastructure/persistence/redis"
	"linkedin-content-api/internal/interfaces/http/middleware"
	"linkedin-content-api/pkg/logger"
)

// BootstrapLayer bootstrap 所需的数据层依赖容器
type BootstrapLayer struct {
	PgClient     *postgres.Client
	MilvusClient *milvus.Client
	VectorRepo   *milvus.Repository
}

// MemoryLayer memory-worker 所需的依赖容器
type MemoryLayer struct {
	RedisClient *redis.Client
	Memories    *memory.Service
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), int64(maxLen))
}

// ProvideMilvusClient 提供 Milvus 客户端
func ProvideMilvusClient(ctx context.Context, cfg *config.Config) (*milvus.Client, func(), error) {
	client, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

func ProvideMilvusClientOptional(ctx context.Context, cfg *config.Config) (*milvus.Client, func(), error) {
	client, err := milvus.NewClient(ctx, &cfg.Vector.Milvus)
	if err != nil {
		logger.Warn(ctx, "milvus not available, memory features disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideMilvusRepository 提供向量仓储
func ProvideMilvusRepository(client *milvus.Client, cfg *config.Config) *milvus.Repository {
	return milvus.NewRepository(client, cfg.Embedding.Dimension)
}

func ProvideMilvusRepositoryOptional(client *milvus.Client, cfg *config.Config) *milvus.Repository {
	if client == nil {
		return nil
	}
	return milvus.NewRepository(client, cfg.Embedding.Dimension)
}

// ProvideUserMemoryRepository 把具体仓储转成领域接口，nil 保持 nil
func ProvideUserMemoryRepository(repo *milvus.Repository) repository.UserMemoryRepository {
	if repo == nil {
		return nil
	}
	return repo
}

func ProvideEmbedderOptional(ctx context.Context, cfg *config.Config) (embedding.Provider, error) {
	provider, err := embedding.NewProvider(ctx, &cfg.Embedding)
	if err != nil {
		logger.Warn(ctx, "embedding not available, memory features disabled", "error", err.Error())
		return nil, nil
	}
	return provider, nil
}

// ProvideFeaturesConfig 提供功能开关配置
func ProvideFeaturesConfig(cfg *config.Config) *config.FeaturesConfig {
	return &cfg.Features
}

// ProvideImageGenerator 提供配图生成器
func ProvideImageGenerator(cfg *config.Config) *image.Generator {
	return image.NewGenerator(&cfg.Image)
}

// ProvideRateLimitMiddleware 提供限流中间件
func ProvideRateLimitMiddleware(cfg *config.Config, limiter *redis.RateLimiter) gin.HandlerFunc {
	return middleware.NewRateLimitMiddleware(cfg.Security.RateLimit, limiter)
}
