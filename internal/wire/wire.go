//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"linkedin-content-api/internal/application/generation"
	"linkedin-content-api/internal/application/memory"
	"linkedin-content-api/internal/application/usage"
	"linkedin-content-api/internal/config"
	"linkedin-content-api/internal/domain/repository"
	"linkedin-content-api/internal/infrastructure/llm"
	"linkedin-content-api/internal/infrastructure/persistence/postgres"
	"linkedin-content-api/internal/infrastructure/persistence/redis"
	"linkedin-content-api/internal/interfaces/http/handler"
	"linkedin-content-api/internal/interfaces/http/router"
	wfchain "linkedin-content-api/internal/workflow/chain"
	workflowport "linkedin-content-api/internal/workflow/port"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		PostgresSet,
		RedisSet,
		MessagingSet,
		EmbeddingSet,
		MilvusAppSet,
		MemorySet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeBootstrap 初始化 bootstrap 数据层（PostgreSQL + Milvus）
func InitializeBootstrap(ctx context.Context, cfg *config.Config) (*BootstrapLayer, func(), error) {
	wire.Build(
		ProvidePostgresClient,
		ProvideMilvusClient,
		ProvideMilvusRepository,
		wire.Struct(new(BootstrapLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeMemoryLayer 初始化 memory-worker 依赖（Milvus 必达）
func InitializeMemoryLayer(ctx context.Context, cfg *config.Config) (*MemoryLayer, func(), error) {
	wire.Build(
		RedisSet,
		MessagingSet,
		EmbeddingSet,
		ProvideMilvusClient,
		ProvideMilvusRepository,
		ProvideUserMemoryRepository,
		ProvideFeaturesConfig,
		memory.NewService,
		wire.Struct(new(MemoryLayer), "*"),
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewGenerationEventRepository,
	wire.Bind(new(repository.GenerationEventRepository), new(*postgres.GenerationEventRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
)

// MessagingSet 消息队列提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
)

// MilvusAppSet API 服务可选 Milvus（不可达时降级为无记忆生成）
var MilvusAppSet = wire.NewSet(
	ProvideMilvusClientOptional,
	ProvideMilvusRepositoryOptional,
	ProvideUserMemoryRepository,
)

// EmbeddingSet 可选 Embedder（不可用时禁用记忆检索/写入）
var EmbeddingSet = wire.NewSet(
	ProvideEmbedderOptional,
)

// MemorySet 用户记忆服务提供者集合
var MemorySet = wire.NewSet(
	ProvideFeaturesConfig,
	memory.NewService,
)

// GenerationSet 内容生成编排提供者集合
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	wfchain.NewPostChain,
	wfchain.NewCommentChain,
	wfchain.NewToneChain,
	ProvideImageGenerator,
	usage.NewRecorder,
	generation.NewPostGenerator,
	generation.NewCommentGenerator,
	generation.NewToneGenerator,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	wire.Bind(new(handler.PostGenerating), new(*generation.PostGenerator)),
	wire.Bind(new(handler.CommentGenerating), new(*generation.CommentGenerator)),
	wire.Bind(new(handler.ToneGenerating), new(*generation.ToneGenerator)),
	wire.Bind(new(handler.MemoryResetting), new(*memory.Service)),
	wire.Bind(new(handler.UserRateLimiter), new(*redis.RateLimiter)),
	handler.NewHealthHandler,
	handler.NewGenerationHandler,
	handler.NewMemoryHandler,
	ProvideRateLimitMiddleware,
	router.New,
)
