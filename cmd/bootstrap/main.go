package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"linkedin-content-api/internal/config"
	"linkedin-content-api/internal/domain/entity"
	"linkedin-content-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化数据层（PostgreSQL + Milvus）
	dataLayer, cleanup, err := wire.InitializeBootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. PostgreSQL 表结构迁移
	fmt.Println("Migrating postgres schema...")
	if err := dataLayer.PgClient.DB().AutoMigrate(&entity.GenerationEvent{}); err != nil {
		log.Fatalf("failed to migrate postgres schema: %v", err)
	}
	fmt.Println("Postgres schema up to date.")

	// 4. Milvus 集合与索引
	fmt.Println("Ensuring milvus collection...")
	if err := dataLayer.VectorRepo.EnsureUserMemoriesCollection(ctx); err != nil {
		log.Fatalf("failed to ensure milvus collection: %v", err)
	}
	fmt.Println("Milvus collection ready.")

	fmt.Println("Bootstrap completed successfully.")
}
