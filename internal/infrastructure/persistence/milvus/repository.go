// Package milvus 提供 Milvus 向量数据库访问层实现
package milvus

import (
	"context"
	"fmt"
	"strings"
	"time"

	milvusentity "github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"linkedin-content-api/internal/domain/entity"
	"linkedin-content-api/pkg/metrics"
)

// Repository 用户记忆向量仓储
type Repository struct {
	client    *Client
	dimension int
}

// NewRepository 创建用户记忆向量仓储
func NewRepository(client *Client, dimension int) *Repository {
	if dimension <= 0 {
		dimension = DefaultVectorDimension
	}
	return &Repository{client: client, dimension: dimension}
}

// CreateCollection 创建集合
func (r *Repository) CreateCollection(ctx context.Context, schema *milvusentity.Schema) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateCollection",
		trace.WithAttributes(attribute.String("collection", schema.CollectionName)))
	defer span.End()

	collName := r.client.CollectionName(schema.CollectionName)
	schema.CollectionName = collName

	err := r.client.milvus.CreateCollection(ctx, schema, milvusentity.DefaultShardNumber)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// CreateIndex 创建 HNSW 索引
func (r *Repository) CreateIndex(ctx context.Context, collection string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.CreateIndex",
		trace.WithAttributes(attribute.String("collection", collection)))
	defer span.End()

	collName := r.client.CollectionName(collection)

	idx, err := milvusentity.NewIndexHNSW(
		milvusentity.COSINE,
		r.client.config.HNSWM,
		r.client.config.HNSWEfConstruction,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	err = r.client.milvus.CreateIndex(ctx, collName, "vector", idx, false)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// Insert 插入用户记忆记录，records 与 vectors 一一对应
func (r *Repository) Insert(ctx context.Context, records []*entity.UserMemory, vectors [][]float32) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.InsertMemories",
		trace.WithAttributes(attribute.Int("count", len(records))))
	defer span.End()

	if len(records) == 0 {
		return nil
	}
	if len(records) != len(vectors) {
		return fmt.Errorf("records/vectors length mismatch: %d != %d", len(records), len(vectors))
	}

	collName := r.client.CollectionName(CollectionUserMemories)

	ids := make([]string, len(records))
	userIDs := make([]string, len(records))
	kinds := make([]string, len(records))
	memories := make([]string, len(records))
	createdAts := make([]int64, len(records))

	for i, rec := range records {
		ids[i] = rec.ID
		userIDs[i] = rec.UserID
		kinds[i] = string(rec.Kind)
		memories[i] = rec.Memory
		createdAts[i] = rec.CreatedAt
	}

	idCol := milvusentity.NewColumnVarChar("id", ids)
	vectorCol := milvusentity.NewColumnFloatVector("vector", r.dimension, vectors)
	userCol := milvusentity.NewColumnVarChar("user_id", userIDs)
	kindCol := milvusentity.NewColumnVarChar("kind", kinds)
	memoryCol := milvusentity.NewColumnVarChar("memory", memories)
	createdCol := milvusentity.NewColumnInt64("created_at", createdAts)

	_, err := r.client.milvus.Insert(ctx, collName, "",
		idCol, vectorCol, userCol, kindCol, memoryCol, createdCol)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to insert memories: %w", err)
	}

	return nil
}

// exprEscaper 转义字符串字面量里的反斜杠和双引号
var exprEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// userFilterExpr 构建按用户隔离的过滤表达式。
// user_id 来自请求方，拼接前必须转义，否则可以借引号改写过滤条件读到别人的记忆。
func userFilterExpr(userID string) string {
	return fmt.Sprintf(`user_id == "%s"`, exprEscaper.Replace(userID))
}

// Search 在指定用户的记忆中做向量相似检索
func (r *Repository) Search(ctx context.Context, userID string, vector []float32, topK int) ([]entity.MemoryHit, error) {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return nil, fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.SearchMemories",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.Int("top_k", topK),
		))
	defer span.End()

	start := time.Now()
	collName := r.client.CollectionName(CollectionUserMemories)

	filter := userFilterExpr(userID)

	sp, err := milvusentity.NewIndexHNSWSearchParam(128)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create search param: %w", err)
	}

	results, err := r.client.milvus.Search(ctx,
		collName,
		nil,
		filter,
		[]string{"id", "user_id", "kind", "memory", "created_at"},
		[]milvusentity.Vector{milvusentity.FloatVector(vector)},
		"vector",
		milvusentity.COSINE,
		topK,
		sp,
	)
	metrics.MilvusSearchDuration.WithLabelValues(CollectionUserMemories).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MilvusSearchTotal.WithLabelValues(CollectionUserMemories, "error").Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	metrics.MilvusSearchTotal.WithLabelValues(CollectionUserMemories, "success").Inc()

	var hits []entity.MemoryHit
	for _, result := range results {
		for i := 0; i < result.ResultCount; i++ {
			hit := entity.MemoryHit{
				Score: result.Scores[i],
			}

			if idCol, ok := result.Fields.GetColumn("id").(*milvusentity.ColumnVarChar); ok {
				hit.Memory.ID = idCol.Data()[i]
			}
			if userCol, ok := result.Fields.GetColumn("user_id").(*milvusentity.ColumnVarChar); ok {
				hit.Memory.UserID = userCol.Data()[i]
			}
			if kindCol, ok := result.Fields.GetColumn("kind").(*milvusentity.ColumnVarChar); ok {
				hit.Memory.Kind = entity.MemoryKind(kindCol.Data()[i])
			}
			if memCol, ok := result.Fields.GetColumn("memory").(*milvusentity.ColumnVarChar); ok {
				hit.Memory.Memory = memCol.Data()[i]
			}
			if createdCol, ok := result.Fields.GetColumn("created_at").(*milvusentity.ColumnInt64); ok {
				hit.Memory.CreatedAt = createdCol.Data()[i]
			}

			hits = append(hits, hit)
		}
	}

	span.SetAttributes(attribute.Int("result_count", len(hits)))
	return hits, nil
}

// DeleteByUser 删除指定用户的全部记忆
func (r *Repository) DeleteByUser(ctx context.Context, userID string) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}
	ctx, span := tracer.Start(ctx, "milvus.DeleteMemoriesByUser",
		trace.WithAttributes(attribute.String("user_id", userID)))
	defer span.End()

	collName := r.client.CollectionName(CollectionUserMemories)
	filter := userFilterExpr(userID)

	err := r.client.milvus.Delete(ctx, collName, "", filter)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete memories: %w", err)
	}

	return nil
}

// EnsureUserMemoriesCollection 确保 user_memories 集合与索引可用（不存在则创建）。
// 约束：不会做 drop/rebuild 等破坏性操作。
func (r *Repository) EnsureUserMemoriesCollection(ctx context.Context) error {
	if r == nil || r.client == nil || r.client.milvus == nil {
		return fmt.Errorf("milvus client not configured")
	}

	exists, err := r.client.HasCollection(ctx, CollectionUserMemories)
	if err != nil {
		return err
	}
	if !exists {
		if err := r.CreateCollection(ctx, UserMemoriesSchema(r.dimension)); err != nil {
			return err
		}
		// 新建集合时创建索引；若失败，允许后续由运维介入。
		_ = r.CreateIndex(ctx, CollectionUserMemories)
	}

	// 尝试确保集合已加载（若已加载，Milvus 会返回成功）
	return r.client.LoadCollection(ctx, CollectionUserMemories)
}
