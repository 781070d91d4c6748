package embedding

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"

	"linkedin-content-api/internal/config"
)

// Provider 文本向量化接口，屏蔽 openai/自托管两种后端
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider 按配置创建 Embedding Provider
func NewProvider(ctx context.Context, cfg *config.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		embedder, err := NewEinoEmbedder(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &einoProvider{embedder: embedder, batchSize: cfg.BatchSize}, nil
	case "http":
		return NewClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

type einoProvider struct {
	embedder  embedding.Embedder
	batchSize int
}

func (p *einoProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batchSize := p.batchSize
	if batchSize <= 0 {
		batchSize = 16
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		v64, err := p.embedder.EmbedStrings(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		for _, vec := range v64 {
			f32 := make([]float32, 0, len(vec))
			for _, x := range vec {
				f32 = append(f32, float32(x))
			}
			out = append(out, f32)
		}
	}
	return out, nil
}
