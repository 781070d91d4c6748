// Package image 提供图片生成客户端
package image

import (
	"context"
	"fmt"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"linkedin-content-api/internal/config"
	"linkedin-content-api/pkg/metrics"
)

var tracer = otel.Tracer("image")

// dallE3PricePerImage 1024x1024 标准质量单张价格（USD）
const dallE3PricePerImage = "0.04"

// Result 图片生成结果
type Result struct {
	URL   string `json:"url"`
	Model string `json:"model"`
	Size  string `json:"size"`
	Price string `json:"price"`
}

// Generator 图片生成器
type Generator struct {
	client *goopenai.Client
	model  string
	size   string
}

// NewGenerator 创建图片生成器
func NewGenerator(cfg *config.ImageConfig) *Generator {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = goopenai.CreateImageModelDallE3
	}
	size := cfg.Size
	if size == "" {
		size = goopenai.CreateImageSize1024x1024
	}

	return &Generator{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  model,
		size:   size,
	}
}

// Generate 根据提示词生成一张图片，返回托管 URL
func (g *Generator) Generate(ctx context.Context, prompt string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "image.Generate",
		trace.WithAttributes(
			attribute.String("image.model", g.model),
			attribute.String("image.size", g.size),
		))
	defer span.End()

	start := time.Now()
	resp, err := g.client.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		Size:           g.size,
		N:              1,
		ResponseFormat: goopenai.CreateImageResponseFormatURL,
	})
	if err != nil {
		metrics.ImageGenTotal.WithLabelValues(g.model, "error").Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		metrics.ImageGenTotal.WithLabelValues(g.model, "error").Inc()
		return nil, fmt.Errorf("image response contains no url")
	}

	metrics.ImageGenTotal.WithLabelValues(g.model, "success").Inc()
	span.SetAttributes(attribute.Int64("image.duration_ms", time.Since(start).Milliseconds()))

	return &Result{
		URL:   resp.Data[0].URL,
		Model: g.model,
		Size:  g.size,
		Price: dallE3PricePerImage,
	}, nil
}
