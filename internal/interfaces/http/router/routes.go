// Package router 提供 HTTP 路由配置
package router

import (
	"linkedin-content-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterGenerationRoutes 注册内容生成路由。
// 生成端点代价高，单独挂限流中间件。
func RegisterGenerationRoutes(engine *gin.Engine, h *handler.GenerationHandler, rateLimit gin.HandlerFunc) {
	group := engine.Group("")
	if rateLimit != nil {
		group.Use(rateLimit)
	}

	group.POST("/generate-post", h.GeneratePost)
	group.POST("/generate-comment", h.GenerateComment)
	group.POST("/professional-tone", h.GenerateTone)
}

// RegisterMemoryRoutes 注册用户记忆管理路由。
// 清除端点在处理器内部按用户限流，不走 IP 维度的全局限流。
func RegisterMemoryRoutes(engine *gin.Engine, h *handler.MemoryHandler) {
	engine.DELETE("/user-memory/:user_id", h.ResetMemories)
}
