// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Timestamp 响应时间戳，UTC RFC3339。
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// Fail 返回错误响应
func Fail(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{
		Success:   false,
		Error:     message,
		Timestamp: Timestamp(),
	})
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Fail(c, 400, message)
}

// InternalError 返回 500 错误
func InternalError(c *gin.Context, message string) {
	Fail(c, 500, message)
}

// ServiceUnavailable 返回 503 错误
func ServiceUnavailable(c *gin.Context, message string) {
	Fail(c, 503, message)
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ReadinessCheck 单项就绪检查结果
type ReadinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

// ReadinessResponse 就绪检查响应
type ReadinessResponse struct {
	Status    string                     `json:"status"`
	Checks    map[string]*ReadinessCheck `json:"checks,omitempty"`
	Timestamp string                     `json:"timestamp"`
}
