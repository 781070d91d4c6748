package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"linkedin-content-api/internal/config"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHealthHandler(&config.Config{App: config.AppConfig{Version: "1.0.0"}}, nil, nil, nil)
	engine.GET("/health", h.Health)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Fatalf("status field = %v, want healthy", resp["status"])
	}
	if resp["version"] != "1.0.0" {
		t.Fatalf("version = %v", resp["version"])
	}
	if resp["timestamp"] == "" {
		t.Fatal("timestamp missing")
	}
}

func TestReadyWithoutDependencies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHealthHandler(&config.Config{}, nil, nil, nil)
	engine.GET("/ready", h.Ready)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	// 必需依赖缺失时不就绪
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "not_ready" {
		t.Fatalf("status field = %v, want not_ready", resp["status"])
	}
}
