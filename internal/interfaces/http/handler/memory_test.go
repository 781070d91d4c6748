package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"linkedin-content-api/pkg/errors"
)

type stubMemoryResetter struct {
	err       error
	gotUserID string
}

func (s *stubMemoryResetter) Forget(_ context.Context, userID string) error {
	s.gotUserID = userID
	return s.err
}

type stubUserLimiter struct {
	allowed bool
	err     error
	gotKey  string
}

func (s *stubUserLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	s.gotKey = key
	return s.allowed, s.err
}

func newMemoryTestRouter(memories MemoryResetting, limiter UserRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewMemoryHandler(memories, limiter)
	engine.DELETE("/user-memory/:user_id", h.ResetMemories)
	return engine
}

func doDelete(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestResetMemories(t *testing.T) {
	stub := &stubMemoryResetter{}
	limiter := &stubUserLimiter{allowed: true}
	engine := newMemoryTestRouter(stub, limiter)

	w := doDelete(t, engine, "/user-memory/user-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if stub.gotUserID != "user-1" {
		t.Fatalf("forgot user %q, want %q", stub.gotUserID, "user-1")
	}
	if !strings.Contains(limiter.gotKey, "user-1") {
		t.Fatalf("rate limit key %q not scoped to user", limiter.gotKey)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("success = %v, want true", resp["success"])
	}
}

func TestResetMemoriesRateLimited(t *testing.T) {
	stub := &stubMemoryResetter{}
	engine := newMemoryTestRouter(stub, &stubUserLimiter{allowed: false})

	w := doDelete(t, engine, "/user-memory/user-1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if stub.gotUserID != "" {
		t.Fatal("memories deleted despite rate limit")
	}
}

func TestResetMemoriesUserIDTooLong(t *testing.T) {
	stub := &stubMemoryResetter{}
	engine := newMemoryTestRouter(stub, &stubUserLimiter{allowed: true})

	w := doDelete(t, engine, "/user-memory/"+strings.Repeat("x", 101))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if stub.gotUserID != "" {
		t.Fatal("memories deleted despite invalid user_id")
	}
}

func TestResetMemoriesServiceUnavailable(t *testing.T) {
	stub := &stubMemoryResetter{err: errors.New(errors.CodeVectorDBError, "memory service not configured")}
	engine := newMemoryTestRouter(stub, &stubUserLimiter{allowed: true})

	w := doDelete(t, engine, "/user-memory/user-1")
	if w.Code == http.StatusOK {
		t.Fatalf("status = %d, want an error status, body: %s", w.Code, w.Body.String())
	}
}
