package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"linkedin-content-api/internal/application/generation"
	"linkedin-content-api/pkg/errors"
)

type stubPostGenerator struct {
	result *generation.PostResult
	err    error
	gotReq *generation.PostRequest
}

func (s *stubPostGenerator) Generate(_ context.Context, req *generation.PostRequest) (*generation.PostResult, error) {
	s.gotReq = req
	return s.result, s.err
}

type stubCommentGenerator struct {
	result *generation.CommentResult
	err    error
	gotReq *generation.CommentRequest
}

func (s *stubCommentGenerator) Generate(_ context.Context, req *generation.CommentRequest) (*generation.CommentResult, error) {
	s.gotReq = req
	return s.result, s.err
}

type stubToneGenerator struct {
	result *generation.ToneResult
	err    error
}

func (s *stubToneGenerator) Generate(_ context.Context, _ *generation.ToneRequest) (*generation.ToneResult, error) {
	return s.result, s.err
}

func newTestRouter(posts PostGenerating, comments CommentGenerating, tones ToneGenerating) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewGenerationHandler(posts, comments, tones)
	engine.POST("/generate-post", h.GeneratePost)
	engine.POST("/generate-comment", h.GenerateComment)
	engine.POST("/professional-tone", h.GenerateTone)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGeneratePost(t *testing.T) {
	stub := &stubPostGenerator{
		result: &generation.PostResult{
			Post:                "Great things ahead! #AI",
			CharacterCount:      23,
			WordCount:           4,
			WithinLimits:        true,
			Hashtags:            []string{"#AI"},
			TokensUsed:          321,
			UserPreferencesUsed: true,
			ActivityStored:      true,
		},
	}
	engine := newTestRouter(stub, &stubCommentGenerator{}, &stubToneGenerator{})

	w := doJSON(t, engine, "/generate-post", map[string]any{
		"user_id":       "user-1",
		"input_context": "launching our new developer platform",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["success"] != true {
		t.Fatal("expected success=true")
	}
	if resp["post"] != "Great things ahead! #AI" {
		t.Fatalf("post = %v", resp["post"])
	}
	meta, ok := resp["metadata"].(map[string]any)
	if !ok {
		t.Fatal("metadata missing")
	}
	for _, key := range []string{"character_count", "word_count", "within_limits", "hashtags", "tokens_used", "user_preferences_used", "activity_stored"} {
		if _, ok := meta[key]; !ok {
			t.Fatalf("metadata missing key %q", key)
		}
	}
	if _, ok := resp["timestamp"]; !ok {
		t.Fatal("timestamp missing")
	}
	if stub.gotReq == nil || stub.gotReq.UserID != "user-1" {
		t.Fatal("generator did not receive request")
	}
}

func TestGeneratePostValidation(t *testing.T) {
	engine := newTestRouter(&stubPostGenerator{}, &stubCommentGenerator{}, &stubToneGenerator{})

	tests := []struct {
		name string
		body map[string]any
	}{
		{"缺少 user_id", map[string]any{"input_context": "a context long enough"}},
		{"input_context 过短", map[string]any{"user_id": "u1", "input_context": "short"}},
		{"user_id 过长", map[string]any{"user_id": string(make([]byte, 101)), "input_context": "a context long enough"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, engine, "/generate-post", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var resp map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp["success"] != false {
				t.Fatal("expected success=false")
			}
			if resp["error"] == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestGeneratePostUpstreamError(t *testing.T) {
	stub := &stubPostGenerator{
		err: errors.New(errors.CodeLLMCallFailed, "LLM call failed"),
	}
	engine := newTestRouter(stub, &stubCommentGenerator{}, &stubToneGenerator{})

	w := doJSON(t, engine, "/generate-post", map[string]any{
		"user_id":       "u1",
		"input_context": "a context long enough",
	})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestGenerateComment(t *testing.T) {
	stub := &stubCommentGenerator{
		result: &generation.CommentResult{
			Comment1:     "Insightful take!",
			Comment2:     "Strongly agree with this.",
			Comment3:     "Great point about timing.",
			TokensUsed:   150,
			CommentStyle: "Professional",
			CommentType:  "positive",
		},
	}
	engine := newTestRouter(&stubPostGenerator{}, stub, &stubToneGenerator{})

	w := doJSON(t, engine, "/generate-comment", map[string]any{
		"user_id":       "u1",
		"comment_style": "Professional",
		"comment_type":  "Positive",
		"post_text":     "We just launched our new platform.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	// 大小写混用的 comment_type 被归一化为小写
	if stub.gotReq == nil || stub.gotReq.CommentType != "positive" {
		t.Fatalf("comment type not normalized: %+v", stub.gotReq)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	comments, ok := resp["comments"].(map[string]any)
	if !ok {
		t.Fatal("comments missing")
	}
	for _, key := range []string{"comment1", "comment2", "comment3"} {
		if comments[key] == "" {
			t.Fatalf("comments missing key %q", key)
		}
	}
	meta := resp["metadata"].(map[string]any)
	if _, ok := meta["comment_lengths"]; !ok {
		t.Fatal("metadata missing comment_lengths")
	}
}

func TestGenerateCommentValidation(t *testing.T) {
	engine := newTestRouter(&stubPostGenerator{}, &stubCommentGenerator{}, &stubToneGenerator{})

	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "非法 comment_style",
			body: map[string]any{"user_id": "u1", "comment_style": "Casual", "comment_type": "positive", "post_text": "some post text"},
		},
		{
			name: "非法 comment_type",
			body: map[string]any{"user_id": "u1", "comment_style": "Short", "comment_type": "neutral", "post_text": "some post text"},
		},
		{
			name: "post_text 过短",
			body: map[string]any{"user_id": "u1", "comment_style": "Short", "comment_type": "positive", "post_text": "ab"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, engine, "/generate-comment", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGenerateTone(t *testing.T) {
	stub := &stubToneGenerator{
		result: &generation.ToneResult{
			ToneOne:    "Formal version.",
			ToneTwo:    "Modern version.",
			ToneThree:  "Executive version.",
			TokensUsed: 90,
		},
	}
	engine := newTestRouter(&stubPostGenerator{}, &stubCommentGenerator{}, stub)

	w := doJSON(t, engine, "/professional-tone", map[string]any{
		"user_id": "u1",
		"text":    "hey this needs polishing",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	tones, ok := resp["tones"].(map[string]any)
	if !ok {
		t.Fatal("tones missing")
	}
	for _, key := range []string{"tone_one", "tone_two", "tone_three"} {
		if tones[key] == "" {
			t.Fatalf("tones missing key %q", key)
		}
	}
}
