package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want int
	}{
		{"invalid param", CodeInvalidParam, http.StatusBadRequest},
		{"validation failed", CodeValidationFailed, http.StatusBadRequest},
		{"not found", CodeNotFound, http.StatusNotFound},
		{"too many requests", CodeTooManyRequests, http.StatusTooManyRequests},
		{"service unavailable", CodeServiceUnavailable, http.StatusServiceUnavailable},
		{"llm provider error", CodeLLMProviderError, http.StatusBadGateway},
		{"llm call failed", CodeLLMCallFailed, http.StatusBadGateway},
		{"embedding failed", CodeEmbeddingFailed, http.StatusBadGateway},
		{"image gen failed", CodeImageGenFailed, http.StatusBadGateway},
		{"database error", CodeDatabaseError, http.StatusInternalServerError},
		{"unknown", CodeUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.code, "x").HTTPStatus; got != tt.want {
				t.Errorf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeLLMProviderError, "provider call failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match the cause via errors.Is")
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("HTTPStatus = %d, want %d", err.HTTPStatus, http.StatusBadGateway)
	}
}

func TestAsAppError(t *testing.T) {
	app := New(CodeGenerationFailed, "failed")
	if got := AsAppError(app); got != app {
		t.Error("AsAppError should return the same *AppError")
	}

	plain := stderrors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeUnknown {
		t.Errorf("Code = %s, want %s", got.Code, CodeUnknown)
	}
	if !stderrors.Is(got, plain) {
		t.Error("converted error should wrap the original")
	}
}
