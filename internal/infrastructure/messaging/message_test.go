package messaging

import (
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	cfg := BackoffConfig{
		Initial:    time.Second,
		Max:        30 * time.Second,
		Multiplier: 2,
	}

	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{10, 30 * time.Second}, // capped at max
	}

	for _, tt := range tests {
		if got := cfg.CalculateBackoff(tt.retryCount); got != tt.want {
			t.Errorf("CalculateBackoff(%d) = %v, want %v", tt.retryCount, got, tt.want)
		}
	}
}

func TestDLQStream(t *testing.T) {
	if got := StreamMemoryAppend.DLQStream(); got != "dlq:stream:memory:append" {
		t.Errorf("DLQStream() = %q", got)
	}
}

func TestMessageMetadata(t *testing.T) {
	msg, err := NewMessage("m-1", "memory_append", "user-1", map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("NewMessage() error: %v", err)
	}

	msg.SetMetadata("request_id", "req-1")
	if got := msg.GetMetadata("request_id"); got != "req-1" {
		t.Errorf("GetMetadata(request_id) = %q, want %q", got, "req-1")
	}
	if got := msg.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %q, want empty", got)
	}

	var payload map[string]string
	if err := msg.UnmarshalPayload(&payload); err != nil {
		t.Fatalf("UnmarshalPayload() error: %v", err)
	}
	if payload["k"] != "v" {
		t.Errorf("payload[k] = %q, want %q", payload["k"], "v")
	}
}
