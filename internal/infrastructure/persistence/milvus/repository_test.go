package milvus

import "testing"

func TestUserFilterExpr(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		want   string
	}{
		{"普通用户", "user-123", `user_id == "user-123"`},
		{"含冒号", "org:42", `user_id == "org:42"`},
		{"含双引号", `x" || user_id != "`, `user_id == "x\" || user_id != \""`},
		{"含反斜杠", `a\b`, `user_id == "a\\b"`},
		{"反斜杠加引号", `a\"b`, `user_id == "a\\\"b"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := userFilterExpr(tc.userID); got != tc.want {
				t.Fatalf("userFilterExpr(%q) = %s, want %s", tc.userID, got, tc.want)
			}
		})
	}
}
