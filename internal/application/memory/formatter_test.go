package memory

import (
	"strings"
	"testing"
)

func TestFormatRecord(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		data   map[string]any
		want   string
	}{
		{
			name:   "空数据",
			userID: "u1",
			data:   nil,
			want:   "User preferences for u1:",
		},
		{
			name:   "单字段",
			userID: "u1",
			data:   map[string]any{"action": "linkedin_post_generated"},
			want:   "User preferences for u1: action is linkedin_post_generated",
		},
		{
			name:   "多字段按 key 排序",
			userID: "u2",
			data: map[string]any{
				"post_length": 120,
				"action":      "linkedin_post_generated",
			},
			want: "User preferences for u2: action is linkedin_post_generated, post_length is 120",
		},
		{
			name:   "字符串切片",
			userID: "u3",
			data:   map[string]any{"hashtags_used": []string{"#ai", "#golang"}},
			want:   "User preferences for u3: hashtags_used is #ai #golang",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRecord(tc.userID, tc.data); got != tc.want {
				t.Fatalf("FormatRecord() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatRecordNestedMap(t *testing.T) {
	got := FormatRecord("u1", map[string]any{
		"engagement_elements": map[string]any{
			"has_question":  true,
			"word_count":    250,
			"has_line_breaks": false,
		},
	})
	// 嵌套 map 同样按 key 排序展开
	want := "User preferences for u1: engagement_elements is has_line_breaks=false has_question=true word_count=250"
	if got != want {
		t.Fatalf("FormatRecord() = %q, want %q", got, want)
	}
	if !strings.Contains(got, "has_question=true") {
		t.Fatal("nested map value missing")
	}
}
