package node

import "testing"

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "纯 JSON 对象",
			in:   `{"linkedin_post":{"linkedin_post":"hello"}}`,
			want: `{"linkedin_post":{"linkedin_post":"hello"}}`,
		},
		{
			name: "JSON 前后夹杂文本",
			in:   "Here is the result:\n```json\n{\"a\":1}\n```\nthanks",
			want: `{"a":1}`,
		},
		{
			name: "JSON 数组",
			in:   `noise [1,2,3] tail`,
			want: `[1,2,3]`,
		},
		{
			name: "对象在数组之前",
			in:   `{"items":[1,2]} extra`,
			want: `{"items":[1,2]}`,
		},
		{
			name: "空字符串",
			in:   "   ",
			want: "",
		},
		{
			name: "无 JSON 内容",
			in:   "plain text only",
			want: "plain text only",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSONObject(tc.in); got != tc.want {
				t.Fatalf("ExtractJSONObject(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsResponseFormatUnsupportedError(t *testing.T) {
	if IsResponseFormatUnsupportedError(nil) {
		t.Fatal("nil error should not be treated as unsupported response format")
	}
	tests := []struct {
		msg  string
		want bool
	}{
		{"invalid response_format parameter", true},
		{"json_schema is not supported by this model", true},
		{"unknown parameter: response_format", true},
		{"failed to parse model output", true},
		{"connection refused", false},
		{"rate limit exceeded", false},
	}
	for _, tc := range tests {
		if got := IsResponseFormatUnsupportedError(errEmbed(tc.msg)); got != tc.want {
			t.Fatalf("IsResponseFormatUnsupportedError(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

type errEmbed string

func (e errEmbed) Error() string { return string(e) }
