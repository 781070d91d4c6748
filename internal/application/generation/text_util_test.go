package generation

import (
	"strings"
	"testing"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"无标签", "just a plain post", []string{}},
		{"单个标签", "growth mindset #Leadership", []string{"#Leadership"}},
		{"多个标签", "#AI is changing #DevOps workflows #Go", []string{"#AI", "#DevOps", "#Go"}},
		{"井号后无内容", "ending with # alone", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractHashtags(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("ExtractHashtags(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ExtractHashtags(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestTruncatePost(t *testing.T) {
	short := "a short post"
	if got := TruncatePost(short); got != short {
		t.Fatalf("short post should not be truncated, got %q", got)
	}

	long := strings.Repeat("x", 3500)
	got := TruncatePost(long)
	if CountCharacters(got) != 2953 {
		t.Fatalf("truncated length = %d, want 2953", CountCharacters(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatal("truncated post should end with ellipsis")
	}

	// 正好 3000 字符不截断
	exact := strings.Repeat("y", 3000)
	if got := TruncatePost(exact); got != exact {
		t.Fatal("post at exactly 3000 characters should not be truncated")
	}
}

func TestWithinLimits(t *testing.T) {
	if !WithinLimits(3000, 600) {
		t.Fatal("boundary values should be within limits")
	}
	if WithinLimits(3001, 100) {
		t.Fatal("3001 characters should exceed limits")
	}
	if WithinLimits(100, 601) {
		t.Fatal("601 words should exceed limits")
	}
}

func TestAnalyzeEngagementElements(t *testing.T) {
	post := "Recently I shipped a big project.\nWhat are your thoughts? Share your experience below!"
	el := AnalyzeEngagementElements(post)

	if !el.HasQuestion {
		t.Fatal("expected has_question to be true")
	}
	if !el.HasCallToAction {
		t.Fatal("expected has_call_to_action to be true")
	}
	if !el.HasPersonalStory {
		t.Fatal("expected has_personal_story to be true")
	}
	if !el.HasLineBreaks {
		t.Fatal("expected has_line_breaks to be true")
	}
	if !el.WithinLinkedInLimits {
		t.Fatal("expected within_linkedin_limits to be true")
	}
	if el.OptimalLength {
		t.Fatal("short post should not be optimal length")
	}
	if el.WordCount != CountWords(post) || el.CharacterCount != CountCharacters(post) {
		t.Fatal("word/character counts mismatch")
	}
}

func TestCommentStyleLimit(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Professional", 1200},
		{"Friendly", 800},
		{"Long", 1250},
		{"Short", 400},
		{"Unknown", 1000},
		{"", 1000},
	}
	for _, tc := range tests {
		if got := CommentStyleLimit(tc.style); got != tc.want {
			t.Fatalf("CommentStyleLimit(%q) = %d, want %d", tc.style, got, tc.want)
		}
	}
}

func TestPreviewText(t *testing.T) {
	short := "short text"
	if got := PreviewText(short, 100); got != short {
		t.Fatalf("PreviewText short = %q", got)
	}
	long := strings.Repeat("a", 150)
	got := PreviewText(long, 100)
	if got != strings.Repeat("a", 100)+"..." {
		t.Fatalf("PreviewText long = %q", got)
	}
}
