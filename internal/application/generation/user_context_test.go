package generation

import (
	"strings"
	"testing"
	"time"

	"linkedin-content-api/internal/domain/entity"
)

func hit(memory string, score float32, createdAt int64) entity.MemoryHit {
	return entity.MemoryHit{
		Memory: entity.UserMemory{Memory: memory, CreatedAt: createdAt},
		Score:  score,
	}
}

func TestFormatPreferences(t *testing.T) {
	tests := []struct {
		name     string
		hits     []entity.MemoryHit
		searchOK bool
		want     string
	}{
		{
			name:     "检索失败按新用户处理",
			hits:     []entity.MemoryHit{hit("style is casual", 0.9, 0)},
			searchOK: false,
			want:     "No previous preferences found - this is a new user.",
		},
		{
			name:     "无结果",
			hits:     nil,
			searchOK: true,
			want:     "No previous preferences found - this is a new user.",
		},
		{
			name:     "全部低于相关度下限",
			hits:     []entity.MemoryHit{hit("style is casual", 0.2, 0), hit("topic is ai", 0.3, 0)},
			searchOK: true,
			want:     "No specific preferences identified.",
		},
		{
			name:     "只保留高相关度偏好",
			hits:     []entity.MemoryHit{hit("style is casual", 0.8, 0), hit("topic is ai", 0.1, 0)},
			searchOK: true,
			want:     "- style is casual",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPreferences(tc.hits, tc.searchOK); got != tc.want {
				t.Fatalf("FormatPreferences() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatActivity(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Unix()

	t.Run("检索失败", func(t *testing.T) {
		got := FormatActivity(nil, false)
		if got != "No previous activity found - this is a new user." {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("无帖子相关记忆", func(t *testing.T) {
		got := FormatActivity([]entity.MemoryHit{hit("user likes coffee", 0.9, created)}, true)
		if got != "No previous post activity found." {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("帖子记忆带创建日期", func(t *testing.T) {
		got := FormatActivity([]entity.MemoryHit{hit("action is linkedin_post_generated", 0.9, created)}, true)
		want := "- action is linkedin_post_generated (Created: 2026-08-01)"
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("最多保留五条", func(t *testing.T) {
		hits := make([]entity.MemoryHit, 0, 7)
		for i := 0; i < 7; i++ {
			hits = append(hits, hit("wrote a post about go", 0.9, created))
		}
		got := FormatActivity(hits, true)
		if n := len(strings.Split(got, "\n")); n != 5 {
			t.Fatalf("activity lines = %d, want 5", n)
		}
	})
}

func TestBuildUserContext(t *testing.T) {
	got := BuildUserContext("prefs-block", "activity-block", "launching a product")
	for _, section := range []string{
		"**USER PREFERENCES:**\nprefs-block",
		"**PREVIOUS ACTIVITY PATTERNS:**\nactivity-block",
		"**CURRENT POST CONTEXT:**\nlaunching a product",
	} {
		if !strings.Contains(got, section) {
			t.Fatalf("user context missing section %q:\n%s", section, got)
		}
	}
}
