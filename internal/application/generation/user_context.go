package generation

import (
	"fmt"
	"strings"
	"time"

	"linkedin-content-api/internal/domain/entity"
)

// 偏好相关度下限，低于该分数的记忆不进入提示词。
const preferenceScoreFloor = 0.3

// 历史活动最多取最近 5 条进入提示词。
const maxActivityLines = 5

// FormatPreferences 把偏好检索结果格式化为提示词块。
// searchOK 为 false 表示检索本身失败，按新用户处理。
func FormatPreferences(hits []entity.MemoryHit, searchOK bool) string {
	if !searchOK || len(hits) == 0 {
		return "No previous preferences found - this is a new user."
	}

	lines := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Score > preferenceScoreFloor && hit.Memory.Memory != "" {
			lines = append(lines, "- "+hit.Memory.Memory)
		}
	}
	if len(lines) == 0 {
		return "No specific preferences identified."
	}
	return strings.Join(lines, "\n")
}

// FormatActivity 把历史活动检索结果格式化为提示词块。
// 只保留与帖子相关的记忆，带上创建日期，最多 5 条。
func FormatActivity(hits []entity.MemoryHit, searchOK bool) string {
	if !searchOK || len(hits) == 0 {
		return "No previous activity found - this is a new user."
	}

	lines := make([]string, 0, len(hits))
	for _, hit := range hits {
		memory := hit.Memory.Memory
		if memory == "" {
			continue
		}
		if strings.Contains(memory, "linkedin_post_generated") || strings.Contains(strings.ToLower(memory), "post") {
			created := time.Unix(hit.Memory.CreatedAt, 0).UTC().Format("2006-01-02")
			lines = append(lines, fmt.Sprintf("- %s (Created: %s)", memory, created))
		}
	}
	if len(lines) == 0 {
		return "No previous post activity found."
	}
	if len(lines) > maxActivityLines {
		lines = lines[:maxActivityLines]
	}
	return strings.Join(lines, "\n")
}

// BuildUserContext 拼装进入系统提示词的用户上下文块。
func BuildUserContext(preferences, activity, inputContext string) string {
	return fmt.Sprintf(`
**USER PREFERENCES:**
%s

**PREVIOUS ACTIVITY PATTERNS:**
%s

**CURRENT POST CONTEXT:**
%s
`, preferences, activity, inputContext)
}
