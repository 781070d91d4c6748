// Package generation 实现内容生成的应用层编排
package generation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// LinkedIn 帖子硬性限制：3000 字符、600 词。
const (
	maxPostCharacters = 3000
	maxPostWords      = 600

	truncateAt = 2950
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ExtractHashtags 提取文本中的所有话题标签。
func ExtractHashtags(text string) []string {
	tags := hashtagPattern.FindAllString(text, -1)
	if tags == nil {
		return []string{}
	}
	return tags
}

// TruncatePost 超出 3000 字符的帖子截断到 2950 并追加省略号。
func TruncatePost(post string) string {
	runes := []rune(post)
	if len(runes) <= maxPostCharacters {
		return post
	}
	return string(runes[:truncateAt]) + "..."
}

// CountWords 按空白切分统计词数。
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountCharacters 统计字符数（按 rune 计）。
func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// WithinLimits 判断帖子是否同时满足字符与词数上限。
func WithinLimits(charCount, wordCount int) bool {
	return charCount <= maxPostCharacters && wordCount <= maxPostWords
}

// EngagementElements 帖子互动要素分析结果。
type EngagementElements struct {
	HasQuestion          bool `json:"has_question"`
	HasCallToAction      bool `json:"has_call_to_action"`
	HasPersonalStory     bool `json:"has_personal_story"`
	HasLineBreaks        bool `json:"has_line_breaks"`
	WordCount            int  `json:"word_count"`
	CharacterCount       int  `json:"character_count"`
	WithinLinkedInLimits bool `json:"within_linkedin_limits"`
	OptimalLength        bool `json:"optimal_length"`
}

var (
	callToActionMarkers  = []string{"share", "comment", "thoughts", "agree", "disagree", "experience"}
	personalStoryMarkers = []string{"i", "my", "recently", "yesterday", "last week"}
)

// AnalyzeEngagementElements 分析帖子的互动要素。
// 200-500 词是互动表现最好的长度区间。
func AnalyzeEngagementElements(post string) EngagementElements {
	lowered := strings.ToLower(post)
	wordCount := CountWords(post)
	charCount := CountCharacters(post)

	return EngagementElements{
		HasQuestion:          strings.Contains(post, "?"),
		HasCallToAction:      containsAny(lowered, callToActionMarkers),
		HasPersonalStory:     containsAny(lowered, personalStoryMarkers),
		HasLineBreaks:        strings.Contains(post, "\n"),
		WordCount:            wordCount,
		CharacterCount:       charCount,
		WithinLinkedInLimits: WithinLimits(charCount, wordCount),
		OptimalLength:        wordCount >= 200 && wordCount <= 500,
	}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// 各评论风格的字符上限，未知风格回落到 1000。
var commentStyleLimits = map[string]int{
	"Professional": 1200,
	"Friendly":     800,
	"Long":         1250,
	"Short":        400,
}

// CommentStyleLimit 返回指定评论风格的字符上限。
func CommentStyleLimit(style string) int {
	if limit, ok := commentStyleLimits[style]; ok {
		return limit
	}
	return 1000
}

// PreviewText 取前 n 个字符作为预览，超长时追加省略号。
func PreviewText(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
