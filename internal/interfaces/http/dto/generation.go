package dto

import "strings"

// PostGenerationRequest 帖子生成请求体
type PostGenerationRequest struct {
	UserID        string `json:"user_id" binding:"required,min=1,max=100"`
	InputContext  string `json:"input_context" binding:"required,min=10,max=2000"`
	GenerateImage bool   `json:"generate_image"`
}

// CommentGenerationRequest 评论生成请求体
type CommentGenerationRequest struct {
	UserID       string `json:"user_id" binding:"required,min=1,max=100"`
	CommentStyle string `json:"comment_style" binding:"required,oneof=Professional Friendly Long Short"`
	CommentType  string `json:"comment_type" binding:"required"`
	PostText     string `json:"post_text" binding:"required,min=3,max=5000"`
}

// NormalizeCommentType 把 comment_type 归一化为小写枚举值。
func (r *CommentGenerationRequest) NormalizeCommentType() (string, bool) {
	t := strings.ToLower(strings.TrimSpace(r.CommentType))
	switch t {
	case "positive", "negative":
		return t, true
	default:
		return "", false
	}
}

// ToneGenerationRequest 专业语气改写请求体
type ToneGenerationRequest struct {
	UserID string `json:"user_id" binding:"required,min=1,max=100"`
	Text   string `json:"text" binding:"required,min=3,max=5000"`
}

// PostMetadata 帖子生成响应的元数据
type PostMetadata struct {
	CharacterCount      int      `json:"character_count"`
	WordCount           int      `json:"word_count"`
	WithinLimits        bool     `json:"within_limits"`
	Hashtags            []string `json:"hashtags"`
	TokensUsed          int      `json:"tokens_used"`
	UserPreferencesUsed bool     `json:"user_preferences_used"`
	ActivityStored      bool     `json:"activity_stored"`
	ImageURL            string   `json:"image_url,omitempty"`
}

// PostGenerationResponse 帖子生成响应体
type PostGenerationResponse struct {
	Success   bool          `json:"success"`
	Post      string        `json:"post,omitempty"`
	Metadata  *PostMetadata `json:"metadata,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp string        `json:"timestamp"`
}

// CommentMetadata 评论生成响应的元数据
type CommentMetadata struct {
	TokensUsed     int            `json:"tokens_used"`
	CommentStyle   string         `json:"comment_style"`
	CommentType    string         `json:"comment_type"`
	ActivityStored bool           `json:"activity_stored"`
	CommentLengths map[string]int `json:"comment_lengths"`
}

// CommentGenerationResponse 评论生成响应体
type CommentGenerationResponse struct {
	Success   bool              `json:"success"`
	Comments  map[string]string `json:"comments,omitempty"`
	Metadata  *CommentMetadata  `json:"metadata,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// ToneVariations 三个专业语气版本
type ToneVariations struct {
	ToneOne   string `json:"tone_one"`
	ToneTwo   string `json:"tone_two"`
	ToneThree string `json:"tone_three"`
}

// ToneMetadata 专业语气改写响应的元数据
type ToneMetadata struct {
	TokensUsed int `json:"tokens_used"`
}

// ToneGenerationResponse 专业语气改写响应体
type ToneGenerationResponse struct {
	Success   bool            `json:"success"`
	Tones     *ToneVariations `json:"tones,omitempty"`
	Metadata  *ToneMetadata   `json:"metadata,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// MemoryResetResponse 用户记忆清除响应体
type MemoryResetResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}
