package model

// PostGenerateInput 帖子生成链的输入。
// UserContext 是已经拼装好的用户偏好/历史活动/当前主题上下文块。
type PostGenerateInput struct {
	UserID       string
	InputContext string
	UserContext  string

	Provider    string
	Model       string
	Temperature *float32
	MaxTokens   *int
}

// CommentGenerateInput 评论生成链的输入。
type CommentGenerateInput struct {
	PostText       string
	CommentStyle   string
	CommentType    string
	CharacterLimit int

	Provider    string
	Model       string
	Temperature *float32
	MaxTokens   *int
}

// ToneGenerateInput 专业语气改写链的输入。
type ToneGenerateInput struct {
	Text string

	Provider    string
	Model       string
	Temperature *float32
	MaxTokens   *int
}

// PostPayload 与模型结构化输出对应：{"linkedin_post":{"linkedin_post":"..."}}
type PostPayload struct {
	LinkedInPost struct {
		LinkedInPost string `json:"linkedin_post"`
	} `json:"linkedin_post"`
}

// CommentPayload 与模型结构化输出对应：
// {"linkedin_comment":{"linkedin_comment1":"...","linkedin_comment2":"...","linkedin_comment3":"..."}}
type CommentPayload struct {
	LinkedInComment struct {
		LinkedInComment1 string `json:"linkedin_comment1"`
		LinkedInComment2 string `json:"linkedin_comment2"`
		LinkedInComment3 string `json:"linkedin_comment3"`
	} `json:"linkedin_comment"`
}

// TonePayload 与模型结构化输出对应：三个专业语气版本。
type TonePayload struct {
	ToneOne   string `json:"tone_one"`
	ToneTwo   string `json:"tone_two"`
	ToneThree string `json:"tone_three"`
}
