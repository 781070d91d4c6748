package generation

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tkmOnce sync.Once
	tkm     *tiktoken.Tiktoken
)

// EstimateTokens 在模型未返回用量信息时用 tiktoken 做近似估算。
// 编码器加载失败时退化为每 4 字符 1 token 的粗略估算。
func EstimateTokens(text string) int {
	tkmOnce.Do(func() {
		tkm, _ = tiktoken.EncodingForModel("gpt-4")
	})
	if tkm == nil {
		return len(text) / 4
	}
	return len(tkm.Encode(text, nil, nil))
}
