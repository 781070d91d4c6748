package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	llmctx "linkedin-content-api/internal/domain/service"
	wfmodel "linkedin-content-api/internal/workflow/model"
	wfnode "linkedin-content-api/internal/workflow/node"
	workflowport "linkedin-content-api/internal/workflow/port"
	workflowprompt "linkedin-content-api/internal/workflow/prompt"
	"linkedin-content-api/pkg/logger"
)

// PostChain 负责 LinkedIn 帖子生成的编排：
// 拼装提示词 -> 调用 ChatModel（json_schema 优先，不支持则降级）-> 返回原始消息。
type PostChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.PostGenerateInput, *schema.Message]
	chainErr  error
}

func NewPostChain(factory workflowport.ChatModelFactory) *PostChain {
	return &PostChain{factory: factory}
}

func (c *PostChain) Invoke(ctx context.Context, in *wfmodel.PostGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type postChainState struct {
	In       *wfmodel.PostGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *PostChain) getChain() (compose.Runnable[*wfmodel.PostGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *PostChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.PostGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.PostGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.PostGenerateInput) (*postChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &postChainState{In: in}, nil
		}),
		compose.WithNodeName("post.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *postChainState) (*postChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs, err := formatPostMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("post.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *postChainState) (*postChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			ctx = llmctx.WithWorkflowProvider(ctx, "post_generate", strings.TrimSpace(st.In.Provider))
			chatModel, err := c.factory.Get(ctx, strings.TrimSpace(st.In.Provider))
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildPostModelOptions(st.In, true)...)
			if err != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
					"provider", strings.TrimSpace(st.In.Provider),
					"model", strings.TrimSpace(st.In.Model),
					"error", err.Error(),
				)
				outMsg, err = chatModel.Generate(ctx, st.Messages, buildPostModelOptions(st.In, false)...)
			}
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("post.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *postChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("post.finalize"),
	)

	return chain.Compile(ctx)
}

var defaultPromptRegistry = workflowprompt.NewRegistry()

func formatPostMessages(ctx context.Context, in *wfmodel.PostGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptPostGenV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"user_context":  in.UserContext,
		"input_context": strings.TrimSpace(in.InputContext),
	}
	return tpl.Format(ctx, vars)
}

func buildPostModelOptions(in *wfmodel.PostGenerateInput, enableSchema bool) []model.Option {
	opts := make([]model.Option, 0, 4)
	if in == nil {
		return opts
	}

	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if strings.TrimSpace(in.Model) != "" {
		opts = append(opts, model.WithModel(strings.TrimSpace(in.Model)))
	}

	if enableSchema {
		opts = append(opts, openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   "linkedin_post_data",
					"strict": false,
					"schema": postJSONSchema(),
				},
			},
		}))
	}

	return opts
}

func postJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"linkedin_post"},
		"properties": map[string]any{
			"linkedin_post": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"linkedin_post"},
				"properties": map[string]any{
					"linkedin_post": map[string]any{"type": "string"},
				},
			},
		},
	}
}
