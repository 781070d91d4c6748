package chain

import (
	"context"
	"fmt"
	"strconv"
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

// CommentChain 负责评论生成的编排，一次产出 3 条评论变体。
type CommentChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.CommentGenerateInput, *schema.Message]
	chainErr  error
}

func NewCommentChain(factory workflowport.ChatModelFactory) *CommentChain {
	return &CommentChain{factory: factory}
}

func (c *CommentChain) Invoke(ctx context.Context, in *wfmodel.CommentGenerateInput) (*schema.Message, error) {
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

type commentChainState struct {
	In       *wfmodel.CommentGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *CommentChain) getChain() (compose.Runnable[*wfmodel.CommentGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *CommentChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.CommentGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.CommentGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.CommentGenerateInput) (*commentChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &commentChainState{In: in}, nil
		}),
		compose.WithNodeName("comment.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *commentChainState) (*commentChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs, err := formatCommentMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("comment.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *commentChainState) (*commentChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			ctx = llmctx.WithWorkflowProvider(ctx, "comment_generate", strings.TrimSpace(st.In.Provider))
			chatModel, err := c.factory.Get(ctx, strings.TrimSpace(st.In.Provider))
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildCommentModelOptions(st.In, true)...)
			if err != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
					"provider", strings.TrimSpace(st.In.Provider),
					"model", strings.TrimSpace(st.In.Model),
					"error", err.Error(),
				)
				outMsg, err = chatModel.Generate(ctx, st.Messages, buildCommentModelOptions(st.In, false)...)
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
		compose.WithNodeName("comment.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *commentChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("comment.finalize"),
	)

	return chain.Compile(ctx)
}

func formatCommentMessages(ctx context.Context, in *wfmodel.CommentGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptCommentGenV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"post_text":       strings.TrimSpace(in.PostText),
		"comment_style":   strings.TrimSpace(in.CommentStyle),
		"comment_type":    strings.TrimSpace(in.CommentType),
		"character_limit": strconv.Itoa(in.CharacterLimit),
	}
	return tpl.Format(ctx, vars)
}

func buildCommentModelOptions(in *wfmodel.CommentGenerateInput, enableSchema bool) []model.Option {
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
					"name":   "linkedin_comment_data",
					"strict": false,
					"schema": commentJSONSchema(),
				},
			},
		}))
	}

	return opts
}

func commentJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"linkedin_comment"},
		"properties": map[string]any{
			"linkedin_comment": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []any{"linkedin_comment1", "linkedin_comment2", "linkedin_comment3"},
				"properties": map[string]any{
					"linkedin_comment1": map[string]any{"type": "string"},
					"linkedin_comment2": map[string]any{"type": "string"},
					"linkedin_comment3": map[string]any{"type": "string"},
				},
			},
		},
	}
}
