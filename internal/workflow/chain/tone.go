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

// ToneChain 负责专业语气改写的编排，一次产出三个语气版本。
type ToneChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.ToneGenerateInput, *schema.Message]
	chainErr  error
}

func NewToneChain(factory workflowport.ChatModelFactory) *ToneChain {
	return &ToneChain{factory: factory}
}

func (c *ToneChain) Invoke(ctx context.Context, in *wfmodel.ToneGenerateInput) (*schema.Message, error) {
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

type toneChainState struct {
	In       *wfmodel.ToneGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *ToneChain) getChain() (compose.Runnable[*wfmodel.ToneGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *ToneChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.ToneGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.ToneGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.ToneGenerateInput) (*toneChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &toneChainState{In: in}, nil
		}),
		compose.WithNodeName("tone.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *toneChainState) (*toneChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs, err := formatToneMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("tone.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *toneChainState) (*toneChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			ctx = llmctx.WithWorkflowProvider(ctx, "tone_generate", strings.TrimSpace(st.In.Provider))
			chatModel, err := c.factory.Get(ctx, strings.TrimSpace(st.In.Provider))
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildToneModelOptions(st.In, true)...)
			if err != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
					"provider", strings.TrimSpace(st.In.Provider),
					"model", strings.TrimSpace(st.In.Model),
					"error", err.Error(),
				)
				outMsg, err = chatModel.Generate(ctx, st.Messages, buildToneModelOptions(st.In, false)...)
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
		compose.WithNodeName("tone.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *toneChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("tone.finalize"),
	)

	return chain.Compile(ctx)
}

func formatToneMessages(ctx context.Context, in *wfmodel.ToneGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptProfessionalToneV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"text": strings.TrimSpace(in.Text),
	}
	return tpl.Format(ctx, vars)
}

func buildToneModelOptions(in *wfmodel.ToneGenerateInput, enableSchema bool) []model.Option {
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
					"name":   "professional_data",
					"strict": false,
					"schema": toneJSONSchema(),
				},
			},
		}))
	}

	return opts
}

func toneJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"tone_one", "tone_two", "tone_three"},
		"properties": map[string]any{
			"tone_one":   map[string]any{"type": "string"},
			"tone_two":   map[string]any{"type": "string"},
			"tone_three": map[string]any{"type": "string"},
		},
	}
}
