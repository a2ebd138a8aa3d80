package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIName is the provider identifier for OpenAI-compatible endpoints.
const OpenAIName = "openai"

// OpenAIClient implements ChatStreamer using the official OpenAI SDK.
// It works against any OpenAI-compatible endpoint via BaseURL.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint.
func NewOpenAIClient(cfg ClientConfig) *OpenAIClient {
	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{client: openai.NewClient(opts...)}
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string { return OpenAIName }

// Chat sends a non-streamed chat completion request.
func (c *OpenAIClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	params, err := buildParams(req, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in response")
	}

	result := &ChatResult{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
		Provider:         OpenAIName,
		ModelUsed:        resp.Model,
		RequestID:        requestID,
	}

	for _, tc := range resp.Choices[0].Message.ToolCalls {
		fn := tc.AsFunction()
		call := ToolCall{ID: fn.ID, Type: "function"}
		call.Function.Name = fn.Function.Name
		call.Function.Arguments = fn.Function.Arguments
		result.ToolCalls = append(result.ToolCalls, call)
	}

	return result, nil
}

// StreamChat sends a streamed chat request and forwards deltas to h.
func (c *OpenAIClient) StreamChat(ctx context.Context, req *ChatRequest, tools []Tool, h StreamHandler) error {
	params, err := buildParams(req, tools)
	if err != nil {
		return err
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta

		if delta.Content != "" && h.OnContent != nil {
			h.OnContent(delta.Content)
		}

		for _, tc := range delta.ToolCalls {
			if h.OnToolCallDelta == nil {
				continue
			}
			h.OnToolCallDelta(ToolCallDelta{
				Index:     int(tc.Index),
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("chat stream failed: %w", err)
	}
	return nil
}

// buildParams converts a ChatRequest plus tool definitions into SDK params.
func buildParams(req *ChatRequest, tools []Tool) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(req.Model),
	}

	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case "user":
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		case "assistant":
			asst := openai.ChatCompletionAssistantMessageParam{
				Content: openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(m.Content),
				},
			}
			for _, tc := range m.ToolCalls {
				asst.ToolCalls = append(asst.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Function.Name,
							Arguments: tc.Function.Arguments,
						},
					},
				})
			}
			params.Messages = append(params.Messages, openai.ChatCompletionMessageParamUnion{OfAssistant: &asst})
		case "tool":
			params.Messages = append(params.Messages, openai.ToolMessage(m.Content, m.ToolCallID))
		default:
			return params, fmt.Errorf("unsupported message role: %q", m.Role)
		}
	}

	if len(tools) > 0 {
		for _, t := range tools {
			var schema map[string]any
			if len(t.Function.Parameters) > 0 {
				if err := json.Unmarshal(t.Function.Parameters, &schema); err != nil {
					return params, fmt.Errorf("invalid parameter schema for tool %s: %w", t.Function.Name, err)
				}
			}
			params.Tools = append(params.Tools, openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
				Name:        t.Function.Name,
				Description: openai.String(t.Function.Description),
				Parameters:  shared.FunctionParameters(schema),
			}))
		}
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("auto"),
		}
	}

	return params, nil
}
