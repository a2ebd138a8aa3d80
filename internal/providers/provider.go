package providers

import (
	"context"
	"encoding/json"
)

// ChatStreamer is the primary interface for chat-completion requests.
// The analysis engine uses StreamChat for the agentic loop and Chat for
// the single-turn analyzers.
type ChatStreamer interface {
	// Chat sends a non-streamed chat completion request.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// StreamChat sends a streamed chat request with tool definitions and
	// tool_choice=auto. Content and tool-call fragments are delivered to
	// the handler in arrival order. Returns the transport/protocol error
	// that ended the stream, or nil on clean completion.
	StreamChat(ctx context.Context, req *ChatRequest, tools []Tool, h StreamHandler) error

	// Name returns the client identifier (e.g., "openai").
	Name() string
}

// Message represents a chat message.
type Message struct {
	Role       string     `json:"role"` // "system", "user", "assistant", "tool"
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant messages
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool messages
}

// ChatRequest is a request to an LLM.
type ChatRequest struct {
	// Required
	Messages []Message `json:"messages"`

	// Model selection (uses client default if empty)
	Model string `json:"model,omitempty"`

	// Request tracking
	RequestID string `json:"-"`
}

// ChatResult is the complete response from a non-streamed call.
type ChatResult struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// Token counts
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID string `json:"request_id"`
}

// Tool defines a function/tool that the LLM can call.
type Tool struct {
	Type     string       `json:"type"` // "function"
	Function ToolFunction `json:"function"`
}

// ToolFunction describes a callable function.
type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"` // JSON Schema
}

// ToolCall represents a fully assembled tool invocation from the LLM.
type ToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // "function"
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"` // JSON string
	} `json:"function"`
}

// ToolCallDelta is one incremental tool-call fragment from a streamed
// response. Fragments for the same Index belong to the same call: ID and
// Name replace earlier values when non-empty, Arguments slices are
// concatenated in arrival order.
type ToolCallDelta struct {
	Index     int
	ID        string
	Name      string
	Arguments string
}

// StreamHandler receives incremental deltas from a streamed chat call.
// Either callback may be nil.
type StreamHandler struct {
	OnContent       func(content string)
	OnToolCallDelta func(delta ToolCallDelta)
}

// ClientConfig holds per-client connection settings. Request overrides are
// resolved by the caller before construction; the client itself has no
// fallback chain.
type ClientConfig struct {
	APIKey  string
	BaseURL string
}
