package providers

import (
	"context"
	"errors"
	"sync"
)

const MockClientName = "mock"

// MockTurn scripts one streamed response: content fragments and tool-call
// deltas are replayed in the order given, then Err (if any) ends the stream.
type MockTurn struct {
	Content    []string
	ToolDeltas []ToolCallDelta
	Err        error
}

// MockClient is a scripted ChatStreamer for testing. Each StreamChat call
// consumes the next MockTurn; each Chat call consumes the next ChatResult.
type MockClient struct {
	mu sync.Mutex

	Turns       []MockTurn
	ChatResults []*ChatResult
	ChatErr     error

	// Recorded requests, in call order.
	StreamRequests []*ChatRequest
	StreamTools    [][]Tool
	ChatRequests   []*ChatRequest
}

// Name returns the client identifier.
func (c *MockClient) Name() string { return MockClientName }

// Chat returns the next scripted result, or ChatErr if set.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ChatRequests = append(c.ChatRequests, req)
	if c.ChatErr != nil {
		return nil, c.ChatErr
	}
	if len(c.ChatResults) == 0 {
		return nil, errors.New("mock: no scripted chat results remain")
	}
	result := c.ChatResults[0]
	c.ChatResults = c.ChatResults[1:]
	if result.ModelUsed == "" {
		result.ModelUsed = req.Model
	}
	return result, nil
}

// StreamChat replays the next scripted turn through the handler.
func (c *MockClient) StreamChat(ctx context.Context, req *ChatRequest, tools []Tool, h StreamHandler) error {
	c.mu.Lock()
	if len(c.Turns) == 0 {
		c.mu.Unlock()
		return errors.New("mock: no scripted turns remain")
	}
	turn := c.Turns[0]
	c.Turns = c.Turns[1:]

	// Record a snapshot of the message list; the engine reuses its slice.
	snapshot := *req
	snapshot.Messages = append([]Message(nil), req.Messages...)
	c.StreamRequests = append(c.StreamRequests, &snapshot)
	c.StreamTools = append(c.StreamTools, tools)
	c.mu.Unlock()

	for _, content := range turn.Content {
		if h.OnContent != nil {
			h.OnContent(content)
		}
	}
	for _, delta := range turn.ToolDeltas {
		if h.OnToolCallDelta != nil {
			h.OnToolCallDelta(delta)
		}
	}
	return turn.Err
}
