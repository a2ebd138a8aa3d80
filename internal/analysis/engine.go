package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lectern-ai/lectern/internal/providers"
)

// toolResultLimit caps tool results in progress events. The untruncated
// result still goes back to the model.
const toolResultLimit = 500

// RunOptions carries the per-run inputs for one document analysis.
type RunOptions struct {
	Text                 string
	Glossary             []GlossaryEntry
	Categories           []Category
	MaxKeywords          int
	Standalone           bool
	EnablePolishContent  bool
	EnableGlossaryLookup bool
}

// Engine drives the iterative analysis loop against a chat model, emitting
// progress events as the conversation unfolds.
type Engine struct {
	client        providers.ChatStreamer
	model         string
	maxIterations int
	logger        *slog.Logger
}

// NewEngine creates an engine bound to a chat client and model.
func NewEngine(client providers.ChatStreamer, model string, maxIterations int, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		client:        client,
		model:         model,
		maxIterations: maxIterations,
		logger:        logger,
	}
}

// Run performs a full analysis of the document, emitting start, per-iteration
// progress, and a final complete event. The returned result mirrors the
// complete event payload.
func (e *Engine) Run(ctx context.Context, opts RunOptions, emit EventSink) *Result {
	state := NewState(opts.Text, opts.Glossary, opts.Categories, opts.MaxKeywords)

	var (
		messages  []providers.Message
		tools     []providers.Tool
		numChunks int
	)

	if opts.Standalone {
		chunks := ChunkByWords(opts.Text, DefaultChunkWords)
		totalWords := CountWords(opts.Text)
		numChunks = len(chunks)

		emit(Event{Name: EventStart, Data: map[string]any{
			"message":          "Starting standalone document analysis",
			"mode":             "standalone",
			"total_chunks":     numChunks,
			"total_words":      totalWords,
			"total_lines":      state.TotalLines(),
			"total_characters": state.TotalCharacters(),
			"model":            e.model,
			"max_iterations":   e.maxIterations,
		}})

		messages = append(messages, providers.Message{
			Role:    "system",
			Content: BuildStandaloneSystemPrompt(numChunks, totalWords, opts.Categories, state.MaxKeywords(), opts.EnablePolishContent),
		})
		for _, formatted := range FormatChunks(chunks) {
			messages = append(messages, providers.Message{Role: "user", Content: formatted})
		}
		messages = append(messages, providers.Message{Role: "user", Content: BuildStandaloneFinalMessage()})
		tools = StandaloneTools(opts.EnablePolishContent)
	} else {
		emit(Event{Name: EventStart, Data: map[string]any{
			"message":          "Starting document analysis",
			"total_lines":      state.TotalLines(),
			"total_characters": state.TotalCharacters(),
			"model":            e.model,
			"max_iterations":   e.maxIterations,
		}})

		messages = append(messages,
			providers.Message{
				Role: "system",
				Content: BuildSystemPrompt(
					state.TotalLines(), state.TotalCharacters(), state.HasGlossary(),
					opts.Categories, state.MaxKeywords(),
					opts.EnablePolishContent, opts.EnableGlossaryLookup,
				),
			},
			providers.Message{Role: "user", Content: BuildInitialUserMessage()},
		)
		tools = AgenticTools(state.HasGlossary(), opts.EnablePolishContent, opts.EnableGlossaryLookup)
	}

	iteration := 0
	for !state.IsFinished() && iteration < e.maxIterations {
		iteration++

		iterData := map[string]any{
			"iteration":      iteration,
			"max_iterations": e.maxIterations,
		}
		if opts.Standalone {
			iterData["mode"] = "standalone"
		}
		emit(Event{Name: EventIteration, Data: iterData})

		var (
			assistantContent string
			acc              toolCallAccumulator
		)

		err := e.client.StreamChat(ctx, &providers.ChatRequest{
			Messages: messages,
			Model:    e.model,
		}, tools, providers.StreamHandler{
			OnContent: func(delta string) {
				assistantContent += delta
				emit(Event{Name: EventChunk, Data: map[string]any{"content": delta}})
			},
			OnToolCallDelta: func(d providers.ToolCallDelta) {
				acc.add(d)
			},
		})
		if err != nil {
			e.logger.Error("model stream failed", "error", err, "iteration", iteration)
			emit(Event{Name: EventError, Data: map[string]any{
				"message":    "LLM error: " + err.Error(),
				"diagnostic": fmt.Sprintf("%+v", err),
			}})
			break
		}

		toolCalls := acc.calls()
		if len(toolCalls) == 0 {
			if assistantContent != "" {
				messages = append(messages, providers.Message{Role: "assistant", Content: assistantContent})
			}
			continue
		}

		messages = append(messages, providers.Message{
			Role:      "assistant",
			Content:   assistantContent,
			ToolCalls: toolCalls,
		})

		for _, tc := range toolCalls {
			args := map[string]any{}
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				args = map[string]any{}
			}

			emit(Event{Name: EventToolCall, Data: map[string]any{
				"name":      tc.Function.Name,
				"id":        tc.ID,
				"arguments": args,
			}})

			result := e.executeTool(state, tc.Function.Name, args)

			emit(Event{Name: EventToolResult, Data: map[string]any{
				"name":   tc.Function.Name,
				"id":     tc.ID,
				"result": truncate(result, toolResultLimit),
			}})

			messages = append(messages, providers.Message{
				Role:       "tool",
				ToolCallID: tc.ID,
				Content:    result,
			})
		}
	}

	res := state.Result(iteration)
	if opts.Standalone {
		res.Mode = "standalone"
		res.ChunksProcessed = numChunks
	}
	if !state.IsFinished() {
		res.Warning = fmt.Sprintf("Analysis incomplete after %d iterations", iteration)
	}
	emit(Event{Name: EventComplete, Data: res})
	return res
}

// executeTool validates and dispatches a single tool call. Failures come back
// as advisory text so the model can adjust course instead of the run dying.
func (e *Engine) executeTool(state *State, name string, args map[string]any) string {
	if err := ValidateToolArgs(name, args); err != nil {
		return BuildToolErrorMessage(name, err.Error())
	}
	result, err := state.Dispatch(name, args)
	if err != nil {
		return BuildToolErrorMessage(name, err.Error())
	}
	return result
}

// toolCallAccumulator assembles complete tool calls from streamed fragments.
// Fragments for one call share an index; the ID and name arrive once while
// argument text accumulates across fragments.
type toolCallAccumulator struct {
	byIndex map[int]*providers.ToolCall
	order   []int
}

func (a *toolCallAccumulator) add(d providers.ToolCallDelta) {
	if a.byIndex == nil {
		a.byIndex = make(map[int]*providers.ToolCall)
	}
	tc, ok := a.byIndex[d.Index]
	if !ok {
		tc = &providers.ToolCall{Type: "function"}
		a.byIndex[d.Index] = tc
		a.order = append(a.order, d.Index)
	}
	if d.ID != "" {
		tc.ID = d.ID
	}
	if d.Name != "" {
		tc.Function.Name = d.Name
	}
	tc.Function.Arguments += d.Arguments
}

func (a *toolCallAccumulator) calls() []providers.ToolCall {
	out := make([]providers.ToolCall, 0, len(a.order))
	for _, idx := range a.order {
		out = append(out, *a.byIndex[idx])
	}
	return out
}
