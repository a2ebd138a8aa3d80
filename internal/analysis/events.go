package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Event names emitted over the progress stream.
const (
	EventStart      = "start"
	EventIteration  = "iteration"
	EventChunk      = "chunk"
	EventToolCall   = "tool_call"
	EventToolResult = "tool_result"
	EventError      = "error"
	EventComplete   = "complete"
)

// FormatSSE renders an event in Server-Sent Events wire format with a
// compact JSON payload.
func FormatSSE(e Event) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e.Data); err != nil {
		// Payloads are maps of JSON-safe values; an encode failure here
		// means a programming error upstream.
		return fmt.Sprintf("event: %s\ndata: {\"error\":%q}\n\n", EventError, err.Error())
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")
	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Name, data)
}
