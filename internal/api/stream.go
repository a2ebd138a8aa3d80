package api

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// StreamEvent is one parsed Server-Sent Event.
type StreamEvent struct {
	Event string
	Data  string
}

// ReadStream parses a Server-Sent Events stream and invokes fn for each
// complete event. Events are buffered until their terminating blank line;
// partial events are never dispatched. A non-nil error from fn stops the
// read and is returned.
func ReadStream(r io.Reader, fn func(StreamEvent) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var ev StreamEvent
	var hasData bool

	flush := func() error {
		if ev.Event == "" && !hasData {
			return nil
		}
		err := fn(ev)
		ev = StreamEvent{}
		hasData = false
		return err
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "event:"):
			ev.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			chunk := strings.TrimPrefix(line, "data:")
			chunk = strings.TrimPrefix(chunk, " ")
			if hasData {
				ev.Data += "\n" + chunk
			} else {
				ev.Data = chunk
				hasData = true
			}
		case strings.HasPrefix(line, ":"):
			// comment line, ignore
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream read failed: %w", err)
	}

	// Stream ended without a trailing blank line; deliver what we have.
	return flush()
}
