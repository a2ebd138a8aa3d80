package analysis

import (
	"fmt"
	"strings"
)

// ChunkSeparator marks a continuation between formatted chunks.
const ChunkSeparator = "\n\n...\n\n"

// DefaultChunkWords is the word budget per chunk for standalone delivery
// and the single-turn analyzers.
const DefaultChunkWords = 1024

// CountWords counts whitespace-delimited words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ChunkByWords splits text into chunks of at most maxWords words each.
// A text that fits in one chunk is returned verbatim; otherwise words are
// grouped into fixed-size buckets (the final bucket may be smaller) and
// each bucket is re-joined with single spaces.
func ChunkByWords(text string, maxWords int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	words := strings.Fields(text)
	if len(words) <= maxWords {
		return []string{text}
	}

	chunks := make([]string, 0, (len(words)+maxWords-1)/maxWords)
	for start := 0; start < len(words); start += maxWords {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// FormatChunks prepares chunks for delivery as user messages: each gets a
// 1-indexed header, and every non-final chunk a trailing continuation
// separator. A single chunk gets the distinct "1/1" header and no separator.
func FormatChunks(chunks []string) []string {
	if len(chunks) == 0 {
		return nil
	}
	if len(chunks) == 1 {
		return []string{fmt.Sprintf("[Document - 1/1]\n\n%s", chunks[0])}
	}

	formatted := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		header := fmt.Sprintf("[Document Chunk %d/%d]", i+1, len(chunks))
		content := header + "\n\n" + chunk
		if i < len(chunks)-1 {
			content += ChunkSeparator
		}
		formatted = append(formatted, content)
	}
	return formatted
}
