package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lectern-ai/lectern/internal/providers"
)

// Tool names the model can call during a run.
const (
	ToolReadText            = "read_text"
	ToolPolishAndAddContent = "polish_and_add_content"
	ToolLookupGlossary      = "lookup_glossary"
	ToolFinishAnalysis      = "finish_analysis"
)

var readTextTool = providers.Tool{
	Type: "function",
	Function: providers.ToolFunction{
		Name: ToolReadText,
		Description: "Read specific lines from the text. Returns line-numbered text " +
			"for the requested range plus a few lines of context before and after. " +
			"Suggested line window size should not be smaller than 50 lines.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"start_line": {"type": "integer", "description": "Starting line number (1-indexed)"},
				"end_line": {"type": "integer", "description": "Ending line number (1-indexed, inclusive)"},
				"context": {"type": "integer", "description": "Extra context lines before and after the range"}
			},
			"required": ["start_line", "end_line"]
		}`),
	},
}

var polishAndAddContentTool = providers.Tool{
	Type: "function",
	Function: providers.ToolFunction{
		Name: ToolPolishAndAddContent,
		Description: "Add a polished version of a section of the document to the final output. " +
			"Only content added with this tool will appear in the final cleaned content. " +
			"Provide the cleaned and polished text along with the original line range it covers. " +
			"Skip boilerplate, navigation, advertisements and other irrelevant text. " +
			"You may call this tool multiple times for different sections.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"polished_text": {"type": "string", "description": "The cleaned and polished version of the section"},
				"start_line": {"type": "integer", "description": "Starting line number of the original content (1-indexed)"},
				"end_line": {"type": "integer", "description": "Ending line number of the original content (1-indexed, inclusive)"},
				"section_label": {"type": "string", "description": "Optional label for this section (e.g., 'Introduction')"}
			},
			"required": ["polished_text", "start_line", "end_line"]
		}`),
	},
}

var lookupGlossaryTool = providers.Tool{
	Type: "function",
	Function: providers.ToolFunction{
		Name: ToolLookupGlossary,
		Description: "Look up terms in the provided glossary. " +
			"Returns definitions for matching terms.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"terms": {"type": "array", "items": {"type": "string"}, "description": "List of terms to look up"}
			},
			"required": ["terms"]
		}`),
	},
}

var finishAnalysisTool = providers.Tool{
	Type: "function",
	Function: providers.ToolFunction{
		Name: ToolFinishAnalysis,
		Description: "Complete the analysis and provide final results. " +
			"Call this when you have finished analyzing the text.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"language": {"type": "string", "description": "Detected language/locale (e.g., 'en-US', 'zh-CN', 'ja-JP')"},
				"title": {"type": "string", "description": "Inferred or extracted title of the document"},
				"summary": {"type": "string", "description": "Brief 1-2 sentence summary of the content"},
				"keywords": {"type": "array", "items": {"type": "string"}, "description": "Generated keywords that capture the main topics"},
				"category": {"type": "array", "items": {"type": "string"}, "description": "Hierarchical category path, e.g., ['Technology', 'AI', 'NLP']"},
				"author": {"type": "string", "description": "Author name if identified"},
				"published_by": {"type": "string", "description": "Publisher or organization"},
				"published_at": {"type": "string", "description": "Publication date"},
				"date_start": {"type": "string", "description": "Event start date"},
				"date_end": {"type": "string", "description": "Event end date"},
				"date_duration": {"type": "string", "description": "Event duration description"},
				"location": {"type": "string", "description": "Geographic location"},
				"venue": {"type": "string", "description": "Specific venue name"},
				"related_people": {"type": "array", "items": {"type": "string"}, "description": "People mentioned in the document"},
				"related_organizations": {"type": "array", "items": {"type": "string"}, "description": "Organizations mentioned in the document"},
				"related_links": {"type": "array", "items": {"type": "string"}, "description": "Relevant URLs found in the document"}
			},
			"required": ["language", "title", "keywords", "category"]
		}`),
	},
}

// AgenticTools returns the tool set for agentic mode, where the model
// navigates the document via read_text. The polish and glossary tools are
// conditional; finish_analysis is always offered.
func AgenticTools(hasGlossary, enablePolish, enableGlossaryLookup bool) []providers.Tool {
	tools := []providers.Tool{readTextTool}
	if enablePolish {
		tools = append(tools, polishAndAddContentTool)
	}
	if hasGlossary && enableGlossaryLookup {
		tools = append(tools, lookupGlossaryTool)
	}
	return append(tools, finishAnalysisTool)
}

// StandaloneTools returns the tool set for standalone mode. The document is
// pre-delivered in full, so read_text is not offered.
func StandaloneTools(enablePolish bool) []providers.Tool {
	var tools []providers.Tool
	if enablePolish {
		tools = append(tools, polishAndAddContentTool)
	}
	return append(tools, finishAnalysisTool)
}

// validators holds a compiled schema per tool name for argument validation
// before dispatch.
var validators = compileValidators(
	readTextTool, polishAndAddContentTool, lookupGlossaryTool, finishAnalysisTool,
)

func compileValidators(tools ...providers.Tool) map[string]*jsonschema.Schema {
	out := make(map[string]*jsonschema.Schema, len(tools))
	for _, t := range tools {
		c := jsonschema.NewCompiler()
		url := fmt.Sprintf("mem://tools/%s.json", t.Function.Name)
		if err := c.AddResource(url, strings.NewReader(string(t.Function.Parameters))); err != nil {
			panic(fmt.Sprintf("tool schema %s: %v", t.Function.Name, err))
		}
		s, err := c.Compile(url)
		if err != nil {
			panic(fmt.Sprintf("tool schema %s: %v", t.Function.Name, err))
		}
		out[t.Function.Name] = s
	}
	return out
}

// ValidateToolArgs checks parsed tool arguments against the tool's parameter
// schema. Unknown tool names pass through; Dispatch reports those.
func ValidateToolArgs(name string, args map[string]any) error {
	s, ok := validators[name]
	if !ok {
		return nil
	}
	// Arguments were decoded with encoding/json, so they are already in the
	// plain interface shape the validator expects.
	if err := s.Validate(args); err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	return nil
}
