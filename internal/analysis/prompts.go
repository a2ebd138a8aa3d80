package analysis

import (
	"fmt"
	"strings"
)

// formatCategoryTree renders the category hierarchy as an indented bullet
// list for inclusion in prompts.
func formatCategoryTree(categories []Category, indent int) string {
	var lines []string
	prefix := strings.Repeat("  ", indent)
	for _, c := range categories {
		lines = append(lines, prefix+"- "+c.Name)
		if len(c.Children) > 0 {
			lines = append(lines, formatCategoryTree(c.Children, indent+1))
		}
	}
	return strings.Join(lines, "\n")
}

// BuildSystemPrompt builds the system prompt for agentic analysis, where the
// model navigates the document itself via read_text. The task list and
// guidelines adjust to the enabled tool set.
func BuildSystemPrompt(totalLines, totalCharacters int, hasGlossary bool, categories []Category, maxKeywords int, enablePolish, enableGlossaryLookup bool) string {
	parts := []string{
		"You are a document analysis assistant. Analyze the provided text using the available tools.",
		"",
		fmt.Sprintf("The document has %d lines, %d characters.", totalLines, totalCharacters),
		"",
		"## Your Tasks",
		"",
		"1. **Read** the document section by section using `read_text` (30-100 lines at a time)",
	}

	nextStep := 2

	if enablePolish {
		parts = append(parts,
			fmt.Sprintf("%d. **Polish and add** meaningful content using `polish_and_add_content`", nextStep),
			"   - For each section of main article content you find, provide a cleaned version",
			"   - Skip boilerplate, navigation, ads, and irrelevant content",
			"   - Fix formatting issues, HTML artifacts, and messy text",
			"   - Do NOT add new information or significantly rewrite",
			"   - DO NOT use this tool UNTIL YOU HAVE READ THE WHOLE DOCUMENT.",
			"   - DO NOT make up non-existing information.",
		)
		nextStep++
	}

	if hasGlossary && enableGlossaryLookup {
		parts = append(parts, fmt.Sprintf("%d. **Look up** technical terms in the glossary using `lookup_glossary`", nextStep))
		nextStep++
	}

	parts = append(parts, fmt.Sprintf("%d. **Finish** with language, title, keywords, and category using `finish_analysis`", nextStep))

	parts = append(parts,
		"",
		"## Guidelines",
		"",
	)

	if enablePolish {
		parts = append(parts,
			"### Content to SKIP (do not include in polished output)",
			"- Navigation menus and sidebars",
			"- Advertisements and promotional content",
			"- Cookie notices and legal disclaimers",
			"- Social media buttons and share links",
			"- Unrelated links and footer navigation",
			"- Page numbers and headers/footers",
			"",
			"### Content to POLISH and ADD (if some not found, omit)",
			"- Main article text and paragraphs",
			"- Article title and subtitles",
			"- Author information and publication date",
			"- Key conclusions and findings",
			"- Important definitions and concepts",
			"",
			"### Polishing Guidelines",
			"When using `polish_and_add_content`:",
			"- Remove HTML artifacts (e.g., &nbsp;, broken tags)",
			"- Fix obvious typos and formatting issues",
			"- Combine fragmented sentences if needed",
			"- Preserve markdown formatting (headers, lists, emphasis)",
			"- Keep all important information from the original",
			"- Do NOT add new information or significantly rewrite",
			"- Do NOT use the tool to add repetitive information across sections",
			"- DO NOT make up non-existing information.",
			"",
		)
	}

	parts = append(parts,
		"### Keywords",
		fmt.Sprintf("- Generate up to %d meaningful keywords", maxKeywords),
		"- Focus on main topics, concepts, and themes",
		"- Use lowercase unless proper nouns",
		"",
	)

	if len(categories) > 0 {
		parts = append(parts,
			"### Category Classification",
			"Classify the document into this category hierarchy:",
			"```",
			formatCategoryTree(categories, 0),
			"```",
			"",
			"Return the category as a list from root to leaf, e.g., ['Technology', 'AI', 'Machine Learning']",
			"",
		)
	} else {
		parts = append(parts,
			"### Category Classification",
			"No category tree provided. Return an empty list for category.",
			"",
		)
	}

	parts = append(parts,
		"## Important",
		"",
		"- Work systematically through the document",
		"- You MUST call `finish_analysis` when done",
		"- Be thorough but efficient with tool calls",
		"- For `language`, use locale codes like 'en-US', 'zh-CN', 'ja-JP'",
	)

	return strings.Join(parts, "\n")
}

// BuildInitialUserMessage builds the user message that starts an agentic run.
func BuildInitialUserMessage() string {
	return "Please analyze this document. Start by reading the first section, " +
		"then systematically work through it to clean, extract, and classify. " +
		"Call finish_analysis when complete."
}

// BuildToolErrorMessage formats a failed tool call as an advisory message so
// the model can recover instead of the run aborting.
func BuildToolErrorMessage(toolName, errMsg string) string {
	return fmt.Sprintf("Error executing %s: %s. Please try a different approach.", toolName, errMsg)
}

// BuildStandaloneSystemPrompt builds the system prompt for standalone mode,
// where the full document arrives pre-chunked in user messages and read_text
// is not offered.
func BuildStandaloneSystemPrompt(totalChunks, totalWords int, categories []Category, maxKeywords int, enablePolish bool) string {
	parts := []string{
		"You are a document analysis assistant. The full document has been provided to you in chunks.",
		"",
		fmt.Sprintf("The document is split into %d chunk(s), approximately %d words total.", totalChunks, totalWords),
		"Chunks are separated by '...' to indicate the document continues.",
		"",
		"## Your Tasks",
		"",
	}

	nextStep := 1

	if enablePolish {
		parts = append(parts,
			fmt.Sprintf("%d. **Read through all chunks** to understand the full document", nextStep),
			fmt.Sprintf("%d. **Polish and add** meaningful content using `polish_and_add_content`", nextStep+1),
			"   - For each meaningful section, provide a cleaned and polished version",
			"   - Skip boilerplate, navigation, ads, and irrelevant content",
			"   - Fix formatting issues, HTML artifacts, and messy text",
			"   - You may call this tool multiple times for different sections",
		)
		nextStep += 2
	} else {
		parts = append(parts, fmt.Sprintf("%d. **Read through all chunks** to understand the full document", nextStep))
		nextStep++
	}

	parts = append(parts,
		fmt.Sprintf("%d. **Finish** with language, title, keywords, and category using `finish_analysis`", nextStep),
		"",
		"## Guidelines",
		"",
	)

	if enablePolish {
		parts = append(parts,
			"### Content to SKIP (do not include in polished output)",
			"- Navigation menus and sidebars",
			"- Advertisements and promotional content",
			"- Cookie notices and legal disclaimers",
			"- Social media buttons and share links",
			"- Unrelated links and footer navigation",
			"",
			"### Content to POLISH and ADD",
			"- Main article text and paragraphs",
			"- Article title and subtitles",
			"- Author information and publication date",
			"- Key conclusions and findings",
			"",
			"### Polishing Guidelines",
			"- Remove HTML artifacts (e.g., &nbsp;, broken tags)",
			"- Fix obvious typos and formatting issues",
			"- Preserve markdown formatting (headers, lists, emphasis)",
			"- Keep all important information from the original",
			"- Do NOT add new information or significantly rewrite",
			"",
		)
	}

	parts = append(parts,
		"### Keywords",
		fmt.Sprintf("- Generate up to %d meaningful keywords", maxKeywords),
		"- Focus on main topics, concepts, and themes",
		"- Use lowercase unless proper nouns",
		"",
	)

	if len(categories) > 0 {
		parts = append(parts,
			"### Category Classification",
			"Classify the document into this category hierarchy:",
			"```",
			formatCategoryTree(categories, 0),
			"```",
			"",
			"Return the category as a list from root to leaf.",
			"",
		)
	} else {
		parts = append(parts,
			"### Category Classification",
			"No category tree provided. Return an empty list for category.",
			"",
		)
	}

	parts = append(parts,
		"## Important",
		"",
		"- You MUST call `finish_analysis` when done",
		"- For `language`, use locale codes like 'en-US', 'zh-CN', 'ja-JP'",
	)

	return strings.Join(parts, "\n")
}

// BuildStandaloneFinalMessage builds the user message appended after the last
// chunk in standalone mode.
func BuildStandaloneFinalMessage() string {
	return "You have now seen the complete document. " +
		"Please analyze it, polish the content if needed, and call finish_analysis with your findings."
}

// BuildCleanlinessEvaluationPrompt builds the system prompt for the one-shot
// article cleanliness evaluation.
func BuildCleanlinessEvaluationPrompt(totalChunks, totalWords int) string {
	return fmt.Sprintf(`You are an article cleanliness evaluator. Your task is to determine whether a given text is "clean" (well-formatted, ready for consumption) or "messy" (contains artifacts, noise, or formatting issues that need cleaning).

The document is split into %d chunk(s), approximately %d words total.

## What makes an article MESSY:

1. **HTML/Web Artifacts**: Leftover HTML tags, &nbsp;, &amp;, broken tag fragments
2. **Navigation Noise**: Menu items, sidebar content, breadcrumbs mixed into main text
3. **Advertisement Remnants**: Ad text, promotional banners, "sponsored" content mixed in
4. **Formatting Issues**:
   - Broken sentences split across lines incorrectly
   - Missing spaces between words
   - Inconsistent or broken markdown formatting
   - Page numbers or headers/footers mixed into content
5. **Encoding Issues**: Garbled characters, mojibake, incorrect unicode
6. **Extraction Artifacts**:
   - Cookie notices, legal disclaimers interspersed with content
   - Social media share buttons text
   - "Read more" links scattered throughout
7. **OCR Artifacts**: If the text appears to be from OCR, look for typical OCR errors
8. **Duplicate Content**: Same paragraphs or sections repeated

## What makes an article CLEAN:

1. Well-structured paragraphs with proper spacing
2. Clear headings and sections (if applicable)
3. Consistent formatting throughout
4. No extraneous navigation or UI elements
5. Readable, flowing prose without artifacts
6. Proper markdown formatting (if markdown)

## Your Response:

Respond with a JSON object containing:

`+"```json"+`
{
    "is_messy": true/false,
    "cleanliness_score": 0-100,
    "reasoning": "Brief explanation of your assessment",
    "issues_found": ["list", "of", "specific", "issues"]
}
`+"```"+`

- `+"`is_messy`"+`: true if the article needs cleaning, false if it's ready for use
- `+"`cleanliness_score`"+`: 0 = extremely messy, 100 = perfectly clean. Score below 70 typically indicates messy.
- `+"`reasoning`"+`: 1-2 sentences explaining your decision
- `+"`issues_found`"+`: Array of specific issues found (empty array if clean)

Be strict but fair. Minor formatting inconsistencies don't make an article messy. Focus on issues that would significantly impact readability or require cleanup before the content can be used.`, totalChunks, totalWords)
}

// BuildPolishContentPrompt builds the system prompt for the one-shot content
// polishing operation.
func BuildPolishContentPrompt(totalChunks, totalWords int) string {
	return fmt.Sprintf(`You are a content polishing assistant. Your task is to clean and polish the given text while preserving its meaning and important information.

The document is split into %d chunk(s), approximately %d words total.

## Your Task:

Clean and polish the text by:

1. **Remove Web/HTML Artifacts**:
   - Remove leftover HTML tags, &nbsp;, &amp;, broken tag fragments
   - Remove navigation menus, sidebars, breadcrumbs
   - Remove advertisement text and promotional content
   - Remove cookie notices, legal disclaimers mixed into content
   - Remove social media buttons text, "Share on..." links
   - Remove page numbers, headers/footers

2. **Fix Formatting Issues**:
   - Fix broken sentences split incorrectly across lines
   - Add missing spaces between words
   - Fix inconsistent or broken markdown formatting
   - Combine fragmented paragraphs

3. **Preserve Important Content**:
   - Keep all main article text and paragraphs
   - Keep article title and subtitles
   - Keep author information and publication date
   - Keep key conclusions and findings
   - Preserve markdown formatting (headers, lists, emphasis)

## Important Guidelines:

- Do NOT add new information or significantly rewrite
- Do NOT summarize or shorten the content
- Do NOT make up information that isn't in the original
- Preserve the original structure and flow
- Keep all factual content intact

## Your Response:

Respond with a JSON object containing:

`+"```json"+`
{
    "polished_content": "The cleaned and polished text...",
    "changes_made": ["list", "of", "changes", "made"],
    "sections_removed": ["list", "of", "removed", "sections"]
}
`+"```"+`

- `+"`polished_content`"+`: The full polished text
- `+"`changes_made`"+`: Brief list of types of changes made
- `+"`sections_removed`"+`: Brief list of content types that were removed (e.g., "navigation menu", "cookie notice")`, totalChunks, totalWords)
}

// BuildFinalizeContentPrompt builds the system prompt for the one-shot
// metadata extraction and classification operation.
func BuildFinalizeContentPrompt(totalChunks, totalWords int, categories []Category, maxKeywords int) string {
	head := fmt.Sprintf(`You are a content analysis assistant. Your task is to extract metadata and classify the given text.

The document is split into %d chunk(s), approximately %d words total.

## Your Task:

Analyze the text and extract:

1. **Language**: Detect the primary language (use locale codes like 'en-US', 'zh-CN', 'ja-JP')

2. **Title**: Extract or infer the document title

3. **Summary**: Write a brief 1-2 sentence summary of the content

4. **Keywords**: Generate up to %d meaningful keywords
   - Focus on main topics, concepts, and themes
   - Use lowercase unless proper nouns

5. **Author Information** (if available):
   - author: The author's name
   - published_by: Publisher or organization
   - published_at: Publication date

6. **Event Information** (if applicable):
   - date_start: Event start date
   - date_end: Event end date
   - date_duration: Duration description
   - location: Geographic location
   - venue: Specific venue name

7. **Related Entities**:
   - related_people: List of people mentioned
   - related_organizations: List of organizations mentioned
   - related_links: List of relevant URLs found`, totalChunks, totalWords, maxKeywords)

	var categorySection string
	if len(categories) > 0 {
		categorySection = fmt.Sprintf(`

8. **Category Classification**:
   Classify the document into this category hierarchy:
   `+"```"+`
%s
   `+"```"+`
   Return the category as a list from root to leaf, e.g., ['Technology', 'AI', 'Machine Learning']`, formatCategoryTree(categories, 0))
	} else {
		categorySection = `

8. **Category Classification**:
   No category tree provided. Return an empty list for category.`
	}

	tail := `

## Your Response:

Respond with a JSON object containing:

` + "```json" + `
{
    "language": "en-US",
    "title": "Document Title",
    "summary": "Brief summary of the content",
    "keywords": ["keyword1", "keyword2"],
    "category": ["Category", "Subcategory"],
    "author": "Author Name or null",
    "published_by": "Publisher or null",
    "published_at": "Date or null",
    "date_start": "Start date or null",
    "date_end": "End date or null",
    "date_duration": "Duration or null",
    "location": "Location or null",
    "venue": "Venue or null",
    "related_people": ["Person 1", "Person 2"],
    "related_organizations": ["Org 1", "Org 2"],
    "related_links": ["https://..."]
}
` + "```" + `

Only include fields that have actual values. Use null for fields with no information.`

	return strings.Join([]string{head, categorySection, tail}, "\n")
}

// BuildGlossaryLookupPrompt builds the system prompt for the one-shot
// glossary term search.
func BuildGlossaryLookupPrompt(totalChunks, totalWords int, glossaryTerms []string) string {
	termLines := make([]string, len(glossaryTerms))
	for i, t := range glossaryTerms {
		termLines[i] = "- " + t
	}

	return fmt.Sprintf(`You are a glossary matching assistant. Your task is to find occurrences of specific terms in the given text.

The document is split into %d chunk(s), approximately %d words total.

## Glossary Terms to Search For:

%s

## Your Task:

1. Search through the text for occurrences of each glossary term
2. Consider variations (singular/plural, case variations)
3. Consider aliases if the term appears differently in context
4. Count the approximate number of occurrences for each term found

## Your Response:

Respond with a JSON object containing:

`+"```json"+`
{
    "matches": [
        {
            "term": "Term Name",
            "occurrences": 3,
            "context_snippets": ["...snippet where term appears..."]
        }
    ],
    "total_matches": 5
}
`+"```"+`

- `+"`matches`"+`: Array of terms found in the text with occurrence counts
- `+"`context_snippets`"+`: 1-2 short snippets showing where the term appears (optional, max 100 chars each)
- `+"`total_matches`"+`: Total number of term occurrences found

Only include terms that actually appear in the text. Return empty matches array if no terms found.`, totalChunks, totalWords, strings.Join(termLines, "\n"))
}
