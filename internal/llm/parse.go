package llm

import "strings"

// CleanMarkdownWrapper strips a markdown code fence from around generated
// content. Models frequently wrap JSON answers in ```json fences even when
// told not to.
func CleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "```") {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}

	// Drop the opening fence (with any language tag) and a trailing fence.
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
