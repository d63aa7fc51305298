package postprocess

import "strings"

// Clean normalizes messy extracted text: line endings, mid-sentence line
// breaks, space runs, and repeated blank lines. It is a fixed point:
// Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	paragraphs := strings.Split(text, "\n\n")
	cleaned := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		lines := joinBrokenLines(paragraph)
		if len(lines) > 0 {
			cleaned = append(cleaned, strings.Join(lines, "\n"))
		}
	}

	out := strings.Join(cleaned, "\n\n")
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	return strings.TrimSpace(out)
}

// joinBrokenLines merges a line into its predecessor when the predecessor
// does not end a sentence and the line does not begin one. This repairs
// hard-wrapped prose without touching lists or headings.
func joinBrokenLines(paragraph string) []string {
	var out []string
	for _, line := range strings.Split(paragraph, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(out) > 0 && !endsSentence(out[len(out)-1]) && !startsSentence(line) {
			out[len(out)-1] = out[len(out)-1] + " " + line
			continue
		}
		out = append(out, line)
	}
	return out
}

func endsSentence(line string) bool {
	for _, suffix := range []string{".", "!", "?", ":", ";"} {
		if strings.HasSuffix(line, suffix) {
			return true
		}
	}
	return false
}

func startsSentence(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	if c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return true
	}
	return strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "# ") ||
		strings.HasPrefix(line, "> ")
}
