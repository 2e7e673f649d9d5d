package policy

import "strings"

const (
	codeParsingMarker  = "code parsing"
	snippetStartMarker = "Here is your code snippet:"
	snippetEndMarker   = "Make sure to include code"
)

// ExtractFromErrorOutput recovers a candidate message from an API error that
// echoes the model output back, as code-parsing agents do when the reply is
// plain text. Only code-parsing errors qualify. Lines between the snippet
// markers are trimmed and non-blank ones kept.
func ExtractFromErrorOutput(text string) (string, bool) {
	if !strings.Contains(text, codeParsingMarker) || !strings.Contains(text, snippetStartMarker) {
		return "", false
	}

	var lines []string
	found := false
	for _, line := range strings.Split(text, "\n") {
		if !found {
			if strings.Contains(line, snippetStartMarker) {
				found = true
			}
			continue
		}
		if strings.Contains(line, snippetEndMarker) {
			break
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}
