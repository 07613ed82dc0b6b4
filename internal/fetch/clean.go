package fetch

import (
	"regexp"
	"strings"
)

var horizontalSpace = regexp.MustCompile(`[ \t]+`)

// CleanText normalizes extracted page text: runs of spaces collapse to
// one, at most one consecutive blank line survives. Less filler means
// more of the listing fits under the prompt cap.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	emptyLines := 0

	for _, line := range lines {
		line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
		if line == "" {
			emptyLines++
			if emptyLines <= 1 {
				cleaned = append(cleaned, "")
			}
			continue
		}
		emptyLines = 0
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
