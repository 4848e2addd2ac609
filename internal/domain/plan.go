package domain

import "strings"

// SanitizePlan normalizes plan text returned by the server. The steps run in
// a fixed order: strip "**" markers, fold CRLF into LF, trim whitespace.
func SanitizePlan(raw string) string {
	s := strings.ReplaceAll(raw, "**", "")
	// "\r\r\n" folds to "\r\n" in a single pass, so repeat until stable.
	for strings.Contains(s, "\r\n") {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	return strings.TrimSpace(s)
}
