package errs

import "strings"

// sanitize flattens newlines in values interpolated into error messages
// so a single log line cannot be split by attacker-controlled input.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
