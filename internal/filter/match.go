// Package filter decides which namespaces take part in an extraction run.
package filter

import "strings"

// Match reports whether text satisfies a wildcard pattern.
//
// The pattern is split on '*' and every non-empty segment must occur in text,
// left to right, each one starting at or after the end of the previous match.
// The first segment is not anchored to the start of text. When the pattern
// does not end with '*', text must also end with the final segment; this is
// the only anchored check. There is no escape for a literal '*'.
func Match(text, pattern string) bool {
	if pattern == "*" {
		return true
	}

	segments := strings.Split(pattern, "*")
	pos := 0
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		idx := strings.Index(text[pos:], seg)
		if idx < 0 {
			return false
		}
		pos += idx + len(seg)
	}

	if !strings.HasSuffix(pattern, "*") {
		return strings.HasSuffix(text, segments[len(segments)-1])
	}
	return true
}
