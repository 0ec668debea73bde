package ics

import "regexp"

// A fold is a line terminator followed by one or more spaces or tabs. The
// terminator and the leading whitespace are removed, joining the continuation
// onto the previous line with no separator.
var foldPattern = regexp.MustCompile(`\r?\n[ \t]+`)

// Unfold collapses RFC 5545 folded lines into single logical lines. It is a
// pure transform and idempotent; input without folds is returned unchanged.
func Unfold(text string) string {
	return foldPattern.ReplaceAllString(text, "")
}
