package app

import (
	"regexp"
	"strings"
)

// Queries attached to spans are whitespace-collapsed and capped so JSONB
// payload literals do not blow up trace storage.
const maxTracedQueryLen = 512

var collapseWhitespace = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	compact := collapseWhitespace.ReplaceAllString(query, " ")
	if len(compact) <= maxTracedQueryLen {
		return compact
	}

	return compact[:maxTracedQueryLen] + "..."
}
