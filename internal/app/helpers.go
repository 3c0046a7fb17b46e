package app

import "strings"

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}
