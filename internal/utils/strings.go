package utils

import (
	"strings"

	"github.com/kimor79/jass/internal/ui"
)

// FormatList formats a slice of values into an indented, one-per-line string.
func FormatList(items []string, format ui.Formatter) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("    - ")
		b.WriteString(format.Sprint(item))
		b.WriteString("\n")
	}
	return b.String()
}
