package console

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// isPrintable reports whether r may enter an editor buffer. Only single
// column runes are accepted so that buffer length equals display width.
func isPrintable(r rune) bool {
	return unicode.IsPrint(r) && runewidth.RuneWidth(r) == 1
}

func trimToWidth(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, "")
}

func blank(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}

func horizontalRule(width int) string {
	if width < 2 {
		return strings.Repeat("+", max(width, 0))
	}
	return "+" + strings.Repeat("-", width-2) + "+"
}
