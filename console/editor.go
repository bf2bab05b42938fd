package console

import (
	"github.com/mattn/go-runewidth"

	"pkt.systems/boxchat/schema"
)

// lineEditor holds one in-progress input line. The cursor always sits at the
// end of the buffer; only appending and removing the last rune are supported.
type lineEditor struct {
	buf    []rune
	prompt string
	row    int
	col    int
	limit  int
}

// newLineEditor lays out an editor on the input line of geo. The prompt is
// trimmed so that at least one column stays writable; with OverflowCap the
// buffer is limited to the remaining visible width.
func newLineEditor(prompt string, geo geometry, overflow schema.OverflowPolicy) lineEditor {
	width := geo.inputWidth()
	prompt = trimToWidth(prompt, width-1)
	e := lineEditor{
		prompt: prompt,
		row:    geo.inputRow(),
		col:    geo.inputCol() + runewidth.StringWidth(prompt),
	}
	if overflow != schema.OverflowAllow {
		e.limit = width - runewidth.StringWidth(prompt)
	}
	return e
}

func (e *lineEditor) String() string {
	return string(e.buf)
}

func (e *lineEditor) Len() int {
	return len(e.buf)
}

func (e *lineEditor) Clear() {
	e.buf = nil
}

// Column is the screen column of the next rune.
func (e *lineEditor) Column() int {
	return e.col + len(e.buf)
}

// Append adds r unless the buffer is at its limit.
func (e *lineEditor) Append(r rune) bool {
	if e.limit > 0 && len(e.buf) >= e.limit {
		return false
	}
	e.buf = append(e.buf, r)
	return true
}

// Backspace removes the last rune. It reports false on an empty buffer.
func (e *lineEditor) Backspace() bool {
	if len(e.buf) == 0 {
		return false
	}
	e.buf = e.buf[:len(e.buf)-1]
	return true
}

// Commit returns the buffer and empties it.
func (e *lineEditor) Commit() string {
	value := e.String()
	e.Clear()
	return value
}

// typeRune appends r and echoes it at the write position.
func (e *lineEditor) typeRune(r rune, s surface) bool {
	col := e.Column()
	if !e.Append(r) {
		return false
	}
	s.MoveTo(col, e.row)
	s.Print(string(r))
	return true
}

// redraw clears the input line and paints prompt and buffer from the origin.
func (e *lineEditor) redraw(reg *region) {
	reg.ClearInput()
	s := reg.surface
	if e.prompt != "" {
		s.PrintColor(e.prompt, reg.theme.PromptFG)
	}
	if len(e.buf) > 0 {
		s.MoveTo(e.col, e.row)
		s.Print(string(e.buf))
	}
	s.MoveTo(e.Column(), e.row)
}
