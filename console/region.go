package console

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"pkt.systems/boxchat/schema"
)

const (
	minCols = 20
	minRows = 5
)

// geometry is the fixed screen layout captured once at startup: a header on
// row 0, the message region below it and a three-row input box at the bottom.
type geometry struct {
	cols int
	rows int
}

func newGeometry(cols, rows int) (geometry, error) {
	if cols < minCols || rows < minRows {
		return geometry{}, fmt.Errorf("%w: %dx%d, need at least %dx%d", schema.ErrTerminalTooSmall, cols, rows, minCols, minRows)
	}
	return geometry{cols: cols, rows: rows}, nil
}

func (g geometry) headerRow() int  { return 0 }
func (g geometry) regionTop() int  { return 1 }
func (g geometry) boxTop() int     { return g.rows - 3 }
func (g geometry) inputRow() int   { return g.rows - 2 }
func (g geometry) boxBottom() int  { return g.rows - 1 }
func (g geometry) inputCol() int   { return 1 }
func (g geometry) inputWidth() int { return g.cols - 2 }

// region owns the box frame and the scrolling message area above it. When
// the area is full the next line wipes the screen and starts over at line 0;
// nothing is kept for scrollback.
type region struct {
	surface surface
	geo     geometry
	theme   tuiTheme
	title   string
	label   string
	lines   []string
	wraps   int
}

func newRegion(s surface, geo geometry, theme tuiTheme, title string) *region {
	return &region{surface: s, geo: geo, theme: theme, title: title}
}

// Top is the first message row.
func (r *region) Top() int { return r.geo.regionTop() }

// Bottom is the row just above the input box.
func (r *region) Bottom() int { return r.geo.boxTop() }

// Height is the number of message lines shown before the region wraps.
func (r *region) Height() int { return r.Bottom() - r.Top() }

// Width is the number of columns available to a message line.
func (r *region) Width() int { return r.geo.cols - 1 }

// CursorLine is the region line holding the most recent message.
func (r *region) CursorLine() int {
	if len(r.lines) == 0 {
		return 0
	}
	return len(r.lines) - 1
}

// Lines returns the messages currently on screen.
func (r *region) Lines() []string {
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Wraps counts how many times the region was wiped.
func (r *region) Wraps() int { return r.wraps }

// Draw clears the screen and paints the header and the box frame.
func (r *region) Draw() {
	s := r.surface
	s.ClearScreen()
	r.drawHeader()
	rule := horizontalRule(r.geo.cols)
	s.MoveTo(0, r.geo.boxTop())
	s.PrintColor(rule, r.theme.FrameFG)
	r.ClearInput()
	s.MoveTo(0, r.geo.boxBottom())
	s.PrintColor(rule, r.theme.FrameFG)
	s.MoveTo(r.geo.inputCol(), r.geo.inputRow())
}

// SetLabel shows label right-aligned on the header row.
func (r *region) SetLabel(label string) {
	r.label = label
	r.drawHeader()
}

func (r *region) drawHeader() {
	s := r.surface
	row := r.geo.headerRow()
	s.MoveTo(0, row)
	s.Print(blank(r.geo.cols))
	title := trimToWidth(r.title, r.geo.cols)
	if title != "" {
		s.MoveTo(0, row)
		s.PrintColor(title, r.theme.HeaderFG)
	}
	if r.label == "" {
		return
	}
	room := r.geo.cols - runewidth.StringWidth(title) - 2
	label := trimToWidth(r.label, room)
	if label == "" {
		return
	}
	s.MoveTo(r.geo.cols-1-runewidth.StringWidth(label), row)
	s.PrintColor(label, r.theme.HeaderFG)
}

// CommitLine renders text as the next message line and leaves the cursor on
// a cleared input line. It reports whether the region wrapped first.
func (r *region) CommitLine(text string) bool {
	return r.commit(text, nil)
}

// CommitNotice is CommitLine in the notice color.
func (r *region) CommitNotice(text string) bool {
	return r.commit(text, &r.theme.NoticeFG)
}

func (r *region) commit(text string, fg *rgb) bool {
	wrapped := false
	if len(r.lines) >= r.Height() {
		r.lines = r.lines[:0]
		r.wraps++
		r.Draw()
		wrapped = true
	}
	line := trimToWidth(text, r.Width())
	r.surface.MoveTo(1, r.Top()+len(r.lines))
	if fg != nil {
		r.surface.PrintColor(line, *fg)
	} else {
		r.surface.Print(line)
	}
	r.lines = append(r.lines, line)
	r.ClearInput()
	return wrapped
}

// ClearInput blanks the input line between the frame borders and parks the
// cursor at its first column.
func (r *region) ClearInput() {
	s := r.surface
	row := r.geo.inputRow()
	s.MoveTo(0, row)
	s.PrintColor("|", r.theme.FrameFG)
	s.Print(blank(r.geo.inputWidth()))
	s.PrintColor("|", r.theme.FrameFG)
	s.MoveTo(r.geo.inputCol(), row)
}
