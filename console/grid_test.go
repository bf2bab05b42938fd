package console

import (
	"io"
	"strings"
	"time"
)

// gridSurface is an in-memory character grid standing in for a terminal.
// Colors are ignored; writes past the right edge are clipped.
type gridSurface struct {
	cols    int
	rows    int
	cells   [][]rune
	col     int
	row     int
	clears  int
	flushes int
}

func newGrid(cols, rows int) *gridSurface {
	g := &gridSurface{cols: cols, rows: rows}
	g.ClearScreen()
	g.clears = 0
	return g
}

func (g *gridSurface) MoveTo(col, row int) {
	g.col, g.row = col, row
}

func (g *gridSurface) ClearScreen() {
	g.cells = make([][]rune, g.rows)
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", g.cols))
	}
	g.col, g.row = 0, 0
	g.clears++
}

func (g *gridSurface) Print(text string) {
	for _, r := range text {
		if g.row >= 0 && g.row < g.rows && g.col >= 0 && g.col < g.cols {
			g.cells[g.row][g.col] = r
		}
		g.col++
	}
}

func (g *gridSurface) PrintColor(text string, _ rgb) {
	g.Print(text)
}

func (g *gridSurface) Flush() error {
	g.flushes++
	return nil
}

func (g *gridSurface) Row(row int) string {
	return strings.TrimRight(string(g.cells[row]), " ")
}

// inputText returns the input line without the frame borders.
func (g *gridSurface) inputText() string {
	line := string(g.cells[g.rows-2])
	return strings.TrimRight(line[1:len(line)-1], " ")
}

// scriptedKeys replays batches of keys, one batch per poll, then reports
// idle ticks (or end of input when eof is set).
type scriptedKeys struct {
	batches [][]key
	polls   int
	eof     bool
	err     error
}

func (s *scriptedKeys) Poll(time.Duration) ([]key, error) {
	s.polls++
	if len(s.batches) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		if s.eof {
			return nil, io.EOF
		}
		return nil, nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, nil
}

func typed(text string) []key {
	out := make([]key, 0, len(text))
	for _, r := range text {
		out = append(out, key{kind: keyRune, r: r})
	}
	return out
}

func enterKey() key     { return key{kind: keyEnter} }
func backspaceKey() key { return key{kind: keyBackspace} }
