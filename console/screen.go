package console

import (
	"bytes"
	"io"
	"strconv"
)

// surface is the drawing target of the console. Coordinates are zero-based
// columns and rows.
type surface interface {
	MoveTo(col, row int)
	ClearScreen()
	Print(text string)
	PrintColor(text string, fg rgb)
	Flush() error
}

// screen renders to an ANSI terminal. Output is batched until Flush.
type screen struct {
	out   io.Writer
	buf   bytes.Buffer
	color bool
}

func newScreen(out io.Writer, color bool) *screen {
	return &screen{out: out, color: color}
}

func (s *screen) EnterAltScreen() error {
	_, err := io.WriteString(s.out, "\x1b[?1049h\x1b[H\x1b[2J")
	return err
}

func (s *screen) ExitAltScreen() error {
	_, err := io.WriteString(s.out, "\x1b[?1049l\x1b[?25h")
	return err
}

func (s *screen) MoveTo(col, row int) {
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	s.buf.WriteString("\x1b[")
	s.buf.WriteString(strconv.Itoa(row + 1))
	s.buf.WriteByte(';')
	s.buf.WriteString(strconv.Itoa(col + 1))
	s.buf.WriteByte('H')
}

func (s *screen) ClearScreen() {
	s.buf.WriteString("\x1b[H\x1b[2J")
}

func (s *screen) Print(text string) {
	s.buf.WriteString(text)
}

func (s *screen) PrintColor(text string, fg rgb) {
	if !s.color || text == "" {
		s.buf.WriteString(text)
		return
	}
	s.buf.WriteString(ansiFgRGB(fg))
	s.buf.WriteString(text)
	s.buf.WriteString(ansiReset)
}

func (s *screen) Flush() error {
	if s.buf.Len() == 0 {
		return nil
	}
	_, err := s.out.Write(s.buf.Bytes())
	s.buf.Reset()
	return err
}
