package console

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"pkt.systems/boxchat/schema"
)

// Terminal is a raw-mode terminal acquired for the lifetime of a session.
// Close must run on every exit path to restore the previous mode.
type Terminal struct {
	out       io.Writer
	inFd      int
	state     *term.State
	screen    *screen
	input     *pollReader
	cols      int
	rows      int
	altScreen bool
}

// Open queries the terminal size once and switches to raw mode.
func Open(in, out *os.File, altScreen bool) (*Terminal, error) {
	inFd := int(in.Fd())
	outFd := int(out.Fd())
	if !term.IsTerminal(inFd) || !term.IsTerminal(outFd) {
		return nil, schema.ErrNotTerminal
	}
	cols, rows, err := term.GetSize(outFd)
	if err != nil {
		return nil, fmt.Errorf("query terminal size: %w", err)
	}
	if _, err := newGeometry(cols, rows); err != nil {
		return nil, err
	}
	state, err := term.MakeRaw(inFd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	t := &Terminal{
		out:       out,
		inFd:      inFd,
		state:     state,
		screen:    newScreen(out, false),
		input:     newPollReader(inFd),
		cols:      cols,
		rows:      rows,
		altScreen: altScreen,
	}
	if altScreen {
		if err := t.screen.EnterAltScreen(); err != nil {
			_ = term.Restore(inFd, state)
			return nil, err
		}
	}
	return t, nil
}

// Size returns the columns and rows captured at Open.
func (t *Terminal) Size() (int, int) {
	return t.cols, t.rows
}

// Close leaves the alternate screen and restores the saved terminal mode.
func (t *Terminal) Close() error {
	if t == nil || t.state == nil {
		return nil
	}
	var errs []error
	if t.altScreen {
		errs = append(errs, t.screen.ExitAltScreen())
	} else {
		t.screen.MoveTo(0, t.rows-1)
		t.screen.Print("\r\n")
		errs = append(errs, t.screen.Flush())
	}
	if err := term.Restore(t.inFd, t.state); err != nil {
		errs = append(errs, fmt.Errorf("disable raw mode: %w", err))
	}
	t.state = nil
	return errors.Join(errs...)
}
