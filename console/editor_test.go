package console

import (
	"strings"
	"testing"

	"pkt.systems/boxchat/schema"
)

func testGeometry(t *testing.T) geometry {
	t.Helper()
	geo, err := newGeometry(40, 10)
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	return geo
}

func TestLineEditorInsertDeleteSymmetry(t *testing.T) {
	geo := testGeometry(t)
	for _, input := range []string{"", "a", "hello", "hello world", "åäö!?", strings.Repeat("x", 30)} {
		e := newLineEditor("", geo, schema.OverflowCap)
		n := 0
		for _, r := range input {
			if !e.Append(r) {
				t.Fatalf("append %q to %q rejected", r, input)
			}
			n++
		}
		if e.String() != input {
			t.Fatalf("expected buffer %q, got %q", input, e.String())
		}
		for i := 0; i < n; i++ {
			if !e.Backspace() {
				t.Fatalf("backspace %d on %q rejected", i, input)
			}
		}
		if e.String() != "" {
			t.Fatalf("expected empty buffer after %d backspaces, got %q", n, e.String())
		}
		if e.Backspace() {
			t.Fatalf("expected backspace on empty buffer to report false")
		}
	}
}

func TestLineEditorColumnTracksPromptAndBuffer(t *testing.T) {
	geo := testGeometry(t)
	e := newLineEditor("What ID? ", geo, schema.OverflowCap)
	if got := e.Column(); got != 1+len("What ID? ") {
		t.Fatalf("expected origin column %d, got %d", 1+len("What ID? "), got)
	}
	e.Append('4')
	e.Append('2')
	if got := e.Column(); got != 1+len("What ID? ")+2 {
		t.Fatalf("expected column after two runes, got %d", got)
	}
	if got := e.Commit(); got != "42" {
		t.Fatalf("expected commit value 42, got %q", got)
	}
	if e.Len() != 0 {
		t.Fatalf("expected commit to empty the buffer")
	}
}

func TestLineEditorCapsAtVisibleWidth(t *testing.T) {
	geo := testGeometry(t)
	e := newLineEditor("> ", geo, schema.OverflowCap)
	accepted := 0
	for i := 0; i < 100; i++ {
		if e.Append('x') {
			accepted++
		}
	}
	if want := geo.inputWidth() - 2; accepted != want {
		t.Fatalf("expected %d accepted runes, got %d", want, accepted)
	}
}

func TestLineEditorAllowOverflow(t *testing.T) {
	geo := testGeometry(t)
	e := newLineEditor("> ", geo, schema.OverflowAllow)
	for i := 0; i < 100; i++ {
		if !e.Append('x') {
			t.Fatalf("expected overflow policy allow to accept rune %d", i)
		}
	}
	if e.Len() != 100 {
		t.Fatalf("expected 100 runes, got %d", e.Len())
	}
}

func TestLineEditorTrimsWidePrompt(t *testing.T) {
	geo := testGeometry(t)
	e := newLineEditor(strings.Repeat("p", 80), geo, schema.OverflowCap)
	if got := len(e.prompt); got != geo.inputWidth()-1 {
		t.Fatalf("expected prompt trimmed to %d, got %d", geo.inputWidth()-1, got)
	}
	if !e.Append('a') || e.Append('b') {
		t.Fatalf("expected exactly one writable column")
	}
}

func TestLineEditorRenderingOnGrid(t *testing.T) {
	geo := testGeometry(t)
	grid := newGrid(geo.cols, geo.rows)
	reg := newRegion(grid, geo, themeForName("plain"), "boxchat")
	reg.Draw()
	e := newLineEditor("> ", geo, schema.OverflowCap)
	e.redraw(reg)
	for _, r := range "abc" {
		e.typeRune(r, grid)
	}
	if got := grid.inputText(); got != "> abc" {
		t.Fatalf("expected input line '> abc', got %q", got)
	}
	e.Backspace()
	e.redraw(reg)
	if got := grid.inputText(); got != "> ab" {
		t.Fatalf("expected input line '> ab' after backspace, got %q", got)
	}
	if grid.col != e.Column() || grid.row != geo.inputRow() {
		t.Fatalf("expected cursor at (%d,%d), got (%d,%d)", e.Column(), geo.inputRow(), grid.col, grid.row)
	}
}
