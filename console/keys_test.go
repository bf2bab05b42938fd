package console

import (
	"errors"
	"testing"

	"pkt.systems/boxchat/schema"
)

func TestKeyDecoderPrintableAndControls(t *testing.T) {
	var d keyDecoder
	got := d.Feed([]byte("hi\r\n\x7f\x08\x11\x17\t"))
	want := []key{
		{kind: keyRune, r: 'h'},
		{kind: keyRune, r: 'i'},
		{kind: keyEnter},
		{kind: keyBackspace},
		{kind: keyBackspace},
		ctrlKey('q'),
		ctrlKey('w'),
		{kind: keyTab},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if d.Pending() {
		t.Fatalf("expected nothing pending")
	}
}

func TestKeyDecoderCRLFSplitAcrossReads(t *testing.T) {
	var d keyDecoder
	if got := d.Feed([]byte("\r")); len(got) != 1 || got[0].kind != keyEnter {
		t.Fatalf("expected enter, got %+v", got)
	}
	if got := d.Feed([]byte("\n")); len(got) != 0 {
		t.Fatalf("expected LF after CR to be swallowed, got %+v", got)
	}
	if got := d.Feed([]byte("\n")); len(got) != 1 || got[0] != ctrlKey('j') {
		t.Fatalf("expected bare LF to decode as ctrl+j, got %+v", got)
	}
}

func TestKeyDecoderEscapeSequences(t *testing.T) {
	var d keyDecoder
	got := d.Feed([]byte("\x1b[A\x1b[3~\x1bOH\x1b[Z"))
	want := []keyKind{keyUp, keyDelete, keyHome, keyShiftTab}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %+v", len(want), got)
	}
	for i, kind := range want {
		if got[i].kind != kind {
			t.Fatalf("key %d: expected kind %v, got %v", i, kind, got[i].kind)
		}
	}
}

func TestKeyDecoderSplitEscapeSequence(t *testing.T) {
	var d keyDecoder
	if got := d.Feed([]byte("\x1b[")); len(got) != 0 {
		t.Fatalf("expected incomplete sequence to stay pending, got %+v", got)
	}
	if !d.Pending() {
		t.Fatalf("expected pending bytes")
	}
	got := d.Feed([]byte("Dx"))
	if len(got) != 2 || got[0].kind != keyLeft || got[1] != (key{kind: keyRune, r: 'x'}) {
		t.Fatalf("expected left then x, got %+v", got)
	}
}

func TestKeyDecoderLoneEscapeFlushes(t *testing.T) {
	var d keyDecoder
	if got := d.Feed([]byte{0x1b}); len(got) != 0 {
		t.Fatalf("expected lone ESC to wait, got %+v", got)
	}
	got := d.Flush()
	if len(got) != 1 || got[0].kind != keyEscape {
		t.Fatalf("expected escape on flush, got %+v", got)
	}
	if d.Pending() {
		t.Fatalf("expected flush to clear pending bytes")
	}
}

func TestKeyDecoderDoubleEscape(t *testing.T) {
	var d keyDecoder
	got := d.Feed([]byte("\x1b\x1b[B"))
	if len(got) != 2 || got[0].kind != keyEscape || got[1].kind != keyDown {
		t.Fatalf("expected escape then down, got %+v", got)
	}
}

func TestKeyDecoderSplitUTF8(t *testing.T) {
	var d keyDecoder
	raw := []byte("é")
	if got := d.Feed(raw[:1]); len(got) != 0 {
		t.Fatalf("expected partial rune to wait, got %+v", got)
	}
	got := d.Feed(raw[1:])
	if len(got) != 1 || got[0].r != 'é' {
		t.Fatalf("expected é, got %+v", got)
	}
}

func TestKeyDecoderDropsOverlongCSI(t *testing.T) {
	var d keyDecoder
	got := d.Feed([]byte("\x1b[123456789a"))
	if len(got) != 1 || got[0] != (key{kind: keyRune, r: 'a'}) {
		t.Fatalf("expected garbage CSI to be dropped, got %+v", got)
	}
}

func TestParseKey(t *testing.T) {
	cases := map[string]key{
		"ctrl+q": ctrlKey('q'),
		"Ctrl-W": ctrlKey('w'),
		" esc ":  {kind: keyEscape},
		"escape": {kind: keyEscape},
		"tab":    {kind: keyTab},
		"ctrl+c": ctrlKey('c'),
		"ctrl+j": ctrlKey('j'),
	}
	for name, want := range cases {
		got, err := parseKey(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %+v, got %+v", name, want, got)
		}
	}
	for _, name := range []string{"", "q", "ctrl+", "ctrl+1", "ctrl+m", "ctrl+h", "ctrl+i", "alt+x"} {
		if _, err := parseKey(name); !errors.Is(err, schema.ErrInvalidKey) {
			t.Fatalf("parse %q: expected ErrInvalidKey, got %v", name, err)
		}
	}
}

func TestKeySetHas(t *testing.T) {
	set, err := parseKeys([]string{"esc", "ctrl+c"})
	if err != nil {
		t.Fatalf("parse keys: %v", err)
	}
	if !set.has(key{kind: keyEscape}) || !set.has(ctrlKey('c')) {
		t.Fatalf("expected bindings to match")
	}
	if set.has(ctrlKey('q')) {
		t.Fatalf("did not expect ctrl+q to match")
	}
}
