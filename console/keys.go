package console

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pkt.systems/boxchat/schema"
)

type keyKind int

const (
	keyUnknown keyKind = iota
	keyRune
	keyEnter
	keyBackspace
	keyEscape
	keyTab
	keyShiftTab
	keyDelete
	keyCtrl
	keyUp
	keyDown
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyPageUp
	keyPageDown
)

// key is one decoded keystroke. For keyCtrl, r holds the lower-case letter.
type key struct {
	kind keyKind
	r    rune
}

func ctrlKey(letter rune) key {
	return key{kind: keyCtrl, r: letter}
}

// maxCSILen bounds how many parameter bytes a CSI sequence may carry before
// it is discarded as garbage.
const maxCSILen = 8

// keyDecoder turns raw terminal bytes into keys. Reads arrive in arbitrary
// chunks, so incomplete escape sequences and UTF-8 runes stay pending until
// the next Feed or an explicit Flush.
type keyDecoder struct {
	pending   []byte
	lastWasCR bool
}

// Pending reports whether an incomplete sequence is buffered.
func (d *keyDecoder) Pending() bool {
	return len(d.pending) > 0
}

// Feed appends data and returns every complete key.
func (d *keyDecoder) Feed(data []byte) []key {
	d.pending = append(d.pending, data...)
	var out []key
	i := 0
	for i < len(d.pending) {
		b := d.pending[i]
		if d.lastWasCR {
			d.lastWasCR = false
			if b == '\n' {
				i++
				continue
			}
		}
		switch {
		case b == 0x1b:
			n, k, ok := parseEscape(d.pending[i:])
			if !ok {
				d.keep(i)
				return out
			}
			if k.kind != keyUnknown {
				out = append(out, k)
			}
			i += n
			continue
		case b == '\r':
			out = append(out, key{kind: keyEnter})
			d.lastWasCR = true
		case b == '\n':
			out = append(out, ctrlKey('j'))
		case b == 0x7f || b == 0x08:
			out = append(out, key{kind: keyBackspace})
		case b == 0x09:
			out = append(out, key{kind: keyTab})
		case b >= 0x01 && b <= 0x1a:
			out = append(out, ctrlKey(rune('a'+b-1)))
		case b < 0x20:
			// NUL and the remaining C0 controls carry no binding.
		case b < utf8.RuneSelf:
			out = append(out, key{kind: keyRune, r: rune(b)})
		default:
			if !utf8.FullRune(d.pending[i:]) {
				d.keep(i)
				return out
			}
			r, size := utf8.DecodeRune(d.pending[i:])
			if r != utf8.RuneError || size > 1 {
				out = append(out, key{kind: keyRune, r: r})
			}
			i += size
			continue
		}
		i++
	}
	d.pending = d.pending[:0]
	return out
}

// Flush resolves whatever is pending after the input went quiet. A lone ESC
// becomes keyEscape; any other partial sequence is dropped.
func (d *keyDecoder) Flush() []key {
	if len(d.pending) == 0 {
		return nil
	}
	lone := len(d.pending) == 1 && d.pending[0] == 0x1b
	d.pending = d.pending[:0]
	if lone {
		return []key{{kind: keyEscape}}
	}
	return nil
}

func (d *keyDecoder) keep(from int) {
	n := copy(d.pending, d.pending[from:])
	d.pending = d.pending[:n]
}

// parseEscape decodes the sequence starting at buf[0] == ESC. ok is false
// when more bytes are needed.
func parseEscape(buf []byte) (int, key, bool) {
	if len(buf) < 2 {
		return 0, key{}, false
	}
	switch buf[1] {
	case '[':
		return parseCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return 0, key{}, false
		}
		return 3, ss3Key(buf[2]), true
	case 0x1b:
		return 1, key{kind: keyEscape}, true
	default:
		// Alt-modified keys are not bound.
		return 2, key{}, true
	}
}

func parseCSI(buf []byte) (int, key, bool) {
	for i := 2; i < len(buf); i++ {
		b := buf[i]
		if b >= 0x40 && b <= 0x7e {
			return i + 1, csiKey(string(buf[2 : i+1])), true
		}
		if i-2 >= maxCSILen {
			return i + 1, key{}, true
		}
	}
	return 0, key{}, false
}

func csiKey(seq string) key {
	switch seq {
	case "A":
		return key{kind: keyUp}
	case "B":
		return key{kind: keyDown}
	case "C":
		return key{kind: keyRight}
	case "D":
		return key{kind: keyLeft}
	case "H", "1~", "7~":
		return key{kind: keyHome}
	case "F", "4~", "8~":
		return key{kind: keyEnd}
	case "5~":
		return key{kind: keyPageUp}
	case "6~":
		return key{kind: keyPageDown}
	case "3~":
		return key{kind: keyDelete}
	case "Z", "1;2Z":
		return key{kind: keyShiftTab}
	}
	return key{}
}

func ss3Key(b byte) key {
	switch b {
	case 'A':
		return key{kind: keyUp}
	case 'B':
		return key{kind: keyDown}
	case 'C':
		return key{kind: keyRight}
	case 'D':
		return key{kind: keyLeft}
	case 'H':
		return key{kind: keyHome}
	case 'F':
		return key{kind: keyEnd}
	}
	return key{}
}

// keySet is a set of bindings matched against decoded keys.
type keySet []key

func (s keySet) has(k key) bool {
	for _, candidate := range s {
		if candidate == k {
			return true
		}
	}
	return false
}

// parseKey resolves a binding name such as "ctrl+q" or "esc".
func parseKey(name string) (key, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "+")
	switch normalized {
	case "esc", "escape":
		return key{kind: keyEscape}, nil
	case "tab":
		return key{kind: keyTab}, nil
	}
	letter, ok := strings.CutPrefix(normalized, "ctrl+")
	if !ok || len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return key{}, fmt.Errorf("%w: %q", schema.ErrInvalidKey, name)
	}
	switch letter[0] {
	case 'h', 'i', 'm':
		// These arrive as backspace, tab and enter in raw mode.
		return key{}, fmt.Errorf("%w: %q is indistinguishable from an editing key", schema.ErrInvalidKey, name)
	}
	return ctrlKey(rune(letter[0])), nil
}

func parseKeys(names []string) (keySet, error) {
	out := make(keySet, 0, len(names))
	for _, name := range names {
		k, err := parseKey(name)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// ValidateKeyName reports whether name is a usable key binding.
func ValidateKeyName(name string) error {
	_, err := parseKey(name)
	return err
}
