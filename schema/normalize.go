package schema

import (
	"strings"
	"unicode"
)

// NormalizeUserName trims a user name and rejects empty or control-bearing values.
func NormalizeUserName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrInvalidUser
	}
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", ErrInvalidUser
		}
	}
	return trimmed, nil
}

// NormalizeOverflowPolicy validates an overflow policy name. Empty selects OverflowCap.
func NormalizeOverflowPolicy(value string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "cap":
		return OverflowCap, nil
	case "allow":
		return OverflowAllow, nil
	default:
		return "", ErrInvalidOverflow
	}
}
