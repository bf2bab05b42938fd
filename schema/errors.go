package schema

import "errors"

var (
	// ErrInvalidUser indicates an empty or malformed user name.
	ErrInvalidUser = errors.New("invalid user")
	// ErrUserNotFound indicates no registered user matched a lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoHardwareAddr indicates no network interface exposes a hardware address.
	ErrNoHardwareAddr = errors.New("no hardware address found")
	// ErrNoHostname indicates the host name could not be read.
	ErrNoHostname = errors.New("hostname unavailable")
	// ErrNoIdentity indicates neither identity input is available.
	ErrNoIdentity = errors.New("no identity inputs available")
	// ErrTerminalTooSmall indicates the terminal cannot fit the header, region and box.
	ErrTerminalTooSmall = errors.New("terminal too small")
	// ErrNotTerminal indicates stdin or stdout is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrInvalidKey indicates an unknown key binding name.
	ErrInvalidKey = errors.New("invalid key binding")
	// ErrInvalidOverflow indicates an unknown overflow policy.
	ErrInvalidOverflow = errors.New("invalid overflow policy")
	// ErrInvalidTheme indicates an unknown theme name.
	ErrInvalidTheme = errors.New("invalid theme")
)
