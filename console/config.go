package console

import (
	"time"

	"pkt.systems/boxchat/schema"
)

// DefaultPollInterval is how long the event loop waits for input per tick.
const DefaultPollInterval = 500 * time.Millisecond

// Config defines console session settings.
type Config struct {
	PollInterval   time.Duration
	PromptUsername bool
	Overflow       schema.OverflowPolicy
	ChatLog        bool
	AltScreen      bool
	Theme          schema.ThemeName
	Title          string
	Prompts        Prompts
	Keys           Keys
}

// Prompts are the labels shown in front of each editor.
type Prompts struct {
	Username string
	Message  string
	Lookup   string
}

// Keys names the control bindings, e.g. "ctrl+q" or "esc".
type Keys struct {
	Quit   []string
	Lookup string
	Cancel []string
}

// DefaultConfig returns the stock console settings.
func DefaultConfig() Config {
	return Config{
		PollInterval:   DefaultPollInterval,
		PromptUsername: true,
		Overflow:       schema.OverflowCap,
		ChatLog:        true,
		AltScreen:      true,
		Theme:          schema.DefaultTheme,
		Title:          "boxchat",
		Prompts: Prompts{
			Username: "Enter your username: ",
			Message:  "",
			Lookup:   "What ID? ",
		},
		Keys: Keys{
			Quit:   []string{"ctrl+q"},
			Lookup: "ctrl+w",
			Cancel: []string{"esc", "ctrl+c"},
		},
	}
}
