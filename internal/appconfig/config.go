package appconfig

import (
	"os"
	"path/filepath"
	"time"

	"pkt.systems/boxchat/console"
	"pkt.systems/boxchat/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	Console       ConsoleConfig  `mapstructure:"console" yaml:"console"`
	Prompts       PromptsConfig  `mapstructure:"prompts" yaml:"prompts"`
	Keys          KeysConfig     `mapstructure:"keys" yaml:"keys"`
	Identity      IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Logging       LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// ConsoleConfig controls the interactive session.
type ConsoleConfig struct {
	PollIntervalMS int    `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms"`
	PromptUsername bool   `mapstructure:"prompt_username" yaml:"prompt_username"`
	Overflow       string `mapstructure:"overflow" yaml:"overflow"`
	ChatLog        bool   `mapstructure:"chat_log" yaml:"chat_log"`
	AltScreen      bool   `mapstructure:"alt_screen" yaml:"alt_screen"`
	Theme          string `mapstructure:"theme" yaml:"theme"`
	Title          string `mapstructure:"title" yaml:"title"`
}

// PromptsConfig holds the labels shown in front of each input line.
type PromptsConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Message  string `mapstructure:"message" yaml:"message"`
	Lookup   string `mapstructure:"lookup" yaml:"lookup"`
}

// KeysConfig names the control key bindings.
type KeysConfig struct {
	Quit   []string `mapstructure:"quit" yaml:"quit"`
	Lookup string   `mapstructure:"lookup" yaml:"lookup"`
	Cancel []string `mapstructure:"cancel" yaml:"cancel"`
}

// IdentityConfig controls how the host identity is derived.
type IdentityConfig struct {
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// LoggingConfig controls the session log. An empty file disables logging
// while the terminal is in raw mode.
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	c := console.DefaultConfig()
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Console: ConsoleConfig{
			PollIntervalMS: int(c.PollInterval / time.Millisecond),
			PromptUsername: c.PromptUsername,
			Overflow:       string(c.Overflow),
			ChatLog:        c.ChatLog,
			AltScreen:      c.AltScreen,
			Theme:          string(c.Theme),
			Title:          c.Title,
		},
		Prompts: PromptsConfig{
			Username: c.Prompts.Username,
			Message:  c.Prompts.Message,
			Lookup:   c.Prompts.Lookup,
		},
		Keys: KeysConfig{
			Quit:   c.Keys.Quit,
			Lookup: c.Keys.Lookup,
			Cancel: c.Keys.Cancel,
		},
		Identity: IdentityConfig{
			Strict: true,
		},
		Logging: LoggingConfig{
			File:  "",
			Level: "info",
		},
	}
}

// ToConsole converts the loaded settings into a console session config.
func (c Config) ToConsole() console.Config {
	theme, ok := schema.NormalizeThemeName(c.Console.Theme)
	if !ok {
		theme = schema.DefaultTheme
	}
	return console.Config{
		PollInterval:   time.Duration(c.Console.PollIntervalMS) * time.Millisecond,
		PromptUsername: c.Console.PromptUsername,
		Overflow:       schema.OverflowPolicy(c.Console.Overflow),
		ChatLog:        c.Console.ChatLog,
		AltScreen:      c.Console.AltScreen,
		Theme:          theme,
		Title:          c.Console.Title,
		Prompts: console.Prompts{
			Username: c.Prompts.Username,
			Message:  c.Prompts.Message,
			Lookup:   c.Prompts.Lookup,
		},
		Keys: console.Keys{
			Quit:   append([]string(nil), c.Keys.Quit...),
			Lookup: c.Keys.Lookup,
			Cancel: append([]string(nil), c.Keys.Cancel...),
		},
	}
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".boxchat", "config.yaml"), nil
}
