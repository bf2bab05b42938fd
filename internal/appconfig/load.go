package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pkt.systems/boxchat/console"
	"pkt.systems/boxchat/schema"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("console.poll_interval_ms", cfg.Console.PollIntervalMS)
	v.SetDefault("console.prompt_username", cfg.Console.PromptUsername)
	v.SetDefault("console.overflow", cfg.Console.Overflow)
	v.SetDefault("console.chat_log", cfg.Console.ChatLog)
	v.SetDefault("console.alt_screen", cfg.Console.AltScreen)
	v.SetDefault("console.theme", cfg.Console.Theme)
	v.SetDefault("console.title", cfg.Console.Title)
	v.SetDefault("prompts.username", cfg.Prompts.Username)
	v.SetDefault("prompts.message", cfg.Prompts.Message)
	v.SetDefault("prompts.lookup", cfg.Prompts.Lookup)
	v.SetDefault("keys.quit", cfg.Keys.Quit)
	v.SetDefault("keys.lookup", cfg.Keys.Lookup)
	v.SetDefault("keys.cancel", cfg.Keys.Cancel)
	v.SetDefault("identity.strict", cfg.Identity.Strict)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	} else {
		if !v.InConfig("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Logging.File = expandEnv(cfg.Logging.File)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check on its own.
func Validate(cfg Config) error {
	if cfg.Console.PollIntervalMS <= 0 {
		return fmt.Errorf("console.poll_interval_ms must be positive, got %d", cfg.Console.PollIntervalMS)
	}
	if _, err := schema.NormalizeOverflowPolicy(cfg.Console.Overflow); err != nil {
		return fmt.Errorf("console.overflow: %w", err)
	}
	if _, ok := schema.NormalizeThemeName(cfg.Console.Theme); !ok {
		return fmt.Errorf("console.theme: %w: %q is not one of %s", schema.ErrInvalidTheme, cfg.Console.Theme, themeList())
	}
	if len(cfg.Keys.Quit) == 0 {
		return fmt.Errorf("keys.quit: at least one quit key is required")
	}
	for _, name := range cfg.Keys.Quit {
		if err := console.ValidateKeyName(name); err != nil {
			return fmt.Errorf("keys.quit: %w", err)
		}
	}
	if err := console.ValidateKeyName(cfg.Keys.Lookup); err != nil {
		return fmt.Errorf("keys.lookup: %w", err)
	}
	for _, name := range cfg.Keys.Cancel {
		if err := console.ValidateKeyName(name); err != nil {
			return fmt.Errorf("keys.cancel: %w", err)
		}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "", "trace", "debug", "info", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of trace, debug, info, error", cfg.Logging.Level)
	}
	return nil
}

func themeList() string {
	names := schema.AvailableThemes()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = string(name)
	}
	return strings.Join(out, ", ")
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := lookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

func lookupEnv(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	switch key {
	case "UID":
		return fmt.Sprintf("%d", os.Getuid()), true
	case "GID":
		return fmt.Sprintf("%d", os.Getgid()), true
	}
	return "", false
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
