package appconfig

import (
	"testing"
	"time"

	"pkt.systems/boxchat/schema"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
	if !cfg.Identity.Strict {
		t.Fatalf("expected strict identity by default")
	}
	if cfg.Console.PollIntervalMS != 500 {
		t.Fatalf("expected 500ms poll interval, got %d", cfg.Console.PollIntervalMS)
	}
}

func TestToConsole(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Console.Theme = "mono"
	cfg.Console.PollIntervalMS = 100
	cfg.Console.Overflow = "allow"
	out := cfg.ToConsole()
	if out.Theme != "plain" {
		t.Fatalf("expected theme alias resolved to plain, got %q", out.Theme)
	}
	if out.PollInterval != 100*time.Millisecond {
		t.Fatalf("expected 100ms, got %s", out.PollInterval)
	}
	if out.Overflow != schema.OverflowAllow {
		t.Fatalf("expected allow overflow, got %q", out.Overflow)
	}
	out.Keys.Quit[0] = "ctrl+x"
	if cfg.Keys.Quit[0] != "ctrl+q" {
		t.Fatalf("expected quit keys copied, got %q", cfg.Keys.Quit)
	}
	if out.Prompts.Lookup != "What ID? " {
		t.Fatalf("unexpected lookup prompt %q", out.Prompts.Lookup)
	}
}
