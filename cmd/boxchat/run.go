package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/boxchat/console"
	"pkt.systems/boxchat/core"
	"pkt.systems/boxchat/internal/appconfig"
	"pkt.systems/boxchat/internal/hostid"
	"pkt.systems/boxchat/internal/logx"
	"pkt.systems/boxchat/schema"
)

type runFlags struct {
	noUsername   bool
	pollInterval time.Duration
	theme        string
	logFile      string
	logLevel     string
}

func newRunCmd() *cobra.Command {
	var cfgPath string
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = applyRunFlags(cmd, cfg, flags)
			if err := appconfig.Validate(cfg); err != nil {
				return err
			}
			return runConsole(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&flags.noUsername, "no-username", false, "skip the username prompt")
	cmd.Flags().DurationVar(&flags.pollInterval, "poll-interval", console.DefaultPollInterval, "input poll interval")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "console theme ("+themeHelp()+")")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "write session logs to this file")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "session log level (trace, debug, info, error)")
	return cmd
}

func themeHelp() string {
	names := make([]string, 0, 2)
	for _, name := range schema.AvailableThemes() {
		names = append(names, string(name))
	}
	return strings.Join(names, ", ")
}

// applyRunFlags overlays explicitly set flags on the loaded config.
func applyRunFlags(cmd *cobra.Command, cfg appconfig.Config, flags runFlags) appconfig.Config {
	set := cmd.Flags().Changed
	if set("no-username") {
		cfg.Console.PromptUsername = !flags.noUsername
	}
	if set("poll-interval") {
		cfg.Console.PollIntervalMS = int(flags.pollInterval / time.Millisecond)
	}
	if set("theme") {
		cfg.Console.Theme = flags.theme
	}
	if set("log-file") {
		cfg.Logging.File = flags.logFile
	}
	if set("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	return cfg
}

func runConsole(ctx context.Context, cfg appconfig.Config) (err error) {
	ids := hostid.New(cfg.Identity.Strict)
	id, err := ids.Identity()
	if err != nil {
		return fmt.Errorf("host identity: %w", err)
	}

	logger, closer, err := logx.Open(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	ctx = logx.ContextWithUserLogger(ctx, logger.With("user", id), id)

	consoleCfg := cfg.ToConsole()
	term, err := console.Open(os.Stdin, os.Stdout, consoleCfg.AltScreen)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := term.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	cols, rows := term.Size()
	logger.Info("terminal opened", "cols", cols, "rows", rows, "alt_screen", consoleCfg.AltScreen)

	registry := core.NewRegistryWithLogger(ids, logger)
	session, err := console.NewSession(consoleCfg, term, registry)
	if err != nil {
		return err
	}
	err = session.Run(ctx)
	logger.Info("console session end", "users", registry.Len())
	return err
}
