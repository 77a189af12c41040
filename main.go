package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chmouel/go-genbadge/internal/config"
)

// Version information - can be set at build time using ldflags
var version = "dev"

// Exit codes.
const (
	exitGeneric = 1
	exitUsage   = 2
	exitReport  = 3
	exitRender  = 4
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// app holds the state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool
	silent     bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "genbadge",
		Short: "Generate badges from test, coverage and lint reports",
		Long: `Generate shields.io-style SVG badges from CI reports.
To get help on each command use:

    genbadge <cmd> --help`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath, "Path to the YAML configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print debug information to stderr")
	flags.BoolVarP(&a.silent, "silent", "s", false, "Only print errors")

	root.AddCommand(
		newTestsCmd(a),
		newCoverageCmd(a),
		newGoCoverCmd(a),
		newFlake8Cmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	switch {
	case a.verbose:
		level = slog.LevelDebug
	case a.silent:
		level = slog.LevelError
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadConfig(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return exitError(exitUsage, "failed to load configuration: %v", err)
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "path", a.configPath, "mode", cfg.Mode)
	return nil
}

// info returns where human-readable messages go; stdout unless it carries
// the badge itself.
func (a *app) info(cmd *cobra.Command, badgeOnStdout bool) io.Writer {
	if a.silent {
		return io.Discard
	}
	if badgeOnStdout {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "ERROR:", ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(exitGeneric)
	}
}
