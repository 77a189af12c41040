package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chmouel/go-genbadge/internal/badge"
	"github.com/chmouel/go-genbadge/internal/model"
	"github.com/chmouel/go-genbadge/internal/parser"
	"github.com/chmouel/go-genbadge/internal/summary"
)

const stdioMarker = "-"

type badgeFlags struct {
	input      string
	output     string
	name       string
	threshold  float64
	webShields bool
	local      bool
	json       bool

	hasName      bool
	hasThreshold bool
}

func addBadgeFlags(cmd *cobra.Command, f *badgeFlags, defaultInput, baseName string, withThreshold bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", defaultInput, "Report to read; '-' reads stdin")
	flags.StringVarP(&f.output, "output", "o", "", "Badge file or directory to write; '-' writes stdout (default "+baseName+".svg, or .json with --json)")
	flags.StringVarP(&f.name, "name", "n", "", "Badge label (empty for a value-only badge)")
	flags.BoolVarP(&f.webShields, "webshields", "w", false, "Render the badge with the shields.io service")
	flags.BoolVarP(&f.local, "local", "l", false, "Render the badge locally (default)")
	flags.BoolVar(&f.json, "json", false, "Write a shields.io endpoint JSON instead of an SVG")
	if withThreshold {
		flags.Float64VarP(&f.threshold, "threshold", "t", 0, "Fail when the percentage is strictly lower than this value")
	}
	cmd.MarkFlagsMutuallyExclusive("webshields", "local")
}

func (f *badgeFlags) changed(cmd *cobra.Command) {
	f.hasName = cmd.Flags().Changed("name")
	f.hasThreshold = cmd.Flags().Changed("threshold")
}

func newTestsCmd(a *app) *cobra.Command {
	f := &badgeFlags{}
	cmd := &cobra.Command{
		Use:     "tests",
		Aliases: []string{"junit"},
		Short:   "Generate a badge from a JUnit XML test report",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.changed(cmd)
			return a.runTests(cmd, f)
		},
	}
	addBadgeFlags(cmd, f, "reports/junit/junit.xml", "tests-badge", true)
	return cmd
}

func newCoverageCmd(a *app) *cobra.Command {
	f := &badgeFlags{}
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Generate a badge from a Cobertura coverage XML report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.changed(cmd)
			return a.runCoverage(cmd, f, false)
		},
	}
	addBadgeFlags(cmd, f, "reports/coverage/coverage.xml", "coverage-badge", true)
	return cmd
}

func newGoCoverCmd(a *app) *cobra.Command {
	f := &badgeFlags{}
	cmd := &cobra.Command{
		Use:   "gocover",
		Short: "Generate a coverage badge from a Go coverage profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.changed(cmd)
			return a.runCoverage(cmd, f, true)
		},
	}
	addBadgeFlags(cmd, f, "coverage.out", "coverage-badge", true)
	return cmd
}

func newFlake8Cmd(a *app) *cobra.Command {
	f := &badgeFlags{}
	cmd := &cobra.Command{
		Use:   "flake8",
		Short: "Generate a badge from flake8 --statistics output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.changed(cmd)
			return a.runFlake8(cmd, f)
		},
	}
	addBadgeFlags(cmd, f, "reports/flake8/flake8stats.txt", "flake8-badge", false)
	return cmd
}

func (a *app) parsers() *parser.Set {
	return parser.DefaultSet(parser.WithLogger(a.logger), parser.WithClassifier(a.cfg.Classifier()))
}

func (a *app) label(f *badgeFlags, kind, def string) string {
	if f.hasName {
		return f.name
	}
	return a.cfg.Label(kind, def)
}

// parseInput reads the report from stdin for "-" and from a file otherwise.
func parseInput[T any](cmd *cobra.Command, input string,
	fromReader func(io.Reader, string) (T, error), fromFile func(string) (T, error),
) (T, string, error) {
	if input == stdioMarker {
		v, err := fromReader(cmd.InOrStdin(), "<stdin>")
		return v, "<stdin>", err
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		abs = input
	}
	v, err := fromFile(input)
	return v, filepath.ToSlash(abs), err
}

func (a *app) runTests(cmd *cobra.Command, f *badgeFlags) error {
	set := a.parsers()
	stats, source, err := parseInput(cmd, f.input, set.ParseTests, set.ParseTestsFile)
	if err != nil {
		return exitError(exitReport, "failed to parse test report: %v", err)
	}
	a.logger.Debug("parsed test report", "source", source, "stats", stats.String())

	out := a.info(cmd, f.output == stdioMarker)
	if err := summary.Tests(out, source, *stats); err != nil {
		return err
	}

	if err := stats.Validate(); err != nil {
		return exitError(exitReport, "Inconsistent junit results: the sum of all kind of tests is not equal to the total. Details: %v", err)
	}

	// no tolerance: a percentage equal to the threshold passes
	if f.hasThreshold && stats.SuccessPercentage() < f.threshold {
		return exitError(exitUsage, "Success percentage %v%% is strictly lower than required threshold %v%%", stats.SuccessPercentage(), f.threshold)
	}

	b := badge.TestsBadge(*stats, a.label(f, "tests", badge.TestsLabel))
	return a.writeBadge(cmd, b, f, "tests-badge")
}

func (a *app) runCoverage(cmd *cobra.Command, f *badgeFlags, goProfile bool) error {
	set := a.parsers()
	var (
		stats  *model.CoverageStats
		source string
		err    error
	)
	if goProfile {
		stats, source, err = parseInput(cmd, f.input, set.ParseProfile, set.ParseProfileFile)
	} else {
		stats, source, err = parseInput(cmd, f.input, set.ParseCoverage, set.ParseCoverageFile)
	}
	if err != nil {
		return exitError(exitReport, "failed to parse coverage report: %v", err)
	}
	a.logger.Debug("parsed coverage report", "source", source, "total_rate", stats.TotalRate())

	out := a.info(cmd, f.output == stdioMarker)
	if err := summary.Coverage(out, source, *stats); err != nil {
		return err
	}

	if f.hasThreshold && stats.TotalCoverage() < f.threshold {
		return exitError(exitUsage, "Total coverage percentage %v%% is strictly lower than required threshold %v%%", stats.TotalCoverage(), f.threshold)
	}

	b := badge.CoverageBadge(*stats, a.label(f, "coverage", badge.CoverageLabel))
	return a.writeBadge(cmd, b, f, "coverage-badge")
}

func (a *app) runFlake8(cmd *cobra.Command, f *badgeFlags) error {
	set := a.parsers()
	stats, source, err := parseInput(cmd, f.input, set.ParseLint, set.ParseLintFile)
	if err != nil {
		return exitError(exitReport, "failed to parse flake8 statistics: %v", err)
	}

	out := a.info(cmd, f.output == stdioMarker)
	if err := summary.Flake8(out, source, *stats); err != nil {
		return err
	}

	b := badge.LintBadge(*stats, a.label(f, "flake8", badge.Flake8Label))
	return a.writeBadge(cmd, b, f, "flake8-badge")
}

func (a *app) renderer(f *badgeFlags) (badge.Renderer, error) {
	mode := a.cfg.RenderMode()
	switch {
	case f.webShields:
		mode = badge.ModeRemote
	case f.local:
		mode = badge.ModeLocal
	}

	var engine *badge.Engine
	if mode == badge.ModeLocal {
		var err error
		engine, err = badge.NewEngineFrom(a.cfg.FontSources()...)
		if err != nil {
			return nil, exitError(exitRender, "cannot render badge locally: %v", err)
		}
	}
	a.logger.Debug("rendering badge", "mode", mode)
	return badge.NewRenderer(mode, engine, a.cfg.ShieldsURL)
}

func (a *app) writeBadge(cmd *cobra.Command, b badge.Badge, f *badgeFlags, baseName string) error {
	ext := ".svg"
	if f.json {
		ext = ".json"
	}
	output := resolveOutput(f.output, baseName+ext)

	if f.json {
		content := badge.ShieldsJSON(b)
		if output == stdioMarker {
			_, err := io.WriteString(cmd.OutOrStdout(), content)
			return err
		}
		if err := writeFile(output, content); err != nil {
			return err
		}
		return a.created(cmd, output)
	}

	r, err := a.renderer(f)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if output == stdioMarker {
		if err := b.WriteSVG(ctx, cmd.OutOrStdout(), r); err != nil {
			return exitError(exitRender, "failed to write badge: %v", err)
		}
		return nil
	}
	if err := b.SaveSVG(ctx, output, r); err != nil {
		return exitError(exitRender, "failed to write badge: %v", err)
	}
	return a.created(cmd, output)
}

func (a *app) created(cmd *cobra.Command, output string) error {
	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	_, err = fmt.Fprintf(a.info(cmd, false), "SUCCESS - Badge created: %q\n", filepath.ToSlash(abs))
	return err
}

// resolveOutput appends defaultName when output is empty or a directory.
func resolveOutput(output, defaultName string) string {
	switch {
	case output == stdioMarker:
		return output
	case output == "":
		return defaultName
	case strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)):
		return filepath.Join(output, defaultName)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, defaultName)
	}
	return output
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: output directory should be readable
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // G306: Badge should be readable
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
