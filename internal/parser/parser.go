// Package parser reads CI reports (JUnit XML, Cobertura XML, Go coverage
// profiles, flake8 statistics) into model statistics.
package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/chmouel/go-genbadge/internal/model"
)

// TestReportParser parses a JUnit-style test report.
type TestReportParser interface {
	ParseTests(r io.Reader, source string) (*model.TestStats, error)
}

// CoverageParser parses a coverage report.
type CoverageParser interface {
	ParseCoverage(r io.Reader, source string) (*model.CoverageStats, error)
}

// LintReportParser parses a lint statistics report.
type LintReportParser interface {
	ParseLint(r io.Reader, source string) (*model.LintStats, error)
}

// Set groups one parser implementation per report kind. A nil member means
// the kind is not available and fails with DependencyMissingError on first use.
type Set struct {
	JUnit     TestReportParser
	Cobertura CoverageParser
	GoProfile CoverageParser
	Flake8    LintReportParser
}

// DefaultSet returns a Set wired with the built-in parsers.
func DefaultSet(opts ...Flake8Option) *Set {
	return &Set{
		JUnit:     &JUnitParser{},
		Cobertura: &CoberturaParser{},
		GoProfile: &ProfileParser{},
		Flake8:    NewFlake8Parser(opts...),
	}
}

// ParseTests parses a JUnit report read from r. source names the input in errors.
func (s *Set) ParseTests(r io.Reader, source string) (*model.TestStats, error) {
	if s.JUnit == nil {
		return nil, &DependencyMissingError{Kind: "junit"}
	}
	return s.JUnit.ParseTests(r, source)
}

// ParseTestsFile parses the JUnit report at path.
func (s *Set) ParseTestsFile(path string) (*model.TestStats, error) {
	var stats *model.TestStats
	err := withFile(path, func(f io.Reader) (err error) {
		stats, err = s.ParseTests(f, path)
		return err
	})
	return stats, err
}

// ParseCoverage parses a Cobertura XML report read from r.
func (s *Set) ParseCoverage(r io.Reader, source string) (*model.CoverageStats, error) {
	if s.Cobertura == nil {
		return nil, &DependencyMissingError{Kind: "cobertura"}
	}
	return s.Cobertura.ParseCoverage(r, source)
}

// ParseCoverageFile parses the Cobertura XML report at path.
func (s *Set) ParseCoverageFile(path string) (*model.CoverageStats, error) {
	var stats *model.CoverageStats
	err := withFile(path, func(f io.Reader) (err error) {
		stats, err = s.ParseCoverage(f, path)
		return err
	})
	return stats, err
}

// ParseProfile parses a Go coverage profile read from r.
func (s *Set) ParseProfile(r io.Reader, source string) (*model.CoverageStats, error) {
	if s.GoProfile == nil {
		return nil, &DependencyMissingError{Kind: "goprofile"}
	}
	return s.GoProfile.ParseCoverage(r, source)
}

// ParseProfileFile parses the Go coverage profile at path.
func (s *Set) ParseProfileFile(path string) (*model.CoverageStats, error) {
	var stats *model.CoverageStats
	err := withFile(path, func(f io.Reader) (err error) {
		stats, err = s.ParseProfile(f, path)
		return err
	})
	return stats, err
}

// ParseLint parses flake8 statistics read from r.
func (s *Set) ParseLint(r io.Reader, source string) (*model.LintStats, error) {
	if s.Flake8 == nil {
		return nil, &DependencyMissingError{Kind: "flake8"}
	}
	return s.Flake8.ParseLint(r, source)
}

// ParseLintFile parses the flake8 statistics file at path.
func (s *Set) ParseLintFile(path string) (*model.LintStats, error) {
	var stats *model.LintStats
	err := withFile(path, func(f io.Reader) (err error) {
		stats, err = s.ParseLint(f, path)
		return err
	})
	return stats, err
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path) //nolint:gosec // path is from the input argument
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}
	defer func() { _ = f.Close() }()

	return fn(f)
}
