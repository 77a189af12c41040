// Package summary renders the human-readable description of parsed reports.
package summary

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/chmouel/go-genbadge/internal/model"
)

//go:embed assets/*
var assets embed.FS

var templates = template.Must(template.New("summary").Option("missingkey=error").ParseFS(assets, "assets/*.tmpl"))

type templateData struct {
	Source string
	Stats  any
}

// Tests writes the summary of test results read from source.
func Tests(w io.Writer, source string, stats model.TestStats) error {
	return execute(w, "tests.tmpl", templateData{Source: source, Stats: stats})
}

// Coverage writes the summary of coverage results read from source.
func Coverage(w io.Writer, source string, stats model.CoverageStats) error {
	return execute(w, "coverage.tmpl", templateData{Source: source, Stats: stats})
}

// Flake8 writes the summary of flake8 statistics read from source.
func Flake8(w io.Writer, source string, stats model.LintStats) error {
	return execute(w, "flake8.tmpl", templateData{Source: source, Stats: stats})
}

func execute(w io.Writer, name string, td templateData) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, td); err != nil {
		return fmt.Errorf("executing %s: %w", name, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
