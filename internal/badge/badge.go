// Package badge renders shields.io-style SVG status badges.
package badge

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Badge is a two-segment status badge: a label on the left and a value on
// the right, filled with Color.
type Badge struct {
	LeftText  string `json:"label"`
	RightText string `json:"message"`
	Color     string `json:"color"`

	// LabelColor overrides the label fill; it also forces the label segment
	// when LeftText is empty.
	LabelColor string `json:"labelColor,omitempty"`
}

func (b Badge) String() string {
	return fmt.Sprintf("[ %s | %s ]  color: %s", b.LeftText, b.RightText, b.Color)
}

// Renderer turns a badge into an SVG document.
type Renderer interface {
	Render(ctx context.Context, b Badge) (string, error)
}

// Mode selects a Renderer.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// ParseMode parses a rendering mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeRemote:
		return Mode(s), nil
	case "":
		return ModeLocal, nil
	}
	return "", fmt.Errorf("unknown rendering mode %q (want %q or %q)", s, ModeLocal, ModeRemote)
}

// LocalRenderer renders badges in-process with an Engine.
type LocalRenderer struct {
	Engine *Engine
}

// Render implements Renderer.
func (r *LocalRenderer) Render(_ context.Context, b Badge) (string, error) {
	return r.Engine.Render(b.LeftText, b.RightText, b.Color, b.LabelColor)
}

// SVG renders the badge with r.
func (b Badge) SVG(ctx context.Context, r Renderer) (string, error) {
	return r.Render(ctx, b)
}

// WriteSVG renders the badge and writes it to w. The caller owns w.
func (b Badge) WriteSVG(ctx context.Context, w io.Writer, r Renderer) error {
	svg, err := b.SVG(ctx, r)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, svg); err != nil {
		return fmt.Errorf("writing badge: %w", err)
	}
	return nil
}

// SaveSVG renders the badge and writes it to path, creating parent
// directories and overwriting any existing file.
func (b Badge) SaveSVG(ctx context.Context, path string, r Renderer) error {
	svg, err := b.SVG(ctx, r)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: output directory should be readable
			return fmt.Errorf("creating badge directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil { //nolint:gosec // G306: Badge should be readable
		return fmt.Errorf("writing badge file: %w", err)
	}
	return nil
}
