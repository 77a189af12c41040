package badge

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chmouel/go-genbadge/internal/model"
)

func TestBadge_String(t *testing.T) {
	b := Badge{LeftText: "verytring", RightText: "1XYZ", Color: Green}
	if got := b.String(); got != "[ verytring | 1XYZ ]  color: green" {
		t.Errorf("unexpected representation %q", got)
	}
}

func TestBadge_SaveSVG(t *testing.T) {
	r := &LocalRenderer{Engine: fixedEngine()}
	b := Badge{LeftText: "verytring", RightText: "1XYZ", Color: Green}

	path := filepath.Join(t.TempDir(), "nested", "dir", "badge.svg")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("stale content that is longer than nothing"), 0o644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	if err := b.SaveSVG(context.Background(), path, r); err != nil {
		t.Fatalf("SaveSVG failed: %v", err)
	}

	content, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("Failed to read badge file: %v", err)
	}
	if string(content) != expectedSVG {
		t.Errorf("badge file does not match rendered SVG:\n%s", content)
	}
}

func TestBadge_SaveSVGCreatesDirectories(t *testing.T) {
	r := &LocalRenderer{Engine: fixedEngine()}
	path := filepath.Join(t.TempDir(), "a", "b", "badge.svg")

	if err := (Badge{LeftText: "x", RightText: "y", Color: Red}).SaveSVG(context.Background(), path, r); err != nil {
		t.Fatalf("SaveSVG failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("badge file was not created: %v", err)
	}
}

func TestBadge_WriteSVG(t *testing.T) {
	var buf bytes.Buffer
	r := &LocalRenderer{Engine: fixedEngine()}
	b := Badge{LeftText: "verytring", RightText: "1XYZ", Color: Green}

	if err := b.WriteSVG(context.Background(), &buf, r); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	if buf.String() != expectedSVG {
		t.Errorf("unexpected SVG:\n%s", buf.String())
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{BrightGreen, "#4c1"},
		{Green, "#97ca00"},
		{YellowGreen, "#a4a61d"},
		{Yellow, "#dfb317"},
		{Orange, "#fe7d37"},
		{Red, "#e05d44"},
		{LightGrey, "#9f9f9f"},
		{"magenta", "magenta"},
		{"#abcdef", "#abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexColor(tt.name); got != tt.want {
				t.Errorf("HexColor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestPercentageColor(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, Red},
		{49.99, Red},
		{50, Orange},
		{74.9, Orange},
		{75, Green},
		{89.99, Green},
		{90, BrightGreen},
		{100, BrightGreen},
	}
	for _, tt := range tests {
		if got := PercentageColor(tt.percent); got != tt.want {
			t.Errorf("PercentageColor(%v) = %s, want %s", tt.percent, got, tt.want)
		}
	}
}

func TestLintColor(t *testing.T) {
	tests := []struct {
		stats model.LintStats
		want  string
	}{
		{model.LintStats{NbCritical: 1, NbWarning: 4, NbInfo: 3}, Red},
		{model.LintStats{NbWarning: 1, NbInfo: 3}, Orange},
		{model.LintStats{NbInfo: 3}, Green},
		{model.LintStats{}, BrightGreen},
	}
	for _, tt := range tests {
		if got := LintColor(tt.stats); got != tt.want {
			t.Errorf("LintColor(%+v) = %s, want %s", tt.stats, got, tt.want)
		}
	}
}

func TestReportBadges(t *testing.T) {
	tests := []struct {
		name  string
		badge Badge
		want  Badge
	}{
		{
			name:  "tests",
			badge: TestsBadge(model.TestStats{Runned: 6, Skipped: 1, Failed: 2, Errors: 1}, TestsLabel),
			want:  Badge{LeftText: "tests", RightText: "3/6", Color: Orange},
		},
		{
			name:  "no tests",
			badge: TestsBadge(model.TestStats{}, TestsLabel),
			want:  Badge{LeftText: "tests", RightText: "0/0", Color: BrightGreen},
		},
		{
			name:  "coverage",
			badge: CoverageBadge(model.CoverageStats{BranchesCovered: 1, BranchesValid: 18, LinesCovered: 13, LinesValid: 73}, CoverageLabel),
			want:  Badge{LeftText: "coverage", RightText: "15.38%", Color: Red},
		},
		{
			name:  "full coverage",
			badge: CoverageBadge(model.CoverageStats{LinesCovered: 10, LinesValid: 10}, "cov"),
			want:  Badge{LeftText: "cov", RightText: "100.00%", Color: BrightGreen},
		},
		{
			name:  "flake8",
			badge: LintBadge(model.LintStats{NbCritical: 6, NbWarning: 9, NbInfo: 5}, Flake8Label),
			want:  Badge{LeftText: "flake8", RightText: "6 C, 9 W, 5 I", Color: Red},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.badge != tt.want {
				t.Errorf("got %v, want %v", tt.badge, tt.want)
			}
		})
	}
}

func TestRemoteRenderer(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte("<svg>remote</svg>"))
	}))
	defer srv.Close()

	r := NewRemoteRenderer(srv.URL)
	svg, err := (Badge{LeftText: "tests", RightText: "3/6", Color: Orange}).SVG(context.Background(), r)
	if err != nil {
		t.Fatalf("remote render failed: %v", err)
	}
	if svg != "<svg>remote</svg>" {
		t.Errorf("unexpected body %q", svg)
	}
	if gotPath != "/badge/tests-3%2F6-fe7d37.svg" {
		t.Errorf("unexpected request path %q", gotPath)
	}
}

func TestRemoteRenderer_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRemoteRenderer(srv.URL).Render(context.Background(), Badge{LeftText: "a", RightText: "b", Color: Red})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestRemoteRenderer_URLEscaping(t *testing.T) {
	r := NewRemoteRenderer("https://img.shields.io/")
	got := r.URL(Badge{LeftText: "my-lib_x", RightText: "6 C, 9 W", Color: "#abcdef", LabelColor: Red})
	want := "https://img.shields.io/badge/my--lib__x-6%20C%2C%209%20W-abcdef.svg?labelColor=e05d44"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestNewRenderer(t *testing.T) {
	if _, err := NewRenderer(ModeLocal, nil, ""); err == nil {
		t.Error("local mode without engine should fail")
	}
	r, err := NewRenderer(ModeLocal, fixedEngine(), "")
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if _, ok := r.(*LocalRenderer); !ok {
		t.Errorf("expected LocalRenderer, got %T", r)
	}
	r, err = NewRenderer(ModeRemote, nil, "")
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if rr, ok := r.(*RemoteRenderer); !ok || rr.BaseURL != DefaultShieldsURL {
		t.Errorf("expected RemoteRenderer for shields.io, got %#v", r)
	}
	if _, err := ParseMode("carrier-pigeon"); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestShieldsJSON(t *testing.T) {
	got := ShieldsJSON(Badge{LeftText: "tests", RightText: "3/6", Color: Orange})
	want := "{\n  \"schemaVersion\": 1,\n  \"label\": \"tests\",\n  \"message\": \"3/6\",\n  \"color\": \"orange\"\n}\n"
	if got != want {
		t.Errorf("ShieldsJSON() = %q, want %q", got, want)
	}
}
