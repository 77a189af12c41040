package badge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultShieldsURL is the public shields.io service.
const DefaultShieldsURL = "https://img.shields.io"

const maxRemoteBadgeSize = 1 << 20

// RemoteRenderer asks a shields.io server to render badges. Its output may
// differ slightly from LocalRenderer.
type RemoteRenderer struct {
	BaseURL string
	Client  *http.Client
}

// NewRemoteRenderer returns a renderer for the shields.io instance at baseURL.
func NewRemoteRenderer(baseURL string) *RemoteRenderer {
	if baseURL == "" {
		baseURL = DefaultShieldsURL
	}
	return &RemoteRenderer{BaseURL: baseURL, Client: &http.Client{Timeout: 30 * time.Second}}
}

// URL returns the static badge URL for b.
func (r *RemoteRenderer) URL(b Badge) string {
	color := strings.TrimPrefix(HexColor(b.Color), "#")
	u := fmt.Sprintf("%s/badge/%s-%s-%s.svg",
		strings.TrimSuffix(r.BaseURL, "/"),
		shieldsEscape(b.LeftText), shieldsEscape(b.RightText), shieldsEscape(color))
	if b.LabelColor != "" {
		u += "?labelColor=" + url.QueryEscape(strings.TrimPrefix(HexColor(b.LabelColor), "#"))
	}
	return u
}

// shieldsEscape escapes the dash and underscore separators of the static
// badge path before URL encoding.
func shieldsEscape(s string) string {
	s = strings.ReplaceAll(s, "-", "--")
	s = strings.ReplaceAll(s, "_", "__")
	return url.PathEscape(s)
}

// Render implements Renderer.
func (r *RemoteRenderer) Render(ctx context.Context, b Badge) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(b), nil)
	if err != nil {
		return "", fmt.Errorf("shields: build request: %w", err)
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("shields: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBadgeSize))
	if err != nil {
		return "", fmt.Errorf("shields: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shields: unexpected status %d", resp.StatusCode)
	}
	return string(body), nil
}

// NewRenderer returns the renderer for mode. The engine is only used in
// local mode and shieldsURL only in remote mode.
func NewRenderer(mode Mode, engine *Engine, shieldsURL string) (Renderer, error) {
	switch mode {
	case ModeLocal, "":
		if engine == nil {
			return nil, fmt.Errorf("local rendering needs a layout engine")
		}
		return &LocalRenderer{Engine: engine}, nil
	case ModeRemote:
		return NewRemoteRenderer(shieldsURL), nil
	}
	return nil, fmt.Errorf("unknown rendering mode %q", mode)
}
