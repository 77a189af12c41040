package badge

import (
	"encoding/xml"
	"reflect"
	"sort"
	"strings"
	"testing"
	"text/template/parse"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

// fixedEngine measures every glyph as 7 pixels wide.
func fixedEngine() *Engine {
	return NewEngine(basicfont.Face7x13)
}

func TestRoundUpToOdd(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{4, 5},
		{5, 5},
		{50, 51},
		{51, 51},
	}
	for _, tt := range tests {
		if got := RoundUpToOdd(tt.in); got != tt.want {
			t.Errorf("RoundUpToOdd(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	g := fixedEngine().Layout("verytring", "1XYZ", false)

	assert.Equal(t, 63, g.Left.TextWidth)
	assert.Equal(t, 73, g.LeftWidth)
	assert.Equal(t, 375.0, g.Left.X)
	assert.Equal(t, 630, g.Left.TextLength)
	assert.Equal(t, 150, g.Left.ShadowMargin)
	assert.Equal(t, 140, g.Left.TextMargin)

	assert.Equal(t, 29, g.Right.TextWidth)
	assert.Equal(t, 39, g.RightWidth)
	assert.Equal(t, 915.0, g.Right.X)
	assert.Equal(t, 290, g.Right.TextLength)

	assert.Equal(t, 112, g.TotalWidth)
}

func TestLayout_NoLabel(t *testing.T) {
	g := fixedEngine().Layout("", "passing", false)

	assert.Equal(t, 0, g.LeftWidth)
	assert.Equal(t, 1, g.Left.TextWidth)
	assert.Equal(t, 65.0, g.Left.X)
	assert.Equal(t, 59, g.RightWidth)
	assert.Equal(t, 295.0, g.Right.X)
	assert.Equal(t, 59, g.TotalWidth)
}

func TestLayout_LabelColorForcesLabel(t *testing.T) {
	g := fixedEngine().Layout("", "passing", true)

	assert.Equal(t, 11, g.LeftWidth)
	assert.Equal(t, 10*(10+24.5+5), g.Right.X)
	assert.Equal(t, 70, g.TotalWidth)
}

func TestLayout_EmptyMessage(t *testing.T) {
	g := fixedEngine().Layout("tests", "", false)

	// without a message the value margin is not reduced by one
	assert.Equal(t, 45, g.LeftWidth)
	assert.Equal(t, 10*(45+0.5+5), g.Right.X)
	assert.Equal(t, 11, g.RightWidth)
}

const expectedSVG = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="112" height="20" role="img" aria-label="verytring: 1XYZ">
	<title>verytring: 1XYZ</title>
	<linearGradient id="s" x2="0" y2="100%">
		<stop offset="0" stop-color="#bbb" stop-opacity=".1"/>
		<stop offset="1" stop-opacity=".1"/>
	</linearGradient>
	<clipPath id="r">
		<rect width="112" height="20" rx="3" fill="#fff"/>
	</clipPath>
	<g clip-path="url(#r)">
		<rect width="73" height="20" fill="#555"/>
		<rect x="73" width="39" height="20" fill="#97ca00"/>
		<rect width="112" height="20" fill="url(#s)"/>
	</g>
	<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" text-rendering="geometricPrecision" font-size="110">
		<text aria-hidden="true" x="375.0" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="630">verytring</text>
		<text x="375.0" y="140" transform="scale(.1)" fill="#fff" textLength="630">verytring</text>
		<text aria-hidden="true" x="915.0" y="150" fill="#010101" fill-opacity=".3" transform="scale(.1)" textLength="290">1XYZ</text>
		<text x="915.0" y="140" transform="scale(.1)" fill="#fff" textLength="290">1XYZ</text>
	</g>
</svg>
`

func TestRender(t *testing.T) {
	svg, err := fixedEngine().Render("verytring", "1XYZ", Green, "")
	require.NoError(t, err)
	assert.Equal(t, expectedSVG, svg)
}

func TestRender_EscapesText(t *testing.T) {
	svg, err := fixedEngine().Render(`a<b`, `"x" & y`, "#123456", "")
	require.NoError(t, err)

	assert.Contains(t, svg, "a&lt;b")
	assert.Contains(t, svg, "&#34;x&#34; &amp; y")
	assert.Contains(t, svg, `fill="#123456"`)
	assert.NotContains(t, svg, "{{")
	assert.NotContains(t, svg, "<no value>")

	var doc struct{}
	require.NoError(t, xml.Unmarshal([]byte(svg), &doc), "rendered badge must be well-formed XML")
}

func TestRender_NoLabelTitle(t *testing.T) {
	svg, err := fixedEngine().Render("", "passing", BrightGreen, "")
	require.NoError(t, err)
	assert.Contains(t, svg, "<title>passing</title>")
	assert.Contains(t, svg, `<rect width="0" height="20" fill="#555"/>`)
}

// templateFields collects the fields referenced by the badge template.
func templateFields(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		for _, c := range n.Nodes {
			templateFields(c, seen)
		}
	case *parse.ActionNode:
		templateFields(n.Pipe, seen)
	case *parse.PipeNode:
		for _, c := range n.Cmds {
			templateFields(c, seen)
		}
	case *parse.CommandNode:
		for _, a := range n.Args {
			templateFields(a, seen)
		}
	case *parse.FieldNode:
		seen[strings.Join(n.Ident, ".")] = true
	}
}

func TestTemplateFields(t *testing.T) {
	seen := make(map[string]bool)
	templateFields(badgeTemplate.Tree.Root, seen)

	var used []string
	for f := range seen {
		used = append(used, f)
	}
	sort.Strings(used)

	var declared []string
	typ := reflect.TypeOf(templateData{})
	for i := 0; i < typ.NumField(); i++ {
		declared = append(declared, typ.Field(i).Name)
	}
	sort.Strings(declared)

	assert.Equal(t, declared, used, "template placeholders and templateData must match exactly")
}

type renderedBadge struct {
	Width  int `xml:"width,attr"`
	Groups []struct {
		Rects []struct {
			Width int `xml:"width,attr"`
		} `xml:"rect"`
	} `xml:"g"`
}

func TestProperty_WidthsAddUp(t *testing.T) {
	engines := map[string]*Engine{"fixed": fixedEngine()}
	bundled, err := NewEngineFrom(BundledFont{})
	require.NoError(t, err)
	engines["bundled"] = bundled

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			properties := gopter.NewProperties(nil)

			properties.Property("left and right widths add up to the total", prop.ForAll(
				func(label, message, color string) bool {
					svg, err := engine.Render(label, message, color, "")
					if err != nil {
						return false
					}
					var doc renderedBadge
					if err := xml.Unmarshal([]byte(svg), &doc); err != nil {
						return false
					}
					rects := doc.Groups[0].Rects
					return len(rects) == 3 && rects[0].Width+rects[1].Width == doc.Width && rects[2].Width == doc.Width
				},
				gen.AlphaString(), gen.AnyString(), gen.OneConstOf(Red, Orange, Green, BrightGreen, "#abcdef", "magenta"),
			))

			properties.Property("text widths are odd", prop.ForAll(
				func(s string) bool {
					return engine.TextWidth(s)%2 == 1
				},
				gen.AnyString(),
			))

			properties.TestingRun(t, gopter.ConsoleReporter(false))
		})
	}
}
