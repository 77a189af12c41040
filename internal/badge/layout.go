package badge

import (
	"golang.org/x/image/font"
)

// Layout constants of the shields.io flat badge. Logos are not supported,
// so the logo width is always zero.
const (
	horizPadding   = 5
	verticalMargin = 0
	logoWidth      = 0

	// text is laid out in a 10x scaled coordinate space, see scale(.1)
	// in the template
	scale = 10
)

// Segment is the geometry of one half of a badge.
type Segment struct {
	Text         string
	X            float64 // center of the text, scaled
	ShadowMargin int     // baseline of the shadow text, scaled
	TextMargin   int     // baseline of the text, scaled
	TextWidth    int     // width of the text in pixels
	TextLength   int     // width of the text, scaled
}

// Geometry is the complete layout of a two-segment badge.
type Geometry struct {
	TotalWidth int
	LeftWidth  int
	RightWidth int
	Left       Segment
	Right      Segment
}

// Engine computes badge layouts the way the shields.io badge-maker does,
// measuring text with a real font face.
type Engine struct {
	face font.Face
}

// NewEngine returns an engine measuring text with face.
func NewEngine(face font.Face) *Engine {
	return &Engine{face: face}
}

// NewEngineFrom resolves a face from sources, see ResolveFace.
func NewEngineFrom(sources ...FontSource) (*Engine, error) {
	face, err := ResolveFace(FontSize, sources...)
	if err != nil {
		return nil, err
	}
	return NewEngine(face), nil
}

// RoundUpToOdd increases even values by one, which improves the chances of
// pixel grid alignment.
func RoundUpToOdd(v int) int {
	if v%2 == 0 {
		return v + 1
	}
	return v
}

// TextWidth returns the preferred width of s in pixels. It is always odd.
func (e *Engine) TextWidth(s string) int {
	return RoundUpToOdd(font.MeasureString(e.face, s).Ceil())
}

func (e *Engine) segment(leftMargin int, content string) Segment {
	w := e.TextWidth(content)
	return Segment{
		Text:         content,
		X:            scale * (float64(leftMargin) + 0.5*float64(w) + horizPadding),
		ShadowMargin: 150 + verticalMargin,
		TextMargin:   140 + verticalMargin,
		TextWidth:    w,
		TextLength:   scale * w,
	}
}

// Layout computes the badge geometry. The label segment is omitted when the
// label is empty, unless hasLabelColor forces it.
func (e *Engine) Layout(label, message string, hasLabelColor bool) Geometry {
	hasLabel := label != "" || hasLabelColor

	left := e.segment(logoWidth+1, label)
	leftWidth := 0
	if hasLabel {
		leftWidth = left.TextWidth + 2*horizPadding + logoWidth
	}

	msgMargin := leftWidth
	if message != "" {
		msgMargin--
	}
	if !hasLabel {
		msgMargin++
	}

	right := e.segment(msgMargin, message)
	rightWidth := right.TextWidth + 2*horizPadding

	return Geometry{
		TotalWidth: leftWidth + rightWidth,
		LeftWidth:  leftWidth,
		RightWidth: rightWidth,
		Left:       left,
		Right:      right,
	}
}

// Render returns the SVG of a badge. color and labelColor are palette names
// or literal colors; an empty labelColor uses DefaultLabelColor.
func (e *Engine) Render(label, message, color, labelColor string) (string, error) {
	g := e.Layout(label, message, labelColor != "")
	if labelColor == "" {
		labelColor = DefaultLabelColor
	}

	title := message
	if label != "" {
		title = label + ": " + message
	}

	return executeTemplate(templateData{
		Title:      title,
		LabelColor: HexColor(labelColor),
		Color:      HexColor(color),

		TotalWidth: g.TotalWidth,
		LeftWidth:  g.LeftWidth,
		RightWidth: g.RightWidth,

		LeftX:            g.Left.X,
		LeftShadowMargin: g.Left.ShadowMargin,
		LeftTextMargin:   g.Left.TextMargin,
		LeftTextLength:   g.Left.TextLength,
		LeftText:         g.Left.Text,

		RightX:            g.Right.X,
		RightShadowMargin: g.Right.ShadowMargin,
		RightTextMargin:   g.Right.TextMargin,
		RightTextLength:   g.Right.TextLength,
		RightText:         g.Right.Text,
	})
}
