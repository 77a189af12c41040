package badge

import (
	"bytes"
	"embed"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

//go:embed assets/*
var assets embed.FS

const templateName = "badge-template.svg"

// badgeTemplate is parsed once; a broken template is a packaging defect.
var badgeTemplate = template.Must(
	template.New(templateName).
		Option("missingkey=error").
		Funcs(template.FuncMap{
			"xml":   escapeXML,
			"coord": formatCoord,
		}).
		ParseFS(assets, "assets/"+templateName),
)

// templateData holds every value substituted into the badge template.
type templateData struct {
	Title      string
	LabelColor string
	Color      string

	TotalWidth int
	LeftWidth  int
	RightWidth int

	LeftX            float64
	LeftShadowMargin int
	LeftTextMargin   int
	LeftTextLength   int
	LeftText         string

	RightX            float64
	RightShadowMargin int
	RightTextMargin   int
	RightTextLength   int
	RightText         string
}

func executeTemplate(td templateData) (string, error) {
	var buf bytes.Buffer
	if err := badgeTemplate.Execute(&buf, td); err != nil {
		return "", fmt.Errorf("executing badge template: %w", err)
	}
	return buf.String(), nil
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// formatCoord prints a coordinate with one decimal, e.g. 315.0.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
