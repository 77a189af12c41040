package badge

import (
	"fmt"

	"github.com/chmouel/go-genbadge/internal/model"
)

// Named badge colors, as understood by shields.io.
const (
	BrightGreen = "brightgreen"
	Green       = "green"
	YellowGreen = "yellowgreen"
	Yellow      = "yellow"
	Orange      = "orange"
	Red         = "red"
	LightGrey   = "lightgrey"
)

// DefaultLabelColor is the fill of the label segment.
const DefaultLabelColor = "#555"

var palette = map[string]string{
	BrightGreen: "#4c1",
	Green:       "#97ca00",
	YellowGreen: "#a4a61d",
	Yellow:      "#dfb317",
	Orange:      "#fe7d37",
	Red:         "#e05d44",
	LightGrey:   "#9f9f9f",
}

// HexColor returns the hex code of a named color. Unknown names are returned
// unchanged so custom hex or CSS colors can be used.
func HexColor(name string) string {
	if hex, ok := palette[name]; ok {
		return hex
	}
	return name
}

// Thresholds defines the color thresholds for percentage badges. Each value
// is the exclusive upper bound of its color.
type Thresholds struct {
	Red    float64 // below Red is red
	Orange float64 // Red up to Orange is orange
	Green  float64 // Orange up to Green is green, Green+ is brightgreen
}

// DefaultThresholds returns the color thresholds used for all percentage badges.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Red:    50,
		Orange: 75,
		Green:  90,
	}
}

// Color returns the color name for a percentage between 0 and 100.
func (t Thresholds) Color(percent float64) string {
	switch {
	case percent < t.Red:
		return Red
	case percent < t.Orange:
		return Orange
	case percent < t.Green:
		return Green
	default:
		return BrightGreen
	}
}

// PercentageColor returns the color of a percentage using DefaultThresholds.
func PercentageColor(percent float64) string {
	return DefaultThresholds().Color(percent)
}

// LintColor returns the color for lint results. Unlike percentages, the
// absence of any issue is the best outcome.
func LintColor(s model.LintStats) string {
	switch {
	case s.NbCritical > 0:
		return Red
	case s.NbWarning > 0:
		return Orange
	case s.NbInfo > 0:
		return Green
	default:
		return BrightGreen
	}
}

// Default labels of the built-in badges.
const (
	TestsLabel    = "tests"
	CoverageLabel = "coverage"
	Flake8Label   = "flake8"
)

// TestsBadge returns the badge for test results, e.g. "tests | 3/6".
func TestsBadge(s model.TestStats, label string) Badge {
	return Badge{
		LeftText:  label,
		RightText: fmt.Sprintf("%d/%d", s.Success(), s.TotalWithoutSkipped()),
		Color:     PercentageColor(s.SuccessPercentage()),
	}
}

// CoverageBadge returns the badge for coverage results, using the total
// (lines and branches) coverage.
func CoverageBadge(s model.CoverageStats, label string) Badge {
	return Badge{
		LeftText:  label,
		RightText: fmt.Sprintf("%.2f%%", s.TotalCoverage()),
		Color:     PercentageColor(s.TotalCoverage()),
	}
}

// LintBadge returns the badge for flake8 results, e.g. "6 C, 9 W, 5 I".
func LintBadge(s model.LintStats, label string) Badge {
	return Badge{
		LeftText:  label,
		RightText: fmt.Sprintf("%d C, %d W, %d I", s.NbCritical, s.NbWarning, s.NbInfo),
		Color:     LintColor(s),
	}
}
