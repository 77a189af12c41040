package model

import (
	"fmt"
	"math/big"
)

// TestStats contains the counters parsed from a JUnit-style test report.
// Errors are collection/setup errors and are not part of Runned.
type TestStats struct {
	Runned  int `json:"runned"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Errors  int `json:"errors"`
}

// Success is the number of executed tests that neither failed nor were skipped.
func (s TestStats) Success() int {
	return s.Runned - s.Skipped - s.Failed
}

// TotalWithSkipped counts every test, including skipped and errored ones.
func (s TestStats) TotalWithSkipped() int {
	return s.Runned + s.Errors
}

// TotalWithoutSkipped counts every test that was expected to pass.
func (s TestStats) TotalWithoutSkipped() int {
	return s.Runned - s.Skipped + s.Errors
}

// SuccessRatio returns the success percentage as an exact rational.
// It is 100 when no test ran or when every test was skipped.
func (s TestStats) SuccessRatio() *big.Rat {
	total := s.TotalWithoutSkipped()
	if s.Runned <= 0 || total == 0 {
		return big.NewRat(100, 1)
	}
	return big.NewRat(int64(s.Success())*100, int64(total))
}

// SuccessPercentage returns Success*100/TotalWithoutSkipped, or 100 when no
// test ran.
func (s TestStats) SuccessPercentage() float64 {
	total := s.TotalWithoutSkipped()
	if s.Runned <= 0 || total == 0 {
		return 100
	}
	return float64(s.Success()*100) / float64(total)
}

// Validate checks that the counters are consistent with each other.
func (s TestStats) Validate() error {
	for _, c := range []struct {
		name string
		v    int
	}{
		{"runned", s.Runned},
		{"skipped", s.Skipped},
		{"failed", s.Failed},
		{"errors", s.Errors},
	} {
		if c.v < 0 {
			return &ValidationError{Field: c.name, Computed: float64(c.v), Reported: 0}
		}
	}

	if s.Success() < 0 {
		return &ValidationError{Field: "success", Computed: float64(s.Success()), Reported: 0, Detail: s.String()}
	}

	sum := s.Success() + s.Skipped + s.Failed + s.Errors
	if s.TotalWithSkipped() != sum {
		return &ValidationError{
			Field:    "total",
			Computed: float64(sum),
			Reported: float64(s.TotalWithSkipped()),
			Detail:   s.String(),
		}
	}
	return nil
}

// String returns the counters in a compact debug form.
func (s TestStats) String() string {
	return fmt.Sprintf("TestStats(runned=%d,skipped=%d,failed=%d,errors=%d)", s.Runned, s.Skipped, s.Failed, s.Errors)
}

// CoverageStats contains the counters parsed from a coverage report.
type CoverageStats struct {
	BranchesCovered int     `json:"branchesCovered"`
	BranchesValid   int     `json:"branchesValid"`
	LinesCovered    int     `json:"linesCovered"`
	LinesValid      int     `json:"linesValid"`
	Complexity      float64 `json:"complexity"`

	// BranchOption records whether branch coverage was measured at all.
	BranchOption bool `json:"branchOption"`
}

// BranchRate returns the fraction of covered branches.
//
// Without any branch the rate is 1 when branch coverage was measured and 0
// otherwise, which is how coverage.py itself reports both situations.
func (c CoverageStats) BranchRate() float64 {
	switch {
	case c.BranchesValid > 0:
		return float64(c.BranchesCovered) / float64(c.BranchesValid)
	case c.BranchOption:
		return 1
	default:
		return 0
	}
}

// LineRate returns the fraction of covered lines, 0 when there are none.
func (c CoverageStats) LineRate() float64 {
	if c.LinesValid > 0 {
		return float64(c.LinesCovered) / float64(c.LinesValid)
	}
	return 0
}

// TotalRate combines lines and branches the same way coverage.py's XML
// report does.
func (c CoverageStats) TotalRate() float64 {
	denom := c.LinesValid + c.BranchesValid
	if denom > 0 {
		return float64(c.LinesCovered+c.BranchesCovered) / float64(denom)
	}
	return 0
}

// BranchCoverage returns BranchRate as a percentage.
func (c CoverageStats) BranchCoverage() float64 { return c.BranchRate() * 100 }

// LineCoverage returns LineRate as a percentage.
func (c CoverageStats) LineCoverage() float64 { return c.LineRate() * 100 }

// TotalCoverage returns TotalRate as a percentage.
func (c CoverageStats) TotalCoverage() float64 { return c.TotalRate() * 100 }
