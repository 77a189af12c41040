package parser

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/chmouel/go-genbadge/internal/model"
)

// rateTolerance is the largest accepted difference between a rate found in
// the report and the one recomputed from its counters.
const rateTolerance = 0.01

// CoberturaParser reads the root <coverage> element of a Cobertura XML
// report, as written by coverage.py and most other coverage tools.
type CoberturaParser struct{}

// ParseCoverage implements CoverageParser.
func (p *CoberturaParser) ParseCoverage(r io.Reader, source string) (*model.CoverageStats, error) {
	dec := newDecoder(r)
	root, err := rootElement(dec, source)
	if err != nil {
		return nil, err
	}
	if root.Name.Local != "coverage" {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("unexpected root element <%s>, want <coverage>", root.Name.Local)}
	}

	attrs := coverageAttrs{source: source, values: make(map[string]string, len(root.Attr))}
	for _, a := range root.Attr {
		attrs.values[a.Name.Local] = a.Value
	}

	stats := &model.CoverageStats{
		BranchesCovered: attrs.int("branches-covered"),
		BranchesValid:   attrs.int("branches-valid"),
		LinesCovered:    attrs.int("lines-covered"),
		LinesValid:      attrs.int("lines-valid"),
		Complexity:      attrs.float("complexity"),
	}
	branchRate := attrs.float("branch-rate")
	lineRate := attrs.float("line-rate")
	if attrs.err != nil {
		return nil, attrs.err
	}

	// the rest of the document must still be well formed
	if err := dec.Skip(); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	// coverage.py writes branch-rate="1" when --branch was set but no
	// branch exists, and 0 when branch coverage was not measured.
	stats.BranchOption = stats.BranchesValid > 0 || branchRate == 1.0

	if !isClose(stats.BranchRate(), branchRate) {
		return nil, &model.ValidationError{Source: source, Field: "branch-rate", Computed: stats.BranchRate(), Reported: branchRate}
	}
	if !isClose(stats.LineRate(), lineRate) {
		return nil, &model.ValidationError{Source: source, Field: "line-rate", Computed: stats.LineRate(), Reported: lineRate}
	}
	return stats, nil
}

func isClose(a, b float64) bool {
	return math.Abs(a-b) <= rateTolerance
}

// coverageAttrs reads typed attributes and keeps the first error.
type coverageAttrs struct {
	source string
	values map[string]string
	err    error
}

func (c *coverageAttrs) lookup(name string) (string, bool) {
	if c.err != nil {
		return "", false
	}
	v, ok := c.values[name]
	if !ok {
		c.err = &ParseError{Source: c.source, Attr: name, Err: fmt.Errorf("missing required attribute")}
	}
	return v, ok
}

func (c *coverageAttrs) int(name string) int {
	v, ok := c.lookup(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.err = &ParseError{Source: c.source, Attr: name, Value: v, Err: err}
	}
	return n
}

func (c *coverageAttrs) float(name string) float64 {
	v, ok := c.lookup(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.err = &ParseError{Source: c.source, Attr: name, Value: v, Err: err}
	}
	return f
}
