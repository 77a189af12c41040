package parser

import (
	"fmt"
	"io"

	"github.com/jstemmer/go-junit-report/v2/junit"

	"github.com/chmouel/go-genbadge/internal/model"
)

// JUnitParser reads JUnit XML reports with either a <testsuites> or a single
// <testsuite> root.
type JUnitParser struct{}

// ParseTests implements TestReportParser.
func (p *JUnitParser) ParseTests(r io.Reader, source string) (*model.TestStats, error) {
	suites, err := decodeJUnit(r, source)
	if err != nil {
		return nil, err
	}
	stats := countOutcomes(suites)
	return &stats, nil
}

// testsuite adds the child suites some tools (pytest, Ant) nest inside a
// <testsuite>, which junit.Testsuite does not model.
type testsuite struct {
	junit.Testsuite
	Suites []testsuite `xml:"testsuite"`
}

type testsuites struct {
	Suites []testsuite `xml:"testsuite"`
}

func decodeJUnit(r io.Reader, source string) (*testsuites, error) {
	dec := newDecoder(r)
	root, err := rootElement(dec, source)
	if err != nil {
		return nil, err
	}

	var suites testsuites
	switch root.Name.Local {
	case "testsuites":
		if err := dec.DecodeElement(&suites, &root); err != nil {
			return nil, &ParseError{Source: source, Err: err}
		}
	case "testsuite":
		var suite testsuite
		if err := dec.DecodeElement(&suite, &root); err != nil {
			return nil, &ParseError{Source: source, Err: err}
		}
		suites.Suites = []testsuite{suite}
	default:
		return nil, &ParseError{Source: source, Err: fmt.Errorf("unexpected root element <%s>", root.Name.Local)}
	}
	return &suites, nil
}

// countOutcomes gives every testcase exactly one outcome: error, failure,
// skipped or success, in that precedence. Nested suites are flattened.
func countOutcomes(suites *testsuites) model.TestStats {
	var stats model.TestStats
	for _, suite := range suites.Suites {
		countSuite(&stats, suite)
	}
	return stats
}

func countSuite(stats *model.TestStats, suite testsuite) {
	for _, tc := range suite.Testcases {
		switch {
		case tc.Error != nil:
			stats.Errors++
			continue
		case tc.Failure != nil:
			stats.Failed++
		case tc.Skipped != nil:
			stats.Skipped++
		}
		stats.Runned++
	}
	for _, child := range suite.Suites {
		countSuite(stats, child)
	}
}
