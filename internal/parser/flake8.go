package parser

import (
	"bufio"
	"io"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/chmouel/go-genbadge/internal/model"
)

// maxLineSize bounds a single statistics line; longer lines fail the scan.
const maxLineSize = 1 << 20

var statsLineRegex = regexp.MustCompile(`^([0-9]+)\s+([A-Z0-9]+)\s.*`)

// Flake8Parser reads the output of `flake8 --statistics`, one line per
// violation code: "<count> <CODE> <description>".
type Flake8Parser struct {
	classifier model.SeverityClassifier
	logger     *slog.Logger
}

// Flake8Option configures a Flake8Parser.
type Flake8Option func(*Flake8Parser)

// WithClassifier sets the table used to resolve code severities.
func WithClassifier(c model.SeverityClassifier) Flake8Option {
	return func(p *Flake8Parser) { p.classifier = c }
}

// WithLogger sets the logger receiving malformed line warnings.
func WithLogger(l *slog.Logger) Flake8Option {
	return func(p *Flake8Parser) { p.logger = l }
}

// NewFlake8Parser returns a parser using the flake8-html severity table
// unless configured otherwise.
func NewFlake8Parser(opts ...Flake8Option) *Flake8Parser {
	p := &Flake8Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseLint implements LintReportParser. Lines that do not match are logged
// and skipped.
func (p *Flake8Parser) ParseLint(r io.Reader, source string) (*model.LintStats, error) {
	classifier := p.classifier
	if classifier == nil {
		classifier = model.DefaultClassifier()
	}
	logger := p.logger
	if logger == nil {
		logger = slog.Default()
	}

	stats := &model.LintStats{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		m := statsLineRegex.FindStringSubmatch(line)
		var nb int
		if m != nil {
			var err error
			// an out of range count is as malformed as a non matching line
			nb, err = strconv.Atoi(m[1])
			if err != nil {
				m = nil
			}
		}
		if m == nil {
			w := &MalformedLineWarning{Source: source, Line: lineNo, Text: truncate(line, 200)}
			logger.Warn("ignoring flake8 statistics line", "source", source, "line", lineNo, "warning", w)
			continue
		}
		if err := stats.Add(nb, m[2], classifier); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return stats, nil
}
