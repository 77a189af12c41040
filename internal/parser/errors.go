package parser

import "fmt"

// ParseError reports a report whose structure cannot be understood.
type ParseError struct {
	Source string
	Attr   string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "malformed report"
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Attr != "" {
		msg += fmt.Sprintf(": attribute %q", e.Attr)
		if e.Value != "" {
			msg += fmt.Sprintf(" has invalid value %q", e.Value)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// DependencyMissingError reports a report kind with no parser configured.
type DependencyMissingError struct {
	Kind string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("no parser available for %s reports", e.Kind)
}

// MalformedLineWarning describes a report line that was ignored.
type MalformedLineWarning struct {
	Source string
	Line   int
	Text   string
}

func (w *MalformedLineWarning) Error() string {
	return fmt.Sprintf("%s:%d: line does not match template and will be ignored: %q", w.Source, w.Line, w.Text)
}
