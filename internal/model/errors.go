package model

import "fmt"

// ValidationError reports a parsed report that fails a consistency check.
type ValidationError struct {
	Source   string
	Field    string
	Computed float64
	Reported float64
	Detail   string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("inconsistent %s: computed %v, reported %v", e.Field, e.Computed, e.Reported)
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// UnknownSeverityError reports a diagnostic code that could not be classified.
type UnknownSeverityError struct {
	Code     string
	Severity Severity
}

func (e *UnknownSeverityError) Error() string {
	if e.Severity != 0 {
		return fmt.Sprintf("unknown severity %d for code %q", int(e.Severity), e.Code)
	}
	return fmt.Sprintf("no known severity for code %q", e.Code)
}
