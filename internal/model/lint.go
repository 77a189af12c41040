package model

import (
	"fmt"
	"strings"
)

// Severity is the flake8-html ordinal severity of a diagnostic code.
type Severity int

const (
	SeverityCritical Severity = 1
	SeverityWarning  Severity = 2
	SeverityInfo     Severity = 3
)

// Valid reports whether s is one of the three known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// SeverityClassifier resolves the severity of a diagnostic code such as F401.
type SeverityClassifier interface {
	Severity(code string) (Severity, bool)
}

// PrefixRule maps every code starting with Prefix to Severity.
type PrefixRule struct {
	Prefix   string
	Severity Severity
}

// PrefixClassifier resolves severities from an ordered list of prefixes; the
// first matching prefix wins. Codes matching no prefix get Default, unless
// Default is zero in which case they are unknown.
type PrefixClassifier struct {
	Rules   []PrefixRule
	Default Severity
}

// DefaultClassifier returns the flake8-html severity table.
func DefaultClassifier() *PrefixClassifier {
	return &PrefixClassifier{
		Rules: []PrefixRule{
			{"E9", SeverityCritical},
			{"F", SeverityCritical},
			{"E", SeverityWarning},
			{"W", SeverityWarning},
			{"C", SeverityWarning},
			{"D", SeverityInfo},
		},
		Default: SeverityInfo,
	}
}

// Severity returns the severity of the first rule whose prefix matches code,
// falling back to Default. ok is false when nothing applies.
func (c *PrefixClassifier) Severity(code string) (Severity, bool) {
	for _, r := range c.Rules {
		if strings.HasPrefix(code, r.Prefix) {
			return r.Severity, true
		}
	}
	if c.Default != 0 {
		return c.Default, true
	}
	return 0, false
}

// LintStats contains the number of flake8 violations per severity.
type LintStats struct {
	NbCritical int `json:"nbCritical"`
	NbWarning  int `json:"nbWarning"`
	NbInfo     int `json:"nbInfo"`
}

// Add accumulates nb violations of the given code.
func (s *LintStats) Add(nb int, code string, classifier SeverityClassifier) error {
	sev, ok := classifier.Severity(code)
	if !ok {
		return &UnknownSeverityError{Code: code}
	}
	switch sev {
	case SeverityCritical:
		s.NbCritical += nb
	case SeverityWarning:
		s.NbWarning += nb
	case SeverityInfo:
		s.NbInfo += nb
	default:
		return &UnknownSeverityError{Code: code, Severity: sev}
	}
	return nil
}

// NbTotal is the number of violations across all severities.
func (s LintStats) NbTotal() int {
	return s.NbCritical + s.NbWarning + s.NbInfo
}
