package driver

import (
	"fmt"
	"strings"
)

// DiagnosticSeverity captures script diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticLocation references a source position for diagnostics.
type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

// Diagnostic represents a structured load or evaluation diagnostic.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Message  string
	Location DiagnosticLocation
}

// DiagnosticError wraps a diagnostic for error handling.
type DiagnosticError struct {
	Diagnostic Diagnostic
}

func (e *DiagnosticError) Error() string {
	return e.Diagnostic.Message
}

// Format renders a diagnostic in path:line:column style.
func (d Diagnostic) Format() string {
	var b strings.Builder
	if d.Location.Path != "" {
		fmt.Fprintf(&b, "%s:%d:%d: ", d.Location.Path, d.Location.Line, d.Location.Column)
	}
	b.WriteString(string(d.Severity))
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}
