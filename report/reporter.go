package report

import (
	"fmt"
	"sync"
)

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and closing compilation notification (success/fail)
	LogLevelWarn           // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, compiler version and progress summary, closing message (DEFAULT)
)

// LogLevelFromName converts a log level name as given on the command line into
// its enumerated value.  Invalid names default to verbose.
func LogLevelFromName(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// Reporter is the compilation-wide diagnostics sink.  Diagnostics are only
// ever appended: nothing reported is retracted.
type Reporter struct {
	m        *sync.Mutex
	logLevel int

	diagnostics  []*Diagnostic
	errorCount   int
	warningCount int

	// flushed is the number of diagnostics already displayed.
	flushed int
}

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// LogLevel returns the reporter's log level.
func (r *Reporter) LogLevel() int {
	return r.logLevel
}

// ReportCompileError reports a compile error in the given file.  The returned
// diagnostic may be further decorated with notes and secondary spans.
func (r *Reporter) ReportCompileError(file string, kind Kind, span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	return r.add(&Diagnostic{
		Kind:    kind,
		IsError: true,
		File:    file,
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
	})
}

// ReportCompileWarning reports a compile warning in the given file.
func (r *Reporter) ReportCompileWarning(file string, kind Kind, span *TextSpan, msg string, args ...interface{}) *Diagnostic {
	return r.add(&Diagnostic{
		Kind:    kind,
		File:    file,
		Message: fmt.Sprintf(msg, args...),
		Span:    span,
	})
}

func (r *Reporter) add(d *Diagnostic) *Diagnostic {
	r.m.Lock()
	defer r.m.Unlock()

	r.diagnostics = append(r.diagnostics, d)
	if d.IsError {
		r.errorCount++
	} else {
		r.warningCount++
	}

	return d
}

// AnyErrors returns whether any errors have been reported.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount > 0
}

// ErrorCount returns the number of errors reported.
func (r *Reporter) ErrorCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount
}

// WarningCount returns the number of warnings reported.
func (r *Reporter) WarningCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return r.warningCount
}

// Diagnostics returns all diagnostics reported so far in report order.
func (r *Reporter) Diagnostics() []*Diagnostic {
	r.m.Lock()
	defer r.m.Unlock()

	diags := make([]*Diagnostic, len(r.diagnostics))
	copy(diags, r.diagnostics)
	return diags
}

// OfKind returns all the diagnostics of the given kind.
func (r *Reporter) OfKind(kind Kind) []*Diagnostic {
	var diags []*Diagnostic
	for _, d := range r.Diagnostics() {
		if d.Kind == kind {
			diags = append(diags, d)
		}
	}

	return diags
}

// Flush displays all diagnostics that have not yet been displayed.  Errors are
// displayed before warnings.
func (r *Reporter) Flush() {
	r.m.Lock()
	defer r.m.Unlock()

	pending := r.diagnostics[r.flushed:]
	r.flushed = len(r.diagnostics)

	if r.logLevel == LogLevelSilent {
		return
	}

	for _, d := range pending {
		if d.IsError {
			d.display()
		}
	}

	if r.logLevel < LogLevelWarn {
		return
	}

	for _, d := range pending {
		if !d.IsError {
			d.display()
		}
	}
}
