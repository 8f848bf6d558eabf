package taskcfg

// Severity classifies validation problems found during resolution.
// Severities are ordered; a run's status only ever escalates.
type Severity uint8

const (
	// SeverityOK indicates no problems so far.
	SeverityOK Severity = iota

	// SeverityWarning indicates a recoverable compatibility or style
	// issue; resolution proceeds with a best-effort interpretation.
	SeverityWarning

	// SeverityError indicates a structurally wrong field or entry that
	// was dropped; the rest of the document still resolves.
	SeverityError

	// SeverityFatal indicates input malformed enough that the affected
	// document or entry cannot be trusted.
	SeverityFatal
)

// String returns a human-readable name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ValidationStatus accumulates the worst severity seen during one
// resolution run. The zero value is ready to use and reports SeverityOK.
type ValidationStatus struct {
	state Severity
}

// NewValidationStatus returns a status reporting SeverityOK.
func NewValidationStatus() *ValidationStatus {
	return &ValidationStatus{}
}

// State returns the current severity.
func (v *ValidationStatus) State() Severity {
	return v.state
}

// Update escalates the status to sev if it is worse than the current
// state. The status never de-escalates.
func (v *ValidationStatus) Update(sev Severity) {
	if sev > v.state {
		v.state = sev
	}
}

// Merge folds another status into this one.
func (v *ValidationStatus) Merge(other *ValidationStatus) {
	if other != nil {
		v.Update(other.state)
	}
}

// IsOK reports whether no problems were recorded.
func (v *ValidationStatus) IsOK() bool {
	return v.state == SeverityOK
}

// IsFatal reports whether a fatal problem was recorded.
func (v *ValidationStatus) IsFatal() bool {
	return v.state == SeverityFatal
}

// Logger receives human-readable diagnostics during resolution. The
// ValidationStatus is the authoritative machine-checkable signal; the
// log is advisory.
type Logger interface {
	Log(message string)
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(message string)

// Log implements Logger.
func (f LoggerFunc) Log(message string) {
	f(message)
}

// discardLogger drops all messages.
type discardLogger struct{}

func (discardLogger) Log(string) {}
