package failure

type Severity int

// caller control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

type ClassifiedError interface {
	error
	Severity() Severity
}

// IsRecoverable reports whether the caller may keep processing
// subsequent transactions after observing err.
func IsRecoverable(err ClassifiedError) bool {
	return err != nil && err.Severity() == SeverityRecoverable
}
