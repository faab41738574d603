package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevWarning is for warning diagnostics.
	SevWarning Severity = iota + 1
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
