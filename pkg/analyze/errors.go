package analyze

import "fmt"

// ErrorKind classifies recoverable per-feature analysis failures.
type ErrorKind int

const (
	// GeometryExtraction means a feature's source geometry could not be
	// read or classified. The affected field degrades to a default.
	GeometryExtraction ErrorKind = iota
	// UnsupportedConfig means the feature uses a configuration the
	// exporter does not translate (mixed edge sets, unresolved extents).
	UnsupportedConfig
)

func (k ErrorKind) String() string {
	switch k {
	case GeometryExtraction:
		return "geometry-extraction"
	case UnsupportedConfig:
		return "unsupported-config"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// RecoverableError is a non-fatal analysis finding. The surrounding run
// records it and continues; it never aborts a compilation.
type RecoverableError struct {
	Kind ErrorKind
	Msg  string
}

func (e *RecoverableError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func extractionErr(format string, args ...interface{}) *RecoverableError {
	return &RecoverableError{Kind: GeometryExtraction, Msg: fmt.Sprintf(format, args...)}
}

func unsupportedErr(format string, args ...interface{}) *RecoverableError {
	return &RecoverableError{Kind: UnsupportedConfig, Msg: fmt.Sprintf(format, args...)}
}
