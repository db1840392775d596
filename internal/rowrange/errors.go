package rowrange

import "fmt"

// ErrorKind identifies why a range spec was rejected.
type ErrorKind string

const (
	// InvalidRangeFormat means a token is not "N" or "N-M" with N, M >= 1.
	InvalidRangeFormat ErrorKind = "invalid_range_format"

	// BackwardsRange means a token "N-M" has N > M.
	BackwardsRange ErrorKind = "backwards_range"
)

// ParseError reports the first token of a spec that failed to parse.
// Value is the token as the user typed it, minus surrounding whitespace.
type ParseError struct {
	Kind  ErrorKind
	Value string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case InvalidRangeFormat:
		return fmt.Sprintf("invalid range format: %q", e.Value)
	case BackwardsRange:
		return fmt.Sprintf("backwards range: %q", e.Value)
	default:
		return fmt.Sprintf("range parse error (%s): %q", e.Kind, e.Value)
	}
}
