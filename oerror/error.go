package oerror

import "fmt"

// Kind classifies an Error.
type Kind uint8

const (
	// KindInternal is an invariant violation inside the simulation.
	KindInternal Kind = iota
	// KindMissingDependency is a collaborator that was not supplied at construction.
	KindMissingDependency
	// KindInvalidQuery is a physics probe with degenerate parameters.
	KindInvalidQuery
	// KindConfigurationOutOfRange is a tunable outside of the range it can be used with.
	KindConfigurationOutOfRange
)

func (k Kind) String() string {
	switch k {
	case KindMissingDependency:
		return "missing dependency"
	case KindInvalidQuery:
		return "invalid query"
	case KindConfigurationOutOfRange:
		return "configuration out of range"
	default:
		return "internal"
	}
}

var (
	ErrMissingDependency       = &Error{Kind: KindMissingDependency}
	ErrInvalidQuery            = &Error{Kind: KindInvalidQuery}
	ErrConfigurationOutOfRange = &Error{Kind: KindConfigurationOutOfRange}
)

type Error struct {
	Kind Kind
	Err  string
}

// New returns an internal error with the formatted message.
func New(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Err: fmt.Sprintf(format, args...)}
}

// Newf returns an error of the given kind with the formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err
}

// Is reports whether target is an Error of the same kind, so the sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
