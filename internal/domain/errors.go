package domain

import "fmt"

// ErrorKind classifies engine failures
type ErrorKind int

const (
	KindNotAPrefix ErrorKind = iota + 1
	KindInvalidIndex
	KindSentenceModeDisabled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotAPrefix:
		return "not a prefix"
	case KindInvalidIndex:
		return "invalid index"
	case KindSentenceModeDisabled:
		return "sentence mode disabled"
	default:
		return "unknown"
	}
}

// Error is a locally reported engine failure. State is left unchanged when one is returned.
type Error struct {
	Kind   ErrorKind
	Op     string
	Detail string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Kind.String()
	}
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
}

// Is matches any *Error of the same kind, so errors.Is works against the sentinels below
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotAPrefix           = &Error{Kind: KindNotAPrefix}
	ErrInvalidIndex         = &Error{Kind: KindInvalidIndex}
	ErrSentenceModeDisabled = &Error{Kind: KindSentenceModeDisabled}
)
