package tags

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownComponent is returned when Normalize is asked for a kind that
	// has no registered spec.
	ErrUnknownComponent = errors.New("tags: unknown component")
	// ErrTooManyArgs is returned when an invocation supplies more positional
	// arguments than the component declares.
	ErrTooManyArgs = errors.New("tags: too many positional arguments")
	// ErrTypeMismatch is wrapped by OptionTypeError.
	ErrTypeMismatch = errors.New("tags: option type mismatch")
)

// OptionTypeError reports a named argument whose value cannot be interpreted
// as the option's declared type.
type OptionTypeError struct {
	Option string
	Want   string
	Value  any
}

func (e *OptionTypeError) Error() string {
	return fmt.Sprintf("tags: option %q expects %s, got %T", e.Option, e.Want, e.Value)
}

func (e *OptionTypeError) Unwrap() error {
	return ErrTypeMismatch
}

func typeError(option, want string, value any) error {
	return &OptionTypeError{Option: option, Want: want, Value: value}
}
