package timetable

import "errors"

// ErrInvalidSelection matches every *SelectionError.
var ErrInvalidSelection = errors.New("invalid selection")

// SelectionError rejects a selector that is not in its index.
type SelectionError struct {
	Kind  string // "classroom", "day", "time slot", ...
	Value string
}

func (e *SelectionError) Error() string {
	return "Please select a valid " + e.Kind + "."
}

func (e *SelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

func invalid(kind, value string) error {
	return &SelectionError{Kind: kind, Value: value}
}
