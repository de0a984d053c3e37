package entities

import "errors"

// ErrUnknownField is returned when a field is not part of a kind's field set.
var ErrUnknownField = errors.New("unknown field")

// ErrMissingName is returned when an entry has no name.
var ErrMissingName = errors.New("entry has no name")
