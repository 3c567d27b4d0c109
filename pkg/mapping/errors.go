package mapping

import "errors"

// Errors
var (
	ErrNoMapping  = errors.New("no mapping registered for object type")
	ErrValueType  = errors.New("value does not fit the field type")
	ErrUnresolved = errors.New("reference cannot be resolved")
)
