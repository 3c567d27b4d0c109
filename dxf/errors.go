package dxf

import "errors"

// Errors
var (
	// ErrNotImplemented is returned for an object type that has neither a
	// mapping nor a registered emitter.
	ErrNotImplemented = errors.New("object type not implemented")
	// ErrUnsupportedValueKind is returned by the binary and CBOR writers for a
	// value they cannot represent under its group code.
	ErrUnsupportedValueKind = errors.New("unsupported value kind")
	ErrUnsupportedVersion   = errors.New("unsupported drawing version")
	ErrUnknownFormat        = errors.New("unknown stream format")
	ErrChunkTooLong         = errors.New("binary chunk longer than 255 bytes")
	// ErrStrict is returned when a warning is raised while Config.Strict is
	// set.
	ErrStrict    = errors.New("warning raised in strict mode")
	ErrMalformed = errors.New("malformed stream")
	ErrClosed    = errors.New("stream writer is closed")
)
