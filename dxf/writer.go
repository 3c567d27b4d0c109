package dxf

import (
	"fmt"
	"io"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// StreamWriter serializes group code/value pairs to a sink.
//
// Errors are sticky: the first encoding or sink error is kept, every later
// call is a no-op and Err, Flush and Close report it.
type StreamWriter interface {
	// Write writes one pair. A nil value writes nothing.
	Write(code int, value any)
	// WriteField writes a value described by a catalog field, applying the
	// field flags. f may be nil.
	WriteField(code int, value any, f *mapping.Field)
	Flush() error
	Close() error
	Err() error
}

// encoder is the wire specific part of a writer.
type encoder interface {
	encode(code int, kind groupcode.ValueKind, value any) error
	flush() error
}

// streamWriter applies the rules shared by every encoding before handing a
// pair to the encoder.
type streamWriter struct {
	enc            encoder
	writeOptionals bool
	err            error
	closed         bool
}

func newStreamWriter(enc encoder, cfg *Config) *streamWriter {
	return &streamWriter{enc: enc, writeOptionals: cfg.WriteOptionals}
}

func (w *streamWriter) Err() error { return w.err }

func (w *streamWriter) fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *streamWriter) Write(code int, value any) {
	w.WriteField(code, value, nil)
}

func (w *streamWriter) WriteField(code int, value any, f *mapping.Field) {
	if w.err != nil {
		return
	}
	if w.closed {
		w.fail(ErrClosed)
		return
	}
	if f != nil {
		if f.Ref.Has(mapping.Ignored) {
			return
		}
		if f.Ref.Has(mapping.Optional) && !w.writeOptionals && f.IsDefault(value) {
			return
		}
	}

	if isNilValue(value) {
		if f != nil && f.Ref.Has(mapping.Handle) {
			w.encode(code, models.Handle(0))
		}
		return
	}

	if f != nil && f.Ref.Has(mapping.IsAngle) {
		if rad, ok := asFloat(value); ok {
			value = toDegrees(rad)
		}
	}

	switch v := value.(type) {
	case models.Vector:
		for i, c := range v.Components() {
			w.encode(code+10*i, c)
		}
		return
	case models.CadObject:
		if f != nil && f.Ref.Has(mapping.Name) {
			if n, ok := v.(interface{ Name() string }); ok {
				w.encode(code, n.Name())
				return
			}
		}
		w.encode(code, v.Handle())
		return
	}
	w.encode(code, value)
}

func (w *streamWriter) encode(code int, value any) {
	if w.err != nil {
		return
	}
	kind, err := groupcode.Classify(code)
	if err != nil {
		w.fail(fmt.Errorf("writing code %d: %w", code, err))
		return
	}
	if err := w.enc.encode(code, kind, value); err != nil {
		w.fail(fmt.Errorf("writing code %d: %w", code, err))
	}
}

func (w *streamWriter) Flush() error {
	if w.err != nil {
		return w.err
	}
	if w.closed {
		return nil
	}
	w.fail(w.enc.flush())
	return w.err
}

// Close flushes the buffered pairs. The sink is left open. It is safe to
// call more than once.
func (w *streamWriter) Close() error {
	if w.closed {
		return w.err
	}
	_ = w.Flush()
	w.closed = true
	return w.err
}

// NewWriter returns the writer of cfg.Format. cfg must carry the version and
// code page of the document being written; Encode takes care of that.
func NewWriter(w io.Writer, cfg *Config) (StreamWriter, error) {
	switch cfg.Format {
	case ASCII:
		return NewASCIIWriter(w, cfg), nil
	case Binary:
		return NewBinaryWriter(w, cfg), nil
	case CBOR:
		return NewCBORWriter(w, cfg), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, cfg.Format)
}
