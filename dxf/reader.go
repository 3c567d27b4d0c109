package dxf

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
)

// StreamReader reads group code/value pairs. Values are typed by the kind of
// their code: string, float64, int16, int32, int64, bool, models.Handle or
// []byte. Next returns io.EOF after the last pair.
type StreamReader interface {
	Next() (groupcode.Pair, error)
}

// textAware readers decode strings with the drawing code page once it is
// known.
type textAware interface {
	setText(t textCodec)
}

// NewReader detects the format of r from its first bytes and returns the
// matching reader.
func NewReader(r io.Reader) (StreamReader, Format, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(BinarySentinel))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, 0, err
	}
	switch {
	case bytes.Equal(head, []byte(BinarySentinel)):
		rd, err := NewBinaryReader(br)
		return rd, Binary, err
	case bytes.HasPrefix(head, []byte(PairStreamMagic)):
		rd, err := NewCBORReader(br)
		return rd, CBOR, err
	}
	return NewASCIIReader(br), ASCII, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
