package dxf

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// BinaryReader reads binary DXF. An unknown code is fatal because the size
// of its payload cannot be known.
type BinaryReader struct {
	r    *bufio.Reader
	text textCodec
	buf  [8]byte
}

// NewBinaryReader consumes and checks the sentinel.
func NewBinaryReader(r io.Reader) (*BinaryReader, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	head := make([]byte, len(BinarySentinel))
	if _, err := io.ReadFull(br, head); err != nil {
		return nil, malformed("reading sentinel: %v", err)
	}
	if string(head) != BinarySentinel {
		return nil, malformed("missing binary sentinel")
	}
	return &BinaryReader{r: br}, nil
}

func (r *BinaryReader) setText(t textCodec) { r.text = t }

func (r *BinaryReader) read(n int) ([]byte, error) {
	if _, err := io.ReadFull(r.r, r.buf[:n]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return r.buf[:n], nil
}

func (r *BinaryReader) readString() (string, error) {
	s, err := r.r.ReadString(0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	return s[:len(s)-1], nil
}

func (r *BinaryReader) Next() (groupcode.Pair, error) {
	if _, err := io.ReadFull(r.r, r.buf[:2]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return groupcode.Pair{}, malformed("truncated group code")
		}
		return groupcode.Pair{}, err
	}
	code := int(int16(binary.LittleEndian.Uint16(r.buf[:2])))
	kind, err := groupcode.Classify(code)
	if err != nil {
		return groupcode.Pair{}, malformed("%v", err)
	}

	v, err := r.value(kind)
	if err != nil {
		return groupcode.Pair{}, malformed("code %d: %v", code, err)
	}
	return groupcode.Pair{Code: code, Value: v}, nil
}

func (r *BinaryReader) value(kind groupcode.ValueKind) (any, error) {
	switch kind {
	case groupcode.String, groupcode.Comment, groupcode.ExtendedString:
		s, err := r.readString()
		return r.text.decode(s), err
	case groupcode.Point, groupcode.Double, groupcode.ExtendedDouble:
		b, err := r.read(8)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	case groupcode.Byte, groupcode.Int16, groupcode.ExtendedInt16:
		b, err := r.read(2)
		if err != nil {
			return nil, err
		}
		return int16(binary.LittleEndian.Uint16(b)), nil
	case groupcode.Int32, groupcode.ExtendedInt32:
		b, err := r.read(4)
		if err != nil {
			return nil, err
		}
		return int32(binary.LittleEndian.Uint32(b)), nil
	case groupcode.Int64:
		b, err := r.read(8)
		if err != nil {
			return nil, err
		}
		return int64(binary.LittleEndian.Uint64(b)), nil
	case groupcode.Bool:
		b, err := r.read(1)
		if err != nil {
			return nil, err
		}
		return b[0] != 0, nil
	case groupcode.Handle, groupcode.ObjectID, groupcode.ExtendedHandle:
		s, err := r.readString()
		if err != nil {
			return nil, err
		}
		return models.ParseHandle(s)
	case groupcode.BinaryChunk, groupcode.ExtendedChunk:
		n, err := r.r.ReadByte()
		if err != nil {
			return nil, io.ErrUnexpectedEOF
		}
		chunk := make([]byte, n)
		if _, err := io.ReadFull(r.r, chunk); err != nil {
			return nil, io.ErrUnexpectedEOF
		}
		return chunk, nil
	}
	return nil, ErrUnsupportedValueKind
}
