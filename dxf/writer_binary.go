package dxf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// BinarySentinel opens every binary DXF stream.
const BinarySentinel = "AutoCAD Binary DXF\r\n\x1a\x00"

// BinaryWriter writes binary DXF: a little-endian uint16 code followed by a
// payload sized by the value kind.
type BinaryWriter struct {
	*streamWriter
}

// NewBinaryWriter writes the sentinel to w and returns the writer. A sink
// error raised by the sentinel is reported by Err.
func NewBinaryWriter(w io.Writer, cfg *Config) *BinaryWriter {
	enc := &binaryEncoder{
		w:    bufio.NewWriter(w),
		text: newTextCodec(cfg.CodePage, cfg.Version.IsUnicode()),
	}
	bw := &BinaryWriter{streamWriter: newStreamWriter(enc, cfg)}
	if _, err := enc.w.WriteString(BinarySentinel); err != nil {
		bw.fail(err)
	}
	return bw
}

type binaryEncoder struct {
	w    *bufio.Writer
	text textCodec
	buf  []byte
}

func (e *binaryEncoder) encode(code int, kind groupcode.ValueKind, value any) error {
	v, err := canonical(kind, value)
	if err != nil {
		return err
	}

	b := binary.LittleEndian.AppendUint16(e.buf[:0], uint16(int16(code)))
	switch x := v.(type) {
	case string:
		// strings are NUL terminated
		if strings.IndexByte(x, 0) >= 0 {
			return fmt.Errorf("%w: %s with a NUL byte under code %d", ErrUnsupportedValueKind, kind, code)
		}
		b = append(b, e.text.encode(x)...)
		b = append(b, 0)
	case float64:
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(x))
	case int16:
		b = binary.LittleEndian.AppendUint16(b, uint16(x))
	case int32:
		b = binary.LittleEndian.AppendUint32(b, uint32(x))
	case int64:
		b = binary.LittleEndian.AppendUint64(b, uint64(x))
	case bool:
		if x {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
	case models.Handle:
		b = append(b, x.String()...)
		b = append(b, 0)
	case []byte:
		if len(x) > math.MaxUint8 {
			return fmt.Errorf("%w: %d bytes", ErrChunkTooLong, len(x))
		}
		b = append(b, byte(len(x)))
		b = append(b, x...)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedValueKind, kind)
	}
	e.buf = b
	_, err = e.w.Write(b)
	return err
}

func (e *binaryEncoder) flush() error {
	return e.w.Flush()
}
