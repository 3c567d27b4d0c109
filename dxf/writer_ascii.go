package dxf

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
)

// ASCIIWriter writes the text form of DXF: a right justified group code
// line followed by a value line, both ended by CR LF.
type ASCIIWriter struct {
	*streamWriter
}

// NewASCIIWriter writes to w. Strings are converted to the code page of cfg
// for versions before AC1021.
func NewASCIIWriter(w io.Writer, cfg *Config) *ASCIIWriter {
	enc := &asciiEncoder{
		w:    bufio.NewWriter(w),
		text: newTextCodec(cfg.CodePage, cfg.Version.IsUnicode()),
	}
	return &ASCIIWriter{streamWriter: newStreamWriter(enc, cfg)}
}

type asciiEncoder struct {
	w    *bufio.Writer
	text textCodec
	buf  []byte
}

func (e *asciiEncoder) encode(code int, kind groupcode.ValueKind, value any) error {
	b := e.buf[:0]
	b = appendCode(b, code)
	b = append(b, '\r', '\n')
	b = e.appendValue(b, kind, value)
	b = append(b, '\r', '\n')
	e.buf = b
	_, err := e.w.Write(b)
	return err
}

func (e *asciiEncoder) flush() error {
	return e.w.Flush()
}

// appendCode right justifies code in three columns; wider codes keep their
// width.
func appendCode(b []byte, code int) []byte {
	s := strconv.Itoa(code)
	for i := len(s); i < 3; i++ {
		b = append(b, ' ')
	}
	return append(b, s...)
}

func (e *asciiEncoder) appendValue(b []byte, kind groupcode.ValueKind, value any) []byte {
	v, err := canonical(kind, value)
	if err != nil {
		return append(b, fmt.Sprint(value)...)
	}
	switch x := v.(type) {
	case string:
		return append(b, escapeControl(e.text.encode(x))...)
	case float64:
		return appendFloat(b, x)
	case int16:
		return strconv.AppendInt(b, int64(x), 10)
	case int32:
		return strconv.AppendInt(b, int64(x), 10)
	case int64:
		return strconv.AppendInt(b, x, 10)
	case bool:
		if x {
			return append(b, '1')
		}
		return append(b, '0')
	case []byte:
		return append(b, strings.ToUpper(hex.EncodeToString(x))...)
	case fmt.Stringer:
		// handles
		return append(b, x.String()...)
	}
	return append(b, fmt.Sprint(v)...)
}

// appendFloat writes the shortest representation that reads back to f,
// always with a decimal point.
func appendFloat(b []byte, f float64) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, f, 'f', -1, 64)
	for _, c := range b[start:] {
		if c == '.' || c == 'N' || c == 'I' {
			return b
		}
	}
	return append(b, '.', '0')
}

// escapeControl replaces control characters with the caret notation of DXF
// text values: LF becomes ^J and a caret becomes "^ ".
func escapeControl(s string) string {
	needs := false
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == '^' {
			needs = true
			break
		}
	}
	if !needs {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '^':
			sb.WriteString("^ ")
		case c < 0x20:
			sb.WriteByte('^')
			sb.WriteByte(c + 0x40)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// unescapeControl reverses escapeControl.
func unescapeControl(s string) string {
	if !strings.Contains(s, "^") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '^' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch n := s[i]; {
		case n == ' ':
			sb.WriteByte('^')
		case n >= 0x40 && n < 0x60:
			sb.WriteByte(n - 0x40)
		default:
			sb.WriteByte('^')
			sb.WriteByte(n)
		}
	}
	return sb.String()
}
