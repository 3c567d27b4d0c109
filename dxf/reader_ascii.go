package dxf

import (
	"bufio"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// ASCIIReader reads the text form of DXF. Values of unknown codes are
// returned as raw strings.
type ASCIIReader struct {
	r    *bufio.Reader
	text textCodec
	line int
}

func NewASCIIReader(r io.Reader) *ASCIIReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &ASCIIReader{r: br}
}

func (r *ASCIIReader) setText(t textCodec) { r.text = t }

func (r *ASCIIReader) readLine() (string, error) {
	s, err := r.r.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	r.line++
	return strings.TrimRight(s, "\r\n"), nil
}

func (r *ASCIIReader) Next() (groupcode.Pair, error) {
	var codeLine string
	for {
		s, err := r.readLine()
		if err != nil {
			return groupcode.Pair{}, err
		}
		// tolerate blank lines after the final EOF marker
		if strings.TrimSpace(s) != "" {
			codeLine = s
			break
		}
	}
	code, err := strconv.Atoi(strings.TrimSpace(codeLine))
	if err != nil {
		return groupcode.Pair{}, malformed("line %d: invalid group code %q", r.line, codeLine)
	}
	raw, err := r.readLine()
	if err == io.EOF {
		return groupcode.Pair{}, malformed("line %d: missing value of code %d", r.line, code)
	}
	if err != nil {
		return groupcode.Pair{}, err
	}

	kind, err := groupcode.Classify(code)
	if err != nil {
		return groupcode.Pair{Code: code, Value: raw}, nil
	}
	v, err := parseText(kind, raw, r.text)
	if err != nil {
		return groupcode.Pair{}, malformed("line %d: code %d: %v", r.line, code, err)
	}
	return groupcode.Pair{Code: code, Value: v}, nil
}

func parseText(kind groupcode.ValueKind, raw string, text textCodec) (any, error) {
	s := strings.TrimSpace(raw)
	switch kind {
	case groupcode.String, groupcode.Comment, groupcode.ExtendedString:
		return text.decode(unescapeControl(raw)), nil
	case groupcode.Point, groupcode.Double, groupcode.ExtendedDouble:
		return strconv.ParseFloat(s, 64)
	case groupcode.Byte, groupcode.Int16, groupcode.ExtendedInt16:
		i, err := parseInt(s, 16)
		return int16(i), err
	case groupcode.Int32, groupcode.ExtendedInt32:
		i, err := parseInt(s, 32)
		return int32(i), err
	case groupcode.Int64:
		return parseInt(s, 64)
	case groupcode.Bool:
		i, err := parseInt(s, 16)
		return i != 0, err
	case groupcode.Handle, groupcode.ObjectID, groupcode.ExtendedHandle:
		return models.ParseHandle(s)
	case groupcode.BinaryChunk, groupcode.ExtendedChunk:
		return hex.DecodeString(s)
	}
	return raw, nil
}

// parseInt accepts integers written as doubles, which some producers emit.
func parseInt(s string, bits int) (int64, error) {
	i, err := strconv.ParseInt(s, 10, bits)
	if err == nil {
		return i, nil
	}
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, err
	}
	return int64(f), nil
}
