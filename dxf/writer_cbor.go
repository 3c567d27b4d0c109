package dxf

import (
	"bufio"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

const (
	// PairStreamMagic opens the pair stream so it can be told apart from
	// DXF.
	PairStreamMagic = "\x89DXFPAIRS\r\n\x1a\n"
	handleTag       = 40500
)

func registerCborTags() cbor.TagSet {
	tags := cbor.NewTagSet()
	err := tags.Add(
		cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired},
		reflect.TypeOf(models.Handle(0)),
		handleTag,
	)
	if err != nil {
		panic(err)
	}
	return tags
}

func getCborEncoder() cbor.EncMode {
	em, err := cbor.EncOptions{}.EncModeWithTags(registerCborTags())
	if err != nil {
		panic(err)
	}
	return em
}

func getCborDecoder() cbor.DecMode {
	dm, err := cbor.DecOptions{}.DecModeWithTags(registerCborTags())
	if err != nil {
		panic(err)
	}
	return dm
}

// cborPair is one pair of the stream, encoded as a two element array.
type cborPair struct {
	_     struct{} `cbor:",toarray"`
	Code  int
	Value any
}

// CBORWriter writes the pair stream: PairStreamMagic followed by one
// [code, value] array per pair. Strings are always UTF-8 and handles carry
// their own tag.
type CBORWriter struct {
	*streamWriter
}

func NewCBORWriter(w io.Writer, cfg *Config) *CBORWriter {
	bw := bufio.NewWriter(w)
	enc := &cborEncoder{w: bw, enc: getCborEncoder().NewEncoder(bw)}
	cw := &CBORWriter{streamWriter: newStreamWriter(enc, cfg)}
	if _, err := bw.WriteString(PairStreamMagic); err != nil {
		cw.fail(err)
	}
	return cw
}

type cborEncoder struct {
	w   *bufio.Writer
	enc *cbor.Encoder
}

func (e *cborEncoder) encode(code int, kind groupcode.ValueKind, value any) error {
	v, err := canonical(kind, value)
	if err != nil {
		return err
	}
	return e.enc.Encode(cborPair{Code: code, Value: v})
}

func (e *cborEncoder) flush() error {
	return e.w.Flush()
}
