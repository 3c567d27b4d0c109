package dxf

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
)

// CBORReader reads the pair stream written by CBORWriter.
type CBORReader struct {
	dec *cbor.Decoder
}

// NewCBORReader consumes and checks PairStreamMagic.
func NewCBORReader(r io.Reader) (*CBORReader, error) {
	head := make([]byte, len(PairStreamMagic))
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, malformed("reading pair stream header: %v", err)
	}
	if string(head) != PairStreamMagic {
		return nil, malformed("not a pair stream")
	}
	return &CBORReader{dec: getCborDecoder().NewDecoder(r)}, nil
}

func (r *CBORReader) Next() (groupcode.Pair, error) {
	var p cborPair
	if err := r.dec.Decode(&p); err != nil {
		if err == io.EOF {
			return groupcode.Pair{}, io.EOF
		}
		return groupcode.Pair{}, malformed("%v", err)
	}
	kind, err := groupcode.Classify(p.Code)
	if err != nil {
		return groupcode.Pair{Code: p.Code, Value: p.Value}, nil
	}
	v, err := canonical(kind, p.Value)
	if err != nil {
		return groupcode.Pair{}, malformed("code %d: %v", p.Code, err)
	}
	return groupcode.Pair{Code: p.Code, Value: v}, nil
}
