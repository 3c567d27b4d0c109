package dxf

import (
	"fmt"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// The helpers below fold the Go values found in objects (named integer types,
// booleans, handles, objects) into the few representations the encoders know.

// toDegrees rounds to 1e-10 degrees so a value read back and written again
// gives the same text.
func toDegrees(rad float64) float64 {
	return math.Round(rad*180/math.Pi*1e10) / 1e10
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), true
	}
	return 0, false
}

func asBool(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	if i, ok := asInt(v); ok {
		return i != 0, true
	}
	return false, false
}

func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func asHandle(v any) (models.Handle, bool) {
	switch h := v.(type) {
	case models.Handle:
		return h, true
	case models.CadObject:
		return h.Handle(), true
	case string:
		p, err := models.ParseHandle(h)
		return p, err == nil
	case cbor.Tag:
		return asHandle(h.Content)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return models.Handle(rv.Uint()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() >= 0 {
			return models.Handle(rv.Int()), true
		}
	}
	return 0, false
}

func asChunk(v any) ([]byte, bool) {
	b, ok := v.([]byte)
	return b, ok
}

// isNilValue reports nil interfaces and typed nil pointers, maps and slices.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// canonical converts v into the Go type readers produce for kind: string,
// float64, int16, int32, int64, bool, []byte or models.Handle. Bytes are
// carried as int16.
func canonical(kind groupcode.ValueKind, v any) (any, error) {
	var (
		out any
		ok  bool
	)
	switch kind {
	case groupcode.String, groupcode.Comment, groupcode.ExtendedString:
		out, ok = asString(v)
	case groupcode.Point, groupcode.Double, groupcode.ExtendedDouble:
		out, ok = asFloat(v)
	case groupcode.Byte, groupcode.Int16, groupcode.ExtendedInt16:
		var i int64
		i, ok = asInt(v)
		out = int16(i)
	case groupcode.Int32, groupcode.ExtendedInt32:
		var i int64
		i, ok = asInt(v)
		out = int32(i)
	case groupcode.Int64:
		out, ok = asInt(v)
	case groupcode.Bool:
		out, ok = asBool(v)
	case groupcode.Handle, groupcode.ObjectID, groupcode.ExtendedHandle:
		out, ok = asHandle(v)
	case groupcode.BinaryChunk, groupcode.ExtendedChunk:
		out, ok = asChunk(v)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s value %T", ErrUnsupportedValueKind, kind, v)
	}
	return out, nil
}
