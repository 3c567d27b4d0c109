// Package groupcode classifies DXF group codes into the kind of value that
// follows them on the wire.
//
// Every writer and reader in this module switches on the ValueKind returned by
// Classify to pick an encoding, which is what lets one field catalog serve the
// ASCII, binary and CBOR streams unmodified.
package groupcode

import (
	"errors"
	"fmt"
)

// ErrUnknownGroupCode is returned for codes outside the DXF reference table.
var ErrUnknownGroupCode = errors.New("unknown group code")

// ValueKind is the wire type of the value that follows a group code.
type ValueKind uint8

const (
	None ValueKind = iota
	String
	Comment
	ExtendedString
	Point
	Double
	ExtendedDouble
	Byte
	Int16
	ExtendedInt16
	Int32
	ExtendedInt32
	Int64
	Handle
	ObjectID
	ExtendedHandle
	Bool
	BinaryChunk
	ExtendedChunk
)

var kindNames = [...]string{
	None:           "None",
	String:         "String",
	Comment:        "Comment",
	ExtendedString: "ExtendedString",
	Point:          "Point",
	Double:         "Double",
	ExtendedDouble: "ExtendedDouble",
	Byte:           "Byte",
	Int16:          "Int16",
	ExtendedInt16:  "ExtendedInt16",
	Int32:          "Int32",
	ExtendedInt32:  "ExtendedInt32",
	Int64:          "Int64",
	Handle:         "Handle",
	ObjectID:       "ObjectID",
	ExtendedHandle: "ExtendedHandle",
	Bool:           "Bool",
	BinaryChunk:    "BinaryChunk",
	ExtendedChunk:  "ExtendedChunk",
}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// Well known codes used by the section writers and readers.
const (
	Start          = 0
	Text           = 1
	Name           = 2
	ObjectHandle   = 5
	LineTypeName   = 6
	TextStyleName  = 7
	LayerName      = 8
	VariableName   = 9
	Subclass       = 100
	ControlString  = 102
	DimStyleHandle = 105
	SoftPointer    = 330
	HardOwner      = 360
	CommentCode    = 999
	XDataApp       = 1001
)

// Classify returns the value kind carried by code.
func Classify(code int) (ValueKind, error) {
	switch {
	case code >= -5 && code <= -1:
		if code == -1 || code == -2 || code == -5 {
			return Handle, nil
		}
		return String, nil
	case code >= 0 && code <= 4:
		return String, nil
	case code == 5:
		return Handle, nil
	case code >= 6 && code <= 9:
		return String, nil
	case code >= 10 && code <= 39:
		return Point, nil
	case code >= 40 && code <= 59:
		return Double, nil
	case code >= 60 && code <= 79:
		return Int16, nil
	case code >= 90 && code <= 99:
		return Int32, nil
	case code >= 100 && code <= 102:
		return String, nil
	case code == 105:
		return Handle, nil
	case code >= 110 && code <= 149:
		return Double, nil
	case code >= 160 && code <= 169:
		return Int64, nil
	case code >= 170 && code <= 179:
		return Int16, nil
	case code >= 210 && code <= 239:
		return Double, nil
	case code >= 270 && code <= 279:
		return Int16, nil
	case code >= 280 && code <= 289:
		return Byte, nil
	case code >= 290 && code <= 299:
		return Bool, nil
	case code >= 300 && code <= 309:
		return String, nil
	case code >= 310 && code <= 319:
		return BinaryChunk, nil
	case code >= 320 && code <= 329:
		return Handle, nil
	case code >= 330 && code <= 369:
		return ObjectID, nil
	case code >= 370 && code <= 389:
		return Int16, nil
	case code >= 390 && code <= 399:
		return Handle, nil
	case code >= 400 && code <= 409:
		return Int16, nil
	case code >= 410 && code <= 419:
		return String, nil
	case code >= 420 && code <= 429:
		return Int32, nil
	case code >= 430 && code <= 439:
		return String, nil
	case code >= 440 && code <= 459:
		return Int32, nil
	case code >= 460 && code <= 469:
		return Double, nil
	case code >= 470 && code <= 479:
		return String, nil
	case code >= 480 && code <= 481:
		return Handle, nil
	case code == 999:
		return Comment, nil
	case code >= 1000 && code <= 1003:
		return ExtendedString, nil
	case code == 1004:
		return ExtendedChunk, nil
	case code == 1005:
		return ExtendedHandle, nil
	case code >= 1006 && code <= 1009:
		return ExtendedString, nil
	case code >= 1010 && code <= 1059:
		return ExtendedDouble, nil
	case code >= 1060 && code <= 1070:
		return ExtendedInt16, nil
	case code == 1071:
		return ExtendedInt32, nil
	}
	return None, fmt.Errorf("%w: %d", ErrUnknownGroupCode, code)
}

// MustClassify is like Classify but panics on unknown codes. It is meant for
// codes taken from the mapping catalog, where an unknown code is a bug.
func MustClassify(code int) ValueKind {
	k, err := Classify(code)
	if err != nil {
		panic(err)
	}
	return k
}

// IsHandle reports whether values of kind k are object handles.
func (k ValueKind) IsHandle() bool {
	return k == Handle || k == ObjectID || k == ExtendedHandle
}

// IsString reports whether values of kind k are carried as text.
func (k ValueKind) IsString() bool {
	return k == String || k == Comment || k == ExtendedString
}

// IsFloat reports whether values of kind k are IEEE doubles.
func (k ValueKind) IsFloat() bool {
	return k == Point || k == Double || k == ExtendedDouble
}

// IsInteger reports whether values of kind k are integers, including bytes.
func (k ValueKind) IsInteger() bool {
	switch k {
	case Byte, Int16, ExtendedInt16, Int32, ExtendedInt32, Int64:
		return true
	}
	return false
}

// IsChunk reports whether values of kind k are raw byte chunks.
func (k ValueKind) IsChunk() bool {
	return k == BinaryChunk || k == ExtendedChunk
}

// Pair is one (group code, value) element of a DXF stream.
type Pair struct {
	Code  int
	Value any
}

func (p Pair) String() string {
	return fmt.Sprintf("%d=%v", p.Code, p.Value)
}
