package mapping

import (
	"fmt"
	"strings"

	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// Ref is the set of flags that change how a field is written or read.
type Ref uint8

const (
	// Ignored fields are described but never written.
	Ignored Ref = 1 << iota
	// Optional fields are skipped while they hold their Default value.
	Optional
	// IsAngle fields hold radians in memory and degrees on the wire.
	IsAngle
	// Name fields hold an object written by its name.
	Name
	// Handle fields hold an object written by its handle; nil writes 0.
	Handle
	// Count fields hold a collection written as a count followed by the
	// elements.
	Count
)

var refNames = []struct {
	ref  Ref
	name string
}{
	{Ignored, "ignored"},
	{Optional, "optional"},
	{IsAngle, "angle"},
	{Name, "name"},
	{Handle, "handle"},
	{Count, "count"},
}

func (r Ref) Has(f Ref) bool { return r&f != 0 }

// Names lists the flags set in r.
func (r Ref) Names() []string {
	var out []string
	for _, n := range refNames {
		if r.Has(n.ref) {
			out = append(out, n.name)
		}
	}
	return out
}

// Resolver gives readers access to the document being built so Name and
// Handle fields can be linked once every object exists.
type Resolver interface {
	Document() *models.Document
	Object(h models.Handle) (models.CadObject, bool)
}

// Field describes one property: the group code it is written under and how
// to read and write it. Getters and setters take the owning object, or a
// pointer to the element for the element fields of a Count field.
type Field struct {
	Name string
	// Code is the primary group code. Vectors use Code, Code+10 and Code+20.
	Code int
	// Codes is the number of codes the field spans: 1 for scalars, 2 or 3 for
	// vectors.
	Codes   int
	Ref     Ref
	Default any

	Get func(src any) any
	// Set stores one wire value. Vectors receive one component per call; the
	// component is (code-Code)/10.
	Set func(dst any, code int, value any) error
	// Link resolves the key read for a Name or Handle field: a string for Name
	// fields, a models.Handle for Handle fields.
	Link func(r Resolver, dst any, key any) error

	// Count fields only.
	CountCode int
	Elements  []*Field
	Items     func(src any) []any
	Append    func(dst any) any
}

// Covers reports whether code belongs to the field.
func (f *Field) Covers(code int) bool {
	for i := 0; i < f.Codes; i++ {
		if code == f.Code+10*i {
			return true
		}
	}
	return false
}

// Subclass is an ordered block of fields written after a 100 marker. The
// common object block has no marker.
type Subclass struct {
	Name   string
	Fields []*Field
}

// Lookup returns the field of the subclass that covers code. Codes of the
// elements of a Count field return the Count field.
func (s *Subclass) Lookup(code int) (*Field, bool) {
	for _, f := range s.Fields {
		if f.Covers(code) {
			return f, true
		}
		if f.Ref.Has(Count) {
			if _, ok := f.Element(code); ok {
				return f, true
			}
		}
	}
	return nil, false
}

// Mapping is the layout of one concrete type: its subclass blocks in write
// order.
type Mapping struct {
	Type       models.ObjectType
	ObjectName string
	Subclasses []Subclass
}

// Subclass returns the named block, ignoring case.
func (m *Mapping) Subclass(name string) (*Subclass, bool) {
	for i := range m.Subclasses {
		if strings.EqualFold(m.Subclasses[i].Name, name) {
			return &m.Subclasses[i], true
		}
	}
	return nil, false
}

// Lookup finds the field covering code, preferring the given subclass and
// falling back to the whole mapping in order.
func (m *Mapping) Lookup(subclass string, code int) (*Field, bool) {
	if s, ok := m.Subclass(subclass); ok {
		if f, ok := s.Lookup(code); ok {
			return f, true
		}
	}
	for i := range m.Subclasses {
		if f, ok := m.Subclasses[i].Lookup(code); ok {
			return f, true
		}
	}
	return nil, false
}

// Fields returns every field in write order.
func (m *Mapping) Fields() []*Field {
	var out []*Field
	for _, s := range m.Subclasses {
		out = append(out, s.Fields...)
	}
	return out
}

func typeError(field string, want, got any) error {
	return fmt.Errorf("%w: field %s expects %T, got %T", ErrValueType, field, want, got)
}
