package mapping

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// Scalar describes a single-code field. A nil set makes the field write-only.
func Scalar[T, V any](name string, code int, get func(T) V, set func(T, V)) *Field {
	f := &Field{
		Name:  name,
		Code:  code,
		Codes: 1,
		Get:   func(src any) any { return get(src.(T)) },
	}
	if set != nil {
		f.Set = func(dst any, _ int, value any) error {
			v, err := convert[V](name, value)
			if err != nil {
				return err
			}
			set(dst.(T), v)
			return nil
		}
	}
	return f
}

// Vector3 describes a point written under code, code+10 and code+20.
func Vector3[T any](name string, code int, get func(T) models.XYZ, set func(T, models.XYZ)) *Field {
	f := &Field{
		Name:  name,
		Code:  code,
		Codes: 3,
		Get:   func(src any) any { return get(src.(T)) },
	}
	if set != nil {
		f.Set = func(dst any, c int, value any) error {
			x, err := convert[float64](name, value)
			if err != nil {
				return err
			}
			obj := dst.(T)
			set(obj, get(obj).WithComponent((c-code)/10, x))
			return nil
		}
	}
	return f
}

// Vector2 describes a point written under code and code+10.
func Vector2[T any](name string, code int, get func(T) models.XY, set func(T, models.XY)) *Field {
	f := &Field{
		Name:  name,
		Code:  code,
		Codes: 2,
		Get:   func(src any) any { return get(src.(T)) },
	}
	if set != nil {
		f.Set = func(dst any, c int, value any) error {
			x, err := convert[float64](name, value)
			if err != nil {
				return err
			}
			obj := dst.(T)
			set(obj, get(obj).WithComponent((c-code)/10, x))
			return nil
		}
	}
	return f
}

// NameRef describes a reference written by the name of its target. link is
// called by readers once the document tables exist.
func NameRef[T any, E models.CadObject](name string, code int, get func(T) E, link func(doc *models.Document, dst T, name string) error) *Field {
	f := &Field{
		Name:  name,
		Code:  code,
		Codes: 1,
		Ref:   Name,
		Get:   func(src any) any { return get(src.(T)) },
	}
	if link != nil {
		f.Link = func(r Resolver, dst any, key any) error {
			s, ok := key.(string)
			if !ok {
				return typeError(name, "", key)
			}
			return link(r.Document(), dst.(T), s)
		}
	}
	return f
}

// HandleRef describes a reference written by the handle of its target. A nil
// target is written as handle 0.
func HandleRef[T any, E models.CadObject](name string, code int, get func(T) E, set func(T, E)) *Field {
	f := &Field{
		Name:  name,
		Code:  code,
		Codes: 1,
		Ref:   Handle,
		Get:   func(src any) any { return get(src.(T)) },
	}
	if set != nil {
		f.Link = func(r Resolver, dst any, key any) error {
			h, ok := key.(models.Handle)
			if !ok {
				return typeError(name, models.Handle(0), key)
			}
			if h == 0 {
				return nil
			}
			obj, found := r.Object(h)
			if !found {
				return fmt.Errorf("%w: %s handle %s", ErrUnresolved, name, h)
			}
			target, ok := obj.(E)
			if !ok {
				return fmt.Errorf("%w: %s handle %s is a %s", ErrUnresolved, name, h, obj.ObjectType())
			}
			set(dst.(T), target)
			return nil
		}
	}
	return f
}

// Counted describes a collection written as countCode followed by the
// element fields of every item. A zero countCode writes no count.
func Counted[T, E any](name string, countCode int, items func(T) []E, appendItem func(T) *E, elements ...*Field) *Field {
	f := &Field{
		Name:      name,
		Code:      countCode,
		Ref:       Count,
		CountCode: countCode,
		Elements:  elements,
		Get:       func(src any) any { return len(items(src.(T))) },
		Items: func(src any) []any {
			s := items(src.(T))
			out := make([]any, len(s))
			for i := range s {
				out[i] = &s[i]
			}
			return out
		},
	}
	if countCode != 0 {
		f.Codes = 1
	}
	if appendItem != nil {
		f.Append = func(dst any) any { return appendItem(dst.(T)) }
	}
	return f
}

// Element returns the element field of a Count field that covers code.
func (f *Field) Element(code int) (*Field, bool) {
	for _, e := range f.Elements {
		if e.Covers(code) {
			return e, true
		}
	}
	return nil, false
}

// WithDefault flags the field Optional: it is not written while it holds def.
func (f *Field) WithDefault(def any) *Field {
	f.Ref |= Optional
	f.Default = def
	return f
}

// Angle flags the field as radians written in degrees.
func (f *Field) Angle() *Field {
	f.Ref |= IsAngle
	return f
}

// Ignore keeps the field in the description without writing it.
func (f *Field) Ignore() *Field {
	f.Ref |= Ignored
	return f
}

// IsDefault reports whether v equals the field default. Name fields compare
// the target name with a string default, ignoring case.
func (f *Field) IsDefault(v any) bool {
	if f.Ref.Has(Name) {
		def, _ := f.Default.(string)
		if n, ok := v.(interface{ Name() string }); ok && !isNilValue(v) {
			return strings.EqualFold(n.Name(), def)
		}
		return def == ""
	}
	if isNilValue(v) || isNilValue(f.Default) {
		return isNilValue(v) && isNilValue(f.Default)
	}
	nv, nd := normalize(v), normalize(f.Default)
	if reflect.TypeOf(nv).Comparable() && reflect.TypeOf(nd).Comparable() {
		return nv == nd
	}
	return reflect.DeepEqual(nv, nd)
}

// normalize folds numeric kinds so an int16 default matches a named int16
// value such as models.Units.
func normalize(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	}
	return v
}

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

// convert coerces a wire value into the field type: numeric kinds convert
// into each other, integers become booleans and named types are accepted.
func convert[V any](field string, value any) (V, error) {
	var out V
	if v, ok := value.(V); ok {
		return v, nil
	}
	src := reflect.ValueOf(value)
	dst := reflect.ValueOf(&out).Elem()
	if !src.IsValid() {
		return out, typeError(field, out, value)
	}

	switch dst.Kind() {
	case reflect.Bool:
		switch src.Kind() {
		case reflect.Bool:
			dst.SetBool(src.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetBool(src.Int() != 0)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst.SetBool(src.Uint() != 0)
		default:
			return out, typeError(field, out, value)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetInt(src.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst.SetInt(int64(src.Uint()))
		case reflect.Float32, reflect.Float64:
			dst.SetInt(int64(src.Float()))
		case reflect.Bool:
			if src.Bool() {
				dst.SetInt(1)
			}
		default:
			return out, typeError(field, out, value)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetUint(uint64(src.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst.SetUint(src.Uint())
		default:
			return out, typeError(field, out, value)
		}
	case reflect.Float32, reflect.Float64:
		switch src.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetFloat(float64(src.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			dst.SetFloat(float64(src.Uint()))
		case reflect.Float32, reflect.Float64:
			dst.SetFloat(src.Float())
		default:
			return out, typeError(field, out, value)
		}
	case reflect.String:
		if src.Kind() != reflect.String {
			return out, typeError(field, out, value)
		}
		dst.SetString(src.String())
	default:
		if !src.Type().ConvertibleTo(dst.Type()) {
			return out, typeError(field, out, value)
		}
		dst.Set(src.Convert(dst.Type()))
	}
	return out, nil
}
