package models

import (
	"fmt"
	"strings"
)

// NonGraphicalObject is a named object stored in a CadDictionary.
type NonGraphicalObject interface {
	CadObject
	Name() string
	SetName(name string) error
	nonGraphical() *NonGraphicalBase
}

type namedObject interface {
	comparable
	NonGraphicalObject
}

// NonGraphicalBase carries the state shared by dictionary entries.
type NonGraphicalBase struct {
	ObjectBase
	name   string
	rename func(old, new string) error
}

func (n *NonGraphicalBase) Name() string { return n.name }

// SetName renames the object. The owning dictionary re-keys its index and
// rejects a name already in use.
func (n *NonGraphicalBase) SetName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if n.rename != nil {
		if err := n.rename(n.name, name); err != nil {
			return err
		}
	}
	n.name = name
	return nil
}

func (n *NonGraphicalBase) nonGraphical() *NonGraphicalBase { return n }

func (n *NonGraphicalBase) cloneNonGraphicalBase() NonGraphicalBase {
	return NonGraphicalBase{ObjectBase: n.ObjectBase.cloneBase(), name: n.name}
}

// DuplicateRecordCloning is the DICTIONARY cloning flag (group code 281).
type DuplicateRecordCloning int16

const (
	CloningNotApplicable DuplicateRecordCloning = iota
	CloningKeepExisting
	CloningUseClone
	CloningXrefPrefixName
	CloningPrefixName
	CloningPrefixNameUnmangle
)

// Names of the standard entries of the root dictionary.
const (
	GroupDictionaryName    = "ACAD_GROUP"
	MaterialDictionaryName = "ACAD_MATERIAL"
)

// CadDictionary maps names to non-graphical objects. Lookups ignore case and
// entries keep insertion order. Every entry is owned by the dictionary.
type CadDictionary struct {
	NonGraphicalBase
	// HardOwner selects hard owner (360) over soft owner (350) entry codes.
	HardOwner bool
	Cloning   DuplicateRecordCloning

	entries   []NonGraphicalObject
	index     map[string]NonGraphicalObject
	observers observerSet
}

func NewDictionary(name string) *CadDictionary {
	d := &CadDictionary{
		Cloning: CloningKeepExisting,
		index:   make(map[string]NonGraphicalObject),
	}
	d.name = name
	return d
}

func (d *CadDictionary) ObjectType() ObjectType { return TypeDictionary }
func (d *CadDictionary) ObjectName() string     { return "DICTIONARY" }
func (d *CadDictionary) SubclassMarker() string { return "AcDbDictionary" }

func (d *CadDictionary) Len() int { return len(d.entries) }

// Entries returns the entries in insertion order.
func (d *CadDictionary) Entries() []NonGraphicalObject {
	return append([]NonGraphicalObject(nil), d.entries...)
}

// Keys returns the entry names in insertion order.
func (d *CadDictionary) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Name()
	}
	return keys
}

// Get looks an entry up by name, ignoring case.
func (d *CadDictionary) Get(name string) (NonGraphicalObject, bool) {
	e, ok := d.index[strings.ToLower(name)]
	return e, ok
}

// Add inserts a free object under its name. When the dictionary is attached
// the object is attached to the same document.
func (d *CadDictionary) Add(obj NonGraphicalObject) error {
	if isNil(obj) {
		return ErrNilObject
	}
	name := obj.Name()
	if name == "" {
		return ErrEmptyName
	}
	key := strings.ToLower(name)
	if _, exists := d.index[key]; exists {
		return fmt.Errorf("%w: dictionary %q", ErrDuplicateName, name)
	}
	if obj.Document() != nil {
		return ErrAlreadyAttached
	}

	d.entries = append(d.entries, obj)
	d.index[key] = obj
	obj.nonGraphical().rename = d.renamer(obj)

	if d.doc != nil {
		if err := d.doc.attach(obj, d.handle); err != nil {
			d.unlink(obj)
			return err
		}
	}
	return nil
}

// Remove deletes the named entry, clears its owner and notifies every
// reference to it.
func (d *CadDictionary) Remove(name string) (NonGraphicalObject, error) {
	obj, ok := d.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: dictionary %q", ErrNotFound, name)
	}
	d.unlink(obj)
	d.observers.notify(d, obj)
	if d.doc != nil {
		d.doc.detach(obj)
	}
	return obj, nil
}

func (d *CadDictionary) unlink(obj NonGraphicalObject) {
	delete(d.index, strings.ToLower(obj.Name()))
	for i, x := range d.entries {
		if x == obj {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			break
		}
	}
	obj.nonGraphical().rename = nil
}

func (d *CadDictionary) renamer(obj NonGraphicalObject) func(old, new string) error {
	return func(old, new string) error {
		oldKey, newKey := strings.ToLower(old), strings.ToLower(new)
		if oldKey == newKey {
			return nil
		}
		if _, exists := d.index[newKey]; exists {
			return fmt.Errorf("%w: dictionary %q", ErrDuplicateName, new)
		}
		delete(d.index, oldKey)
		d.index[newKey] = obj
		return nil
	}
}

// fallback: dictionary references are nullable.
func (d *CadDictionary) fallback(string) CadObject { return nil }

func (d *CadDictionary) children() []CadObject {
	out := make([]CadObject, len(d.entries))
	for i, e := range d.entries {
		out[i] = e
	}
	return out
}

func (d *CadDictionary) Clone() CadObject {
	c := NewDictionary(d.name)
	c.NonGraphicalBase = d.cloneNonGraphicalBase()
	c.HardOwner = d.HardOwner
	c.Cloning = d.Cloning
	for _, e := range d.entries {
		_ = c.Add(e.Clone().(NonGraphicalObject))
	}
	return c
}
