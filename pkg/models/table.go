package models

import (
	"fmt"
	"strings"
)

// TableEntry is a named record of a document table (layer, line type, ...).
type TableEntry interface {
	CadObject
	Name() string
	SetName(name string) error
	Common() *TableEntryBase
}

// entry is the constraint used by the generic table and reference types.
type entry interface {
	comparable
	TableEntry
}

// TableEntryBase carries the state shared by table entries.
type TableEntryBase struct {
	ObjectBase
	name string
	// Flags holds the standard flag bits (group code 70).
	Flags int16
	// rename is installed by the owning table so it can re-key its index.
	rename func(old, new string) error
}

func (e *TableEntryBase) Name() string { return e.name }

// SetName renames the entry. The owning table re-keys its index and rejects
// names already used by another entry.
func (e *TableEntryBase) SetName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if e.rename != nil {
		if err := e.rename(e.name, name); err != nil {
			return err
		}
	}
	e.name = name
	return nil
}

func (e *TableEntryBase) Common() *TableEntryBase { return e }

func (e *TableEntryBase) cloneEntryBase() TableEntryBase {
	return TableEntryBase{ObjectBase: e.ObjectBase.cloneBase(), name: e.name, Flags: e.Flags}
}

// SymbolTable is the read interface the writers use to walk any table.
type SymbolTable interface {
	CadObject
	Name() string
	Len() int
	Entries() []TableEntry
}

// Table is a document-scoped collection of uniquely named entries. Names are
// compared case-insensitively and entries keep insertion order. The default
// entry, and any additionally protected entry, cannot be removed.
type Table[T entry] struct {
	ObjectBase
	name        string
	defaultName string
	protected   []string
	newEntry    func(name string) T

	entries   []T
	index     map[string]T
	observers observerSet
}

func newTable[T entry](name, defaultName string, newEntry func(string) T, protected ...string) *Table[T] {
	return &Table[T]{
		name:        name,
		defaultName: defaultName,
		protected:   protected,
		newEntry:    newEntry,
		index:       make(map[string]T),
	}
}

func (t *Table[T]) ObjectType() ObjectType { return TypeTable }
func (t *Table[T]) ObjectName() string     { return "TABLE" }
func (t *Table[T]) SubclassMarker() string { return "AcDbSymbolTable" }

// Name is the DXF table name, e.g. LAYER.
func (t *Table[T]) Name() string { return t.name }

// DefaultName is the name of the entry that can never be removed.
func (t *Table[T]) DefaultName() string { return t.defaultName }

func (t *Table[T]) Len() int { return len(t.entries) }

// All returns the entries in insertion order.
func (t *Table[T]) All() []T {
	return append([]T(nil), t.entries...)
}

// Entries returns the entries as TableEntry values, in insertion order.
func (t *Table[T]) Entries() []TableEntry {
	out := make([]TableEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = e
	}
	return out
}

// Get looks an entry up by name, ignoring case.
func (t *Table[T]) Get(name string) (T, bool) {
	e, ok := t.index[strings.ToLower(name)]
	return e, ok
}

func (t *Table[T]) Contains(name string) bool {
	_, ok := t.index[strings.ToLower(name)]
	return ok
}

// Default returns the default entry, creating it when the table lacks one.
func (t *Table[T]) Default() T {
	if e, ok := t.Get(t.defaultName); ok {
		return e
	}
	e := t.newEntry(t.defaultName)
	_ = t.Add(e)
	return e
}

// Add inserts a free entry. When the table is attached the entry is attached
// to the same document.
func (t *Table[T]) Add(e T) error {
	var zero T
	if e == zero {
		return ErrNilObject
	}
	name := e.Name()
	if name == "" {
		return ErrEmptyName
	}
	key := strings.ToLower(name)
	if _, exists := t.index[key]; exists {
		return fmt.Errorf("%w: %s %q", ErrDuplicateName, t.name, name)
	}
	if e.Document() != nil {
		return ErrAlreadyAttached
	}

	t.entries = append(t.entries, e)
	t.index[key] = e
	e.Common().rename = t.renamer(e)

	if t.doc != nil {
		if err := t.doc.attach(e, t.handle); err != nil {
			t.unlink(e)
			return err
		}
	}
	return nil
}

// Remove deletes the named entry. Every object referencing it is reassigned
// to the table default before the entry is detached.
func (t *Table[T]) Remove(name string) (T, error) {
	var zero T
	e, ok := t.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: %s %q", ErrNotFound, t.name, name)
	}
	if t.IsProtected(name) {
		return zero, fmt.Errorf("%w: %s %q", ErrProtectedEntry, t.name, name)
	}

	t.unlink(e)
	t.observers.notify(t, e)
	if t.doc != nil {
		t.doc.detach(e)
	}
	return e, nil
}

// IsProtected reports whether the named entry can never be removed.
func (t *Table[T]) IsProtected(name string) bool {
	if strings.EqualFold(name, t.defaultName) {
		return true
	}
	for _, p := range t.protected {
		if strings.EqualFold(name, p) {
			return true
		}
	}
	return false
}

func (t *Table[T]) unlink(e T) {
	delete(t.index, strings.ToLower(e.Name()))
	for i, x := range t.entries {
		if x == e {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			break
		}
	}
	e.Common().rename = nil
}

func (t *Table[T]) renamer(e T) func(old, new string) error {
	return func(old, new string) error {
		oldKey, newKey := strings.ToLower(old), strings.ToLower(new)
		if oldKey == newKey {
			return nil
		}
		if t.IsProtected(old) {
			return fmt.Errorf("%w: %s %q", ErrProtectedEntry, t.name, old)
		}
		if _, exists := t.index[newKey]; exists {
			return fmt.Errorf("%w: %s %q", ErrDuplicateName, t.name, new)
		}
		delete(t.index, oldKey)
		t.index[newKey] = e
		return nil
	}
}

// resolve is the single choke point used by reference setters: an entry with
// the same name already in the table wins, otherwise v is added. Entries owned
// by another document are copied first.
func (t *Table[T]) resolve(v T) T {
	var zero T
	if v == zero {
		return t.fallbackEntry("")
	}
	if existing, ok := t.Get(v.Name()); ok {
		return existing
	}
	if v.Document() != nil {
		v = v.Clone().(T)
	}
	if err := t.Add(v); err != nil {
		return t.fallbackEntry("")
	}
	return v
}

func (t *Table[T]) fallbackEntry(name string) T {
	if name != "" {
		if e, ok := t.Get(name); ok {
			return e
		}
	}
	return t.Default()
}

func (t *Table[T]) fallback(name string) CadObject {
	return t.fallbackEntry(name)
}

func (t *Table[T]) children() []CadObject {
	out := make([]CadObject, len(t.entries))
	for i, e := range t.entries {
		out[i] = e
	}
	return out
}

func (t *Table[T]) Clone() CadObject {
	c := newTable(t.name, t.defaultName, t.newEntry, t.protected...)
	c.ObjectBase = t.ObjectBase.cloneBase()
	for _, e := range t.entries {
		_ = c.Add(e.Clone().(T))
	}
	return c
}
