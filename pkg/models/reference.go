package models

// reference is a field of a CadObject that points into a document-scoped
// collection. Every assignment goes through the collection's resolve step so
// an attached object never points outside its own document.
type reference interface {
	// join resolves the current value into doc and subscribes to removals.
	join(doc *Document)
	// leave unsubscribes and replaces the value with a free deep copy.
	leave(doc *Document)
	// cloneValue replaces the value with a free deep copy.
	cloneValue()
}

// entrySource is a collection that notifies removals.
type entrySource interface {
	// fallback returns the entry that replaces a removed one. An empty name
	// selects the collection default, which may be nil.
	fallback(name string) CadObject
}

type removalObserver interface {
	entryRemoved(src entrySource, entry CadObject)
}

// observerSet is the explicit subscriber list of a collection.
type observerSet struct {
	m map[removalObserver]struct{}
}

func (s *observerSet) subscribe(o removalObserver) {
	if s.m == nil {
		s.m = make(map[removalObserver]struct{})
	}
	s.m[o] = struct{}{}
}

func (s *observerSet) unsubscribe(o removalObserver) {
	delete(s.m, o)
}

func (s *observerSet) len() int {
	return len(s.m)
}

func (s *observerSet) notify(src entrySource, entry CadObject) {
	if len(s.m) == 0 {
		return
	}
	snapshot := make([]removalObserver, 0, len(s.m))
	for o := range s.m {
		snapshot = append(snapshot, o)
	}
	for _, o := range snapshot {
		o.entryRemoved(src, entry)
	}
}

// tableRef is a non-nullable reference to a table entry.
type tableRef[T entry] struct {
	value    T
	table    func(*Document) *Table[T]
	free     func() T
	fallback string
}

func newTableRef[T entry](table func(*Document) *Table[T], free func() T, fallback string) tableRef[T] {
	return tableRef[T]{value: free(), table: table, free: free, fallback: fallback}
}

func (r *tableRef[T]) get() T {
	return r.value
}

func (r *tableRef[T]) set(doc *Document, v T) {
	var zero T
	switch {
	case v == zero && doc != nil:
		r.value = r.table(doc).fallbackEntry(r.fallback)
	case v == zero:
		r.value = r.free()
	case doc != nil:
		r.value = r.table(doc).resolve(v)
	default:
		r.value = v
	}
}

func (r *tableRef[T]) join(doc *Document) {
	t := r.table(doc)
	r.set(doc, r.value)
	t.observers.subscribe(r)
}

func (r *tableRef[T]) leave(doc *Document) {
	r.table(doc).observers.unsubscribe(r)
	r.cloneValue()
}

func (r *tableRef[T]) cloneValue() {
	var zero T
	if r.value != zero {
		r.value = r.value.Clone().(T)
	}
}

func (r *tableRef[T]) entryRemoved(src entrySource, e CadObject) {
	if CadObject(r.value) != e {
		return
	}
	if fb, ok := src.fallback(r.fallback).(T); ok {
		r.value = fb
		return
	}
	r.value = r.free()
}

// dictRef is a nullable reference to an entry of a document dictionary. The
// dictionary is only looked up, and created, once a value is assigned.
type dictRef[T namedObject] struct {
	value T
	dict  func(*Document) *CadDictionary
	src   *CadDictionary
}

func (r *dictRef[T]) get() T {
	return r.value
}

func (r *dictRef[T]) set(doc *Document, v T) {
	var zero T
	if v != zero && doc != nil {
		v = r.resolve(doc, v)
	}
	r.value = v
}

func (r *dictRef[T]) resolve(doc *Document, v T) T {
	var zero T
	d := r.dict(doc)
	if r.src != d {
		r.unsubscribe()
		d.observers.subscribe(r)
		r.src = d
	}
	if existing, ok := d.Get(v.Name()); ok {
		if e, ok := existing.(T); ok {
			return e
		}
		return zero
	}
	if v.Document() != nil {
		v = v.Clone().(T)
	}
	if err := d.Add(v); err != nil {
		return zero
	}
	return v
}

func (r *dictRef[T]) unsubscribe() {
	if r.src != nil {
		r.src.observers.unsubscribe(r)
		r.src = nil
	}
}

func (r *dictRef[T]) join(doc *Document) {
	r.set(doc, r.value)
}

func (r *dictRef[T]) leave(*Document) {
	r.unsubscribe()
	r.cloneValue()
}

func (r *dictRef[T]) cloneValue() {
	var zero T
	r.src = nil
	if r.value != zero {
		r.value = r.value.Clone().(T)
	}
}

func (r *dictRef[T]) entryRemoved(_ entrySource, e CadObject) {
	var zero T
	if r.value != zero && CadObject(r.value) == e {
		r.value = zero
	}
}
