package models

// Entity is a graphical CadObject. Layer and line type are never nil.
type Entity interface {
	CadObject
	Layer() *Layer
	SetLayer(layer *Layer)
	LineType() *LineType
	SetLineType(lt *LineType)
	Material() *Material
	SetMaterial(m *Material)
	// Common exposes the shared entity properties to the codec.
	Common() *EntityBase
}

// EntityBase carries the visual properties shared by every entity.
type EntityBase struct {
	ObjectBase
	Color         Color
	LineWeight    LineWeight
	LineTypeScale float64
	Transparency  Transparency
	IsInvisible   bool

	layer    tableRef[*Layer]
	lineType tableRef[*LineType]
	material dictRef[*Material]
}

func newEntityBase() EntityBase {
	return EntityBase{
		Color:         ColorByLayer,
		LineWeight:    LineWeightByLayer,
		LineTypeScale: 1,
		Transparency:  TransparencyByLayer,
		layer:         newTableRef(layersOf, func() *Layer { return NewLayer(DefaultLayerName) }, ""),
		lineType:      newTableRef(lineTypesOf, func() *LineType { return NewLineType(LineTypeByLayer) }, ""),
		material:      dictRef[*Material]{dict: materialsOf},
	}
}

func (e *EntityBase) Layer() *Layer { return e.layer.get() }

// SetLayer assigns the entity layer. When the entity is attached the layer is
// resolved by name into the document Layers table; nil resets it to "0".
func (e *EntityBase) SetLayer(layer *Layer) { e.layer.set(e.doc, layer) }

func (e *EntityBase) LineType() *LineType { return e.lineType.get() }

// SetLineType assigns the entity line type; nil resets it to ByLayer.
func (e *EntityBase) SetLineType(lt *LineType) { e.lineType.set(e.doc, lt) }

func (e *EntityBase) Material() *Material { return e.material.get() }

func (e *EntityBase) SetMaterial(m *Material) { e.material.set(e.doc, m) }

func (e *EntityBase) Common() *EntityBase { return e }

func (e *EntityBase) references() []reference {
	return append(e.ObjectBase.references(), &e.layer, &e.lineType, &e.material)
}

func (e *EntityBase) cloneEntityBase() EntityBase {
	c := *e
	c.ObjectBase = e.ObjectBase.cloneBase()
	c.layer.cloneValue()
	c.lineType.cloneValue()
	c.material.cloneValue()
	return c
}

type entityEntry interface {
	comparable
	Entity
}

// EntityList is an ordered list of entities owned by a container: a block
// record, a polyline or an insert.
type EntityList[T entityEntry] struct {
	owner CadObject
	items []T
}

func newEntityList[T entityEntry](owner CadObject) *EntityList[T] {
	return &EntityList[T]{owner: owner}
}

func (l *EntityList[T]) Len() int { return len(l.items) }

// All returns the entities in order.
func (l *EntityList[T]) All() []T {
	return append([]T(nil), l.items...)
}

// Add appends a free entity. If the owner is attached the entity is attached
// to the same document.
func (l *EntityList[T]) Add(e T) error {
	var zero T
	if e == zero {
		return ErrNilObject
	}
	if e.Document() != nil {
		return ErrAlreadyAttached
	}
	l.items = append(l.items, e)
	if doc := l.owner.Document(); doc != nil {
		if err := doc.attach(e, l.owner.Handle()); err != nil {
			l.items = l.items[:len(l.items)-1]
			return err
		}
	}
	l.changed()
	return nil
}

// Remove takes e out of the list and detaches it. It reports whether e was
// found.
func (l *EntityList[T]) Remove(e T) bool {
	for i, x := range l.items {
		if x == e {
			l.items = append(l.items[:i], l.items[i+1:]...)
			if doc := e.Document(); doc != nil {
				doc.detach(e)
			}
			l.changed()
			return true
		}
	}
	return false
}

// chainOwner is implemented by owners whose children depend on the list
// length.
type chainOwner interface {
	chainChanged()
}

func (l *EntityList[T]) changed() {
	if o, ok := l.owner.(chainOwner); ok {
		o.chainChanged()
	}
}

func (l *EntityList[T]) objects() []CadObject {
	out := make([]CadObject, len(l.items))
	for i, e := range l.items {
		out[i] = e
	}
	return out
}

func (l *EntityList[T]) cloneFor(owner CadObject) *EntityList[T] {
	c := newEntityList[T](owner)
	for _, e := range l.items {
		c.items = append(c.items, e.Clone().(T))
	}
	return c
}
