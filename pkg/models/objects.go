package models

// Standard materials every document carries.
const (
	MaterialByLayer = "ByLayer"
	MaterialByBlock = "ByBlock"
	MaterialGlobal  = "Global"
)

func materialsOf(d *Document) *CadDictionary { return d.Materials() }

// Material is a named render material stored in ACAD_MATERIAL.
type Material struct {
	NonGraphicalBase
	Description string
}

func NewMaterial(name string) *Material {
	m := &Material{}
	m.name = name
	return m
}

func (m *Material) ObjectType() ObjectType { return TypeMaterial }
func (m *Material) ObjectName() string     { return "MATERIAL" }
func (m *Material) SubclassMarker() string { return "AcDbMaterial" }

func (m *Material) Clone() CadObject {
	c := *m
	c.NonGraphicalBase = m.cloneNonGraphicalBase()
	return &c
}

// XRecordEntry is one free (code, value) pair of an XRecord.
type XRecordEntry struct {
	Code  int
	Value any
}

// XRecord stores arbitrary pairs in a dictionary.
type XRecord struct {
	NonGraphicalBase
	Cloning DuplicateRecordCloning
	Entries []XRecordEntry
}

func NewXRecord(name string) *XRecord {
	x := &XRecord{Cloning: CloningKeepExisting}
	x.name = name
	return x
}

func (x *XRecord) ObjectType() ObjectType { return TypeXRecord }
func (x *XRecord) ObjectName() string     { return "XRECORD" }
func (x *XRecord) SubclassMarker() string { return "AcDbXrecord" }

// Append adds a pair to the record.
func (x *XRecord) Append(code int, value any) {
	x.Entries = append(x.Entries, XRecordEntry{Code: code, Value: value})
}

func (x *XRecord) Clone() CadObject {
	c := *x
	c.NonGraphicalBase = x.cloneNonGraphicalBase()
	c.Entries = append([]XRecordEntry(nil), x.Entries...)
	return &c
}

// Group is a named selection of entities stored in ACAD_GROUP. Members are
// weak references: the group never owns them.
type Group struct {
	NonGraphicalBase
	Description string
	IsUnnamed   bool
	Selectable  bool

	members []Entity
}

func NewGroup(name string) *Group {
	g := &Group{Selectable: true}
	g.name = name
	return g
}

func (g *Group) ObjectType() ObjectType { return TypeGroup }
func (g *Group) ObjectName() string     { return "GROUP" }
func (g *Group) SubclassMarker() string { return "AcDbGroup" }

// Entities returns the members that still belong to the group's document.
// A free group returns every member.
func (g *Group) Entities() []Entity {
	out := make([]Entity, 0, len(g.members))
	for _, e := range g.members {
		if g.doc == nil || e.Document() == g.doc {
			out = append(out, e)
		}
	}
	return out
}

// Add appends a member. An attached group only accepts entities of its own
// document.
func (g *Group) Add(e Entity) error {
	if isNil(e) {
		return ErrNilObject
	}
	if g.doc != nil && e.Document() != g.doc {
		return ErrWrongDocument
	}
	for _, m := range g.members {
		if m == e {
			return nil
		}
	}
	g.members = append(g.members, e)
	return nil
}

// Remove drops a member and reports whether it was present.
func (g *Group) Remove(e Entity) bool {
	for i, m := range g.members {
		if m == e {
			g.members = append(g.members[:i], g.members[i+1:]...)
			return true
		}
	}
	return false
}

// Clone copies the group without members, since they belong to a document.
func (g *Group) Clone() CadObject {
	c := *g
	c.NonGraphicalBase = g.cloneNonGraphicalBase()
	c.members = nil
	return &c
}
