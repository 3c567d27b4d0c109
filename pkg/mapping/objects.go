package mapping

import (
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

func dictionaryMapping() *Mapping {
	return &Mapping{ObjectName: "DICTIONARY", Subclasses: []Subclass{
		{Name: "AcDbDictionary", Fields: []*Field{
			Scalar("HardOwner", 280,
				func(d *models.CadDictionary) bool { return d.HardOwner },
				func(d *models.CadDictionary, v bool) { d.HardOwner = v }).WithDefault(false),
			Scalar("Cloning", 281,
				func(d *models.CadDictionary) models.DuplicateRecordCloning { return d.Cloning },
				func(d *models.CadDictionary, v models.DuplicateRecordCloning) { d.Cloning = v }),
			// name/handle pairs written by the dictionary emitter
			Scalar("Entries", 3, func(d *models.CadDictionary) int { return d.Len() }, nil).Ignore(),
		}},
	}}
}

func xrecordMapping() *Mapping {
	return &Mapping{ObjectName: "XRECORD", Subclasses: []Subclass{
		{Name: "AcDbXrecord", Fields: []*Field{
			Scalar("Cloning", 280,
				func(x *models.XRecord) models.DuplicateRecordCloning { return x.Cloning },
				func(x *models.XRecord, v models.DuplicateRecordCloning) { x.Cloning = v }),
			// free pairs written by the xrecord emitter
			Scalar("Entries", 1, func(x *models.XRecord) int { return len(x.Entries) }, nil).Ignore(),
		}},
	}}
}

func groupMapping() *Mapping {
	entities := HandleRef("Entities", 340,
		func(g *models.Group) models.Entity { return nil },
		func(g *models.Group, e models.Entity) { _ = g.Add(e) }).Ignore()
	return &Mapping{ObjectName: "GROUP", Subclasses: []Subclass{
		{Name: "AcDbGroup", Fields: []*Field{
			Scalar("Description", 300,
				func(g *models.Group) string { return g.Description },
				func(g *models.Group, v string) { g.Description = v }),
			Scalar("IsUnnamed", 70,
				func(g *models.Group) bool { return g.IsUnnamed },
				func(g *models.Group, v bool) { g.IsUnnamed = v }),
			Scalar("Selectable", 71,
				func(g *models.Group) bool { return g.Selectable },
				func(g *models.Group, v bool) { g.Selectable = v }),
			// one 340 per member, written by the group emitter
			entities,
		}},
	}}
}

func materialMapping() *Mapping {
	name := Scalar("Name", 1, func(m *models.Material) string { return m.Name() }, nil)
	name.Set = func(dst any, _ int, value any) error {
		s, err := convert[string]("Name", value)
		if err != nil {
			return err
		}
		return dst.(*models.Material).SetName(s)
	}
	return &Mapping{ObjectName: "MATERIAL", Subclasses: []Subclass{
		{Name: "AcDbMaterial", Fields: []*Field{
			name,
			Scalar("Description", 2,
				func(m *models.Material) string { return m.Description },
				func(m *models.Material, v string) { m.Description = v }).WithDefault(""),
		}},
	}}
}
