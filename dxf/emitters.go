package dxf

import (
	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// emitter writes everything after the common header of one object type.
type emitter func(dw *docWriter, obj models.CadObject, m *mapping.Mapping) error

// defaultEmitters returns the types whose layout the catalog alone cannot
// describe. Every other type goes through writeGeneric.
func defaultEmitters() map[models.ObjectType]emitter {
	return map[models.ObjectType]emitter{
		models.TypePolyline2D: writePolyline,
		models.TypePolyline3D: writePolyline,
		models.TypeInsert:     writeInsert,
		models.TypeHatch:      writeHatch,
		models.TypeDictionary: writeDictionary,
		models.TypeXRecord:    writeXRecord,
		models.TypeGroup:      writeGroup,
	}
}

func writeGeneric(dw *docWriter, obj models.CadObject, m *mapping.Mapping) error {
	return writeWithHooks(dw, obj, m, nil)
}

func writeWithHooks(dw *docWriter, obj models.CadObject, m *mapping.Mapping, h hooks) error {
	if err := dw.writeSubclasses(obj, m, h); err != nil {
		return err
	}
	return dw.writeExtendedData(obj)
}

func writePolyline(dw *docWriter, obj models.CadObject, m *mapping.Mapping) error {
	if err := writeGeneric(dw, obj, m); err != nil {
		return err
	}
	var chain []models.CadObject
	switch p := obj.(type) {
	case *models.Polyline2D:
		for _, v := range p.Vertices().All() {
			chain = append(chain, v)
		}
		chain = append(chain, p.Seqend())
	case *models.Polyline3D:
		for _, v := range p.Vertices().All() {
			chain = append(chain, v)
		}
		chain = append(chain, p.Seqend())
	}
	return dw.writeChain(chain)
}

// writeInsert follows the INSERT with its attributes and a SEQEND, only when
// it has attributes.
func writeInsert(dw *docWriter, obj models.CadObject, m *mapping.Mapping) error {
	if err := writeGeneric(dw, obj, m); err != nil {
		return err
	}
	ins := obj.(*models.Insert)
	if ins.Attributes().Len() == 0 {
		return nil
	}
	var chain []models.CadObject
	for _, a := range ins.Attributes().All() {
		chain = append(chain, a)
	}
	return dw.writeChain(append(chain, ins.Seqend()))
}

func (dw *docWriter) writeChain(chain []models.CadObject) error {
	for _, c := range chain {
		if err := dw.writeObject(c); err != nil {
			return err
		}
	}
	return nil
}

func writeHatch(dw *docWriter, obj models.CadObject, m *mapping.Mapping) error {
	h := obj.(*models.Hatch)
	return writeWithHooks(dw, obj, m, hooks{
		"Paths": func() error {
			w := dw.w
			w.Write(91, int32(len(h.Paths)))
			for i := range h.Paths {
				p := &h.Paths[i]
				w.Write(92, p.Flags)
				if p.IsPolyline() {
					bulge := p.HasBulge()
					w.Write(72, bulge)
					w.Write(73, p.IsClosed)
					w.Write(93, int32(len(p.Vertices)))
					for _, v := range p.Vertices {
						w.Write(10, v.Location)
						if bulge {
							w.Write(42, v.Bulge)
						}
					}
				} else {
					w.Write(93, int32(len(p.Edges)))
					for _, e := range p.Edges {
						writeHatchEdge(w, e)
					}
				}
				// no source boundary objects
				w.Write(97, int32(0))
			}
			return nil
		},
	})
}

func writeHatchEdge(w StreamWriter, e models.HatchEdge) {
	w.Write(72, int16(e.EdgeType()))
	switch e := e.(type) {
	case models.HatchLineEdge:
		w.Write(10, e.Start)
		w.Write(11, e.End)
	case models.HatchArcEdge:
		w.Write(10, e.Center)
		w.Write(40, e.Radius)
		w.Write(50, toDegrees(e.StartAngle))
		w.Write(51, toDegrees(e.EndAngle))
		w.Write(73, e.CounterClockwise)
	case models.HatchEllipseEdge:
		w.Write(10, e.Center)
		w.Write(11, e.MajorAxisEndPoint)
		w.Write(40, e.MinorToMajorRatio)
		w.Write(50, toDegrees(e.StartAngle))
		w.Write(51, toDegrees(e.EndAngle))
		w.Write(73, e.CounterClockwise)
	}
}

// writeDictionary writes one name/handle pair per entry and queues the
// entries so they follow in the OBJECTS section.
func writeDictionary(dw *docWriter, obj models.CadObject, m *mapping.Mapping) error {
	d := obj.(*models.CadDictionary)
	return writeWithHooks(dw, obj, m, hooks{
		"Entries": func() error {
			code := 350
			if d.HardOwner {
				code = 360
			}
			for _, e := range d.Entries() {
				dw.w.Write(3, e.Name())
				dw.w.Write(code, e.Handle())
				dw.queue.Push(e)
			}
			return nil
		},
	})
}

func writeXRecord(dw *docWriter, obj models.CadObject, m *mapping.Mapping) error {
	x := obj.(*models.XRecord)
	return writeWithHooks(dw, obj, m, hooks{
		"Entries": func() error {
			for _, e := range x.Entries {
				dw.w.Write(e.Code, e.Value)
			}
			return nil
		},
	})
}

func writeGroup(dw *docWriter, obj models.CadObject, m *mapping.Mapping) error {
	g := obj.(*models.Group)
	return writeWithHooks(dw, obj, m, hooks{
		"Entities": func() error {
			for _, e := range g.Entities() {
				dw.w.Write(340, e.Handle())
			}
			return nil
		},
	})
}
