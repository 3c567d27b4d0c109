package mapping

import (
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

func thickness[T any](get func(T) *float64) *Field {
	return Scalar("Thickness", 39,
		func(o T) float64 { return *get(o) },
		func(o T, v float64) { *get(o) = v }).WithDefault(0.0)
}

func normal[T any](get func(T) *models.XYZ) *Field {
	return Vector3("Normal", 210,
		func(o T) models.XYZ { return *get(o) },
		func(o T, v models.XYZ) { *get(o) = v }).WithDefault(models.ZAxis)
}

func pointMapping() *Mapping {
	return entity("POINT", Subclass{Name: "AcDbPoint", Fields: []*Field{
		Vector3("Location", 10,
			func(p *models.Point) models.XYZ { return p.Location },
			func(p *models.Point, v models.XYZ) { p.Location = v }),
		thickness(func(p *models.Point) *float64 { return &p.Thickness }),
		normal(func(p *models.Point) *models.XYZ { return &p.Normal }),
		Scalar("XAxisAngle", 50,
			func(p *models.Point) float64 { return p.XAxisAngle },
			func(p *models.Point, v float64) { p.XAxisAngle = v }).Angle().WithDefault(0.0),
	}})
}

func lineMapping() *Mapping {
	return entity("LINE", Subclass{Name: "AcDbLine", Fields: []*Field{
		thickness(func(l *models.Line) *float64 { return &l.Thickness }),
		Vector3("Start", 10,
			func(l *models.Line) models.XYZ { return l.Start },
			func(l *models.Line, v models.XYZ) { l.Start = v }),
		Vector3("End", 11,
			func(l *models.Line) models.XYZ { return l.End },
			func(l *models.Line, v models.XYZ) { l.End = v }),
		normal(func(l *models.Line) *models.XYZ { return &l.Normal }),
	}})
}

// circleOf gives Arc the AcDbCircle block of Circle.
func circleOf(o any) *models.Circle {
	switch c := o.(type) {
	case *models.Circle:
		return c
	case *models.Arc:
		return &c.Circle
	}
	return nil
}

func circleBlock() Subclass {
	return Subclass{Name: "AcDbCircle", Fields: []*Field{
		thickness(func(o any) *float64 { return &circleOf(o).Thickness }),
		Vector3("Center", 10,
			func(o any) models.XYZ { return circleOf(o).Center },
			func(o any, v models.XYZ) { circleOf(o).Center = v }),
		Scalar("Radius", 40,
			func(o any) float64 { return circleOf(o).Radius },
			func(o any, v float64) { circleOf(o).Radius = v }),
		normal(func(o any) *models.XYZ { return &circleOf(o).Normal }),
	}}
}

func circleMapping() *Mapping {
	return entity("CIRCLE", circleBlock())
}

func arcMapping() *Mapping {
	return entity("ARC", circleBlock(), Subclass{Name: "AcDbArc", Fields: []*Field{
		Scalar("StartAngle", 50,
			func(a *models.Arc) float64 { return a.StartAngle },
			func(a *models.Arc, v float64) { a.StartAngle = v }).Angle(),
		Scalar("EndAngle", 51,
			func(a *models.Arc) float64 { return a.EndAngle },
			func(a *models.Arc, v float64) { a.EndAngle = v }).Angle(),
	}})
}

func ellipseMapping() *Mapping {
	return entity("ELLIPSE", Subclass{Name: "AcDbEllipse", Fields: []*Field{
		Vector3("Center", 10,
			func(e *models.Ellipse) models.XYZ { return e.Center },
			func(e *models.Ellipse, v models.XYZ) { e.Center = v }),
		Vector3("MajorAxisEndPoint", 11,
			func(e *models.Ellipse) models.XYZ { return e.MajorAxisEndPoint },
			func(e *models.Ellipse, v models.XYZ) { e.MajorAxisEndPoint = v }),
		normal(func(e *models.Ellipse) *models.XYZ { return &e.Normal }),
		Scalar("RadiusRatio", 40,
			func(e *models.Ellipse) float64 { return e.RadiusRatio },
			func(e *models.Ellipse, v float64) { e.RadiusRatio = v }),
		Scalar("StartParameter", 41,
			func(e *models.Ellipse) float64 { return e.StartParameter },
			func(e *models.Ellipse, v float64) { e.StartParameter = v }),
		Scalar("EndParameter", 42,
			func(e *models.Ellipse) float64 { return e.EndParameter },
			func(e *models.Ellipse, v float64) { e.EndParameter = v }),
	}})
}

// textOf gives the attribute types the AcDbText block of Text.
func textOf(o any) *models.Text {
	switch t := o.(type) {
	case *models.Text:
		return t
	case *models.AttributeDefinition:
		return &t.Text
	case *models.AttributeEntity:
		return &t.Text
	}
	return nil
}

func textBlock() Subclass {
	return Subclass{Name: "AcDbText", Fields: []*Field{
		thickness(func(o any) *float64 { return &textOf(o).Thickness }),
		Vector3("InsertPoint", 10,
			func(o any) models.XYZ { return textOf(o).InsertPoint },
			func(o any, v models.XYZ) { textOf(o).InsertPoint = v }),
		Scalar("Height", 40,
			func(o any) float64 { return textOf(o).Height },
			func(o any, v float64) { textOf(o).Height = v }),
		Scalar("Value", 1,
			func(o any) string { return textOf(o).Value },
			func(o any, v string) { textOf(o).Value = v }),
		Scalar("Rotation", 50,
			func(o any) float64 { return textOf(o).Rotation },
			func(o any, v float64) { textOf(o).Rotation = v }).Angle().WithDefault(0.0),
		Scalar("WidthFactor", 41,
			func(o any) float64 { return textOf(o).WidthFactor },
			func(o any, v float64) { textOf(o).WidthFactor = v }).WithDefault(1.0),
		Scalar("ObliqueAngle", 51,
			func(o any) float64 { return textOf(o).ObliqueAngle },
			func(o any, v float64) { textOf(o).ObliqueAngle = v }).Angle().WithDefault(0.0),
		NameRef("Style", 7,
			func(o any) *models.TextStyle { return textOf(o).Style() },
			func(doc *models.Document, o any, name string) error {
				textOf(o).SetStyle(entryOrNew(doc.TextStyles, name, models.NewTextStyle))
				return nil
			}).WithDefault(models.DefaultTextStyleName),
		Scalar("HorizontalAlignment", 72,
			func(o any) models.TextHorizontalAlignment { return textOf(o).HorizontalAlignment },
			func(o any, v models.TextHorizontalAlignment) { textOf(o).HorizontalAlignment = v }).WithDefault(models.TextAlignLeft),
		Vector3("AlignmentPoint", 11,
			func(o any) models.XYZ { return textOf(o).AlignmentPoint },
			func(o any, v models.XYZ) { textOf(o).AlignmentPoint = v }).WithDefault(models.XYZ{}),
		normal(func(o any) *models.XYZ { return &textOf(o).Normal }),
	}}
}

func textMapping() *Mapping {
	return entity("TEXT", textBlock(), Subclass{Name: "AcDbText", Fields: []*Field{
		Scalar("VerticalAlignment", 73,
			func(t *models.Text) models.TextVerticalAlignment { return t.VerticalAlignment },
			func(t *models.Text, v models.TextVerticalAlignment) { t.VerticalAlignment = v }).WithDefault(models.TextAlignBaseline),
	}})
}

func attributeDefinitionMapping() *Mapping {
	return entity("ATTDEF", textBlock(), Subclass{Name: "AcDbAttributeDefinition", Fields: []*Field{
		Scalar("Prompt", 3,
			func(a *models.AttributeDefinition) string { return a.Prompt },
			func(a *models.AttributeDefinition, v string) { a.Prompt = v }),
		Scalar("Tag", 2,
			func(a *models.AttributeDefinition) string { return a.Tag },
			func(a *models.AttributeDefinition, v string) { a.Tag = v }),
		Scalar("Flags", 70,
			func(a *models.AttributeDefinition) int16 { return a.Flags },
			func(a *models.AttributeDefinition, v int16) { a.Flags = v }),
		Scalar("VerticalAlignment", 74,
			func(a *models.AttributeDefinition) models.TextVerticalAlignment { return a.VerticalAlignment },
			func(a *models.AttributeDefinition, v models.TextVerticalAlignment) { a.VerticalAlignment = v }).WithDefault(models.TextAlignBaseline),
	}})
}

func attributeEntityMapping() *Mapping {
	return entity("ATTRIB", textBlock(), Subclass{Name: "AcDbAttribute", Fields: []*Field{
		Scalar("Tag", 2,
			func(a *models.AttributeEntity) string { return a.Tag },
			func(a *models.AttributeEntity, v string) { a.Tag = v }),
		Scalar("Flags", 70,
			func(a *models.AttributeEntity) int16 { return a.Flags },
			func(a *models.AttributeEntity, v int16) { a.Flags = v }),
		Scalar("VerticalAlignment", 74,
			func(a *models.AttributeEntity) models.TextVerticalAlignment { return a.VerticalAlignment },
			func(a *models.AttributeEntity, v models.TextVerticalAlignment) { a.VerticalAlignment = v }).WithDefault(models.TextAlignBaseline),
	}})
}

func insertMapping() *Mapping {
	scale := func(name string, code int, axis int) *Field {
		return Scalar(name, code,
			func(i *models.Insert) float64 { return i.Scale.Components()[axis] },
			func(i *models.Insert, v float64) { i.Scale = i.Scale.WithComponent(axis, v) }).WithDefault(1.0)
	}
	return entity("INSERT", Subclass{Name: "AcDbBlockReference", Fields: []*Field{
		Scalar("HasAttributes", 66,
			func(i *models.Insert) int16 {
				if i.Attributes().Len() > 0 {
					return 1
				}
				return 0
			}, nil).WithDefault(int16(0)),
		NameRef("Block", 2,
			func(i *models.Insert) *models.BlockRecord { return i.Block() },
			func(doc *models.Document, i *models.Insert, name string) error {
				i.SetBlock(entryOrNew(doc.BlockRecords, name, models.NewBlockRecord))
				return nil
			}),
		Vector3("InsertPoint", 10,
			func(i *models.Insert) models.XYZ { return i.InsertPoint },
			func(i *models.Insert, v models.XYZ) { i.InsertPoint = v }),
		scale("XScale", 41, 0),
		scale("YScale", 42, 1),
		scale("ZScale", 43, 2),
		Scalar("Rotation", 50,
			func(i *models.Insert) float64 { return i.Rotation },
			func(i *models.Insert, v float64) { i.Rotation = v }).Angle().WithDefault(0.0),
		Scalar("ColumnCount", 70,
			func(i *models.Insert) int16 { return i.ColumnCount },
			func(i *models.Insert, v int16) { i.ColumnCount = v }).WithDefault(int16(1)),
		Scalar("RowCount", 71,
			func(i *models.Insert) int16 { return i.RowCount },
			func(i *models.Insert, v int16) { i.RowCount = v }).WithDefault(int16(1)),
		Scalar("ColumnSpacing", 44,
			func(i *models.Insert) float64 { return i.ColumnSpacing },
			func(i *models.Insert, v float64) { i.ColumnSpacing = v }).WithDefault(0.0),
		Scalar("RowSpacing", 45,
			func(i *models.Insert) float64 { return i.RowSpacing },
			func(i *models.Insert, v float64) { i.RowSpacing = v }).WithDefault(0.0),
		normal(func(i *models.Insert) *models.XYZ { return &i.Normal }),
	}})
}

func polyline2DMapping() *Mapping {
	return entity("POLYLINE", Subclass{Name: "AcDb2dPolyline", Fields: []*Field{
		Scalar("VerticesFollow", 66, func(*models.Polyline2D) int16 { return 1 }, nil),
		Vector3("Elevation", 10,
			func(p *models.Polyline2D) models.XYZ { return models.XYZ{Z: p.Elevation} },
			func(p *models.Polyline2D, v models.XYZ) { p.Elevation = v.Z }),
		Scalar("Flags", 70,
			func(p *models.Polyline2D) int16 { return p.Flags },
			func(p *models.Polyline2D, v int16) { p.Flags = v }).WithDefault(int16(0)),
		Scalar("StartWidth", 40,
			func(p *models.Polyline2D) float64 { return p.StartWidth },
			func(p *models.Polyline2D, v float64) { p.StartWidth = v }).WithDefault(0.0),
		Scalar("EndWidth", 41,
			func(p *models.Polyline2D) float64 { return p.EndWidth },
			func(p *models.Polyline2D, v float64) { p.EndWidth = v }).WithDefault(0.0),
		normal(func(p *models.Polyline2D) *models.XYZ { return &p.Normal }),
	}})
}

func polyline3DMapping() *Mapping {
	return entity("POLYLINE", Subclass{Name: "AcDb3dPolyline", Fields: []*Field{
		Scalar("VerticesFollow", 66, func(*models.Polyline3D) int16 { return 1 }, nil),
		Vector3("Elevation", 10,
			func(p *models.Polyline3D) models.XYZ { return models.XYZ{Z: p.Elevation} },
			func(p *models.Polyline3D, v models.XYZ) { p.Elevation = v.Z }),
		Scalar("Flags", 70,
			func(p *models.Polyline3D) int16 { return p.Flags },
			func(p *models.Polyline3D, v int16) { p.Flags = v }),
	}})
}

func vertex2DMapping() *Mapping {
	return entity("VERTEX", Subclass{Name: "AcDbVertex"}, Subclass{Name: "AcDb2dVertex", Fields: []*Field{
		Vector3("Location", 10,
			func(v *models.Vertex2D) models.XYZ { return v.Location },
			func(v *models.Vertex2D, p models.XYZ) { v.Location = p }),
		Scalar("StartWidth", 40,
			func(v *models.Vertex2D) float64 { return v.StartWidth },
			func(v *models.Vertex2D, x float64) { v.StartWidth = x }).WithDefault(0.0),
		Scalar("EndWidth", 41,
			func(v *models.Vertex2D) float64 { return v.EndWidth },
			func(v *models.Vertex2D, x float64) { v.EndWidth = x }).WithDefault(0.0),
		Scalar("Bulge", 42,
			func(v *models.Vertex2D) float64 { return v.Bulge },
			func(v *models.Vertex2D, x float64) { v.Bulge = x }).WithDefault(0.0),
		Scalar("Flags", 70,
			func(v *models.Vertex2D) int16 { return v.Flags },
			func(v *models.Vertex2D, x int16) { v.Flags = x }),
	}})
}

func vertex3DMapping() *Mapping {
	return entity("VERTEX", Subclass{Name: "AcDbVertex"}, Subclass{Name: "AcDb3dPolylineVertex", Fields: []*Field{
		Vector3("Location", 10,
			func(v *models.Vertex3D) models.XYZ { return v.Location },
			func(v *models.Vertex3D, p models.XYZ) { v.Location = p }),
		Scalar("Flags", 70,
			func(v *models.Vertex3D) int16 { return v.Flags },
			func(v *models.Vertex3D, x int16) { v.Flags = x }),
	}})
}

func lwPolylineMapping() *Mapping {
	return entity("LWPOLYLINE", Subclass{Name: "AcDbPolyline", Fields: []*Field{
		Scalar("Flags", 70,
			func(p *models.LwPolyline) int16 { return p.Flags },
			func(p *models.LwPolyline, v int16) { p.Flags = v }),
		Scalar("ConstantWidth", 43,
			func(p *models.LwPolyline) float64 { return p.ConstantWidth },
			func(p *models.LwPolyline, v float64) { p.ConstantWidth = v }).WithDefault(0.0),
		Scalar("Elevation", 38,
			func(p *models.LwPolyline) float64 { return p.Elevation },
			func(p *models.LwPolyline, v float64) { p.Elevation = v }).WithDefault(0.0),
		thickness(func(p *models.LwPolyline) *float64 { return &p.Thickness }),
		Counted("Vertices", 90,
			func(p *models.LwPolyline) []models.LwVertex { return p.Vertices },
			func(p *models.LwPolyline) *models.LwVertex {
				p.Vertices = append(p.Vertices, models.LwVertex{})
				return &p.Vertices[len(p.Vertices)-1]
			},
			Vector2("Location", 10,
				func(v *models.LwVertex) models.XY { return v.Location },
				func(v *models.LwVertex, p models.XY) { v.Location = p }),
			Scalar("StartWidth", 40,
				func(v *models.LwVertex) float64 { return v.StartWidth },
				func(v *models.LwVertex, x float64) { v.StartWidth = x }).WithDefault(0.0),
			Scalar("EndWidth", 41,
				func(v *models.LwVertex) float64 { return v.EndWidth },
				func(v *models.LwVertex, x float64) { v.EndWidth = x }).WithDefault(0.0),
			Scalar("Bulge", 42,
				func(v *models.LwVertex) float64 { return v.Bulge },
				func(v *models.LwVertex, x float64) { v.Bulge = x }).WithDefault(0.0),
		),
		normal(func(p *models.LwPolyline) *models.XYZ { return &p.Normal }),
	}})
}

func hatchMapping() *Mapping {
	return entity("HATCH", Subclass{Name: "AcDbHatch", Fields: []*Field{
		Vector3("Elevation", 10,
			func(h *models.Hatch) models.XYZ { return models.XYZ{Z: h.Elevation} },
			func(h *models.Hatch, v models.XYZ) { h.Elevation = v.Z }),
		Vector3("Normal", 210,
			func(h *models.Hatch) models.XYZ { return h.Normal },
			func(h *models.Hatch, v models.XYZ) { h.Normal = v }),
		Scalar("PatternName", 2,
			func(h *models.Hatch) string { return h.PatternName },
			func(h *models.Hatch, v string) { h.PatternName = v }),
		Scalar("IsSolid", 70,
			func(h *models.Hatch) bool { return h.IsSolid },
			func(h *models.Hatch, v bool) { h.IsSolid = v }),
		Scalar("Associative", 71,
			func(h *models.Hatch) bool { return h.Associative },
			func(h *models.Hatch, v bool) { h.Associative = v }),
		// boundary paths have a nested, edge-typed layout written by the
		// hatch emitter
		Scalar("Paths", 91, func(h *models.Hatch) int32 { return int32(len(h.Paths)) }, nil).Ignore(),
		Scalar("Style", 75,
			func(h *models.Hatch) int16 { return h.Style },
			func(h *models.Hatch, v int16) { h.Style = v }),
		Scalar("PatternType", 76,
			func(h *models.Hatch) models.HatchPatternType { return h.PatternType },
			func(h *models.Hatch, v models.HatchPatternType) { h.PatternType = v }),
		Scalar("PatternAngle", 52,
			func(h *models.Hatch) float64 { return h.PatternAngle },
			func(h *models.Hatch, v float64) { h.PatternAngle = v }).Angle(),
		Scalar("PatternScale", 41,
			func(h *models.Hatch) float64 { return h.PatternScale },
			func(h *models.Hatch, v float64) { h.PatternScale = v }),
		Counted("SeedPoints", 98,
			func(h *models.Hatch) []models.XY { return h.SeedPoints },
			func(h *models.Hatch) *models.XY {
				h.SeedPoints = append(h.SeedPoints, models.XY{})
				return &h.SeedPoints[len(h.SeedPoints)-1]
			},
			Vector2("Point", 10,
				func(p *models.XY) models.XY { return *p },
				func(p *models.XY, v models.XY) { *p = v }),
		),
	}})
}
