package mapping

import (
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// definitions holds the built-in builders, keyed by type.
var definitions = map[models.ObjectType]Builder{
	models.TypeAppID:          appIDMapping,
	models.TypeLayer:          layerMapping,
	models.TypeLineType:       lineTypeMapping,
	models.TypeTextStyle:      textStyleMapping,
	models.TypeDimensionStyle: dimensionStyleMapping,
	models.TypeView:           viewMapping,
	models.TypeUCS:            ucsMapping,
	models.TypeVPort:          vportMapping,
	models.TypeBlockRecord:    blockRecordMapping,

	models.TypeBlockEntity:         blockEntityMapping,
	models.TypeBlockEnd:            blockEndMapping,
	models.TypePoint:               pointMapping,
	models.TypeLine:                lineMapping,
	models.TypeCircle:              circleMapping,
	models.TypeArc:                 arcMapping,
	models.TypeEllipse:             ellipseMapping,
	models.TypeText:                textMapping,
	models.TypeAttributeDefinition: attributeDefinitionMapping,
	models.TypeAttributeEntity:     attributeEntityMapping,
	models.TypeInsert:              insertMapping,
	models.TypePolyline2D:          polyline2DMapping,
	models.TypePolyline3D:          polyline3DMapping,
	models.TypeVertex2D:            vertex2DMapping,
	models.TypeVertex3D:            vertex3DMapping,
	models.TypeLwPolyline:          lwPolylineMapping,
	models.TypeHatch:               hatchMapping,
	models.TypeSeqend:              seqendMapping,

	models.TypeDictionary: dictionaryMapping,
	models.TypeXRecord:    xrecordMapping,
	models.TypeGroup:      groupMapping,
	models.TypeMaterial:   materialMapping,
}

type tableEntry interface {
	comparable
	models.TableEntry
}

// entryOrNew returns the named entry of t, or a free one the caller assigns
// so the reference setter adds it to the table.
func entryOrNew[E tableEntry](t *models.Table[E], name string, create func(string) E) E {
	if e, ok := t.Get(name); ok {
		return e
	}
	return create(name)
}

// common blocks

func entityBlock() Subclass {
	return Subclass{Name: "AcDbEntity", Fields: []*Field{
		NameRef("Layer", 8,
			func(e models.Entity) *models.Layer { return e.Layer() },
			func(doc *models.Document, e models.Entity, name string) error {
				e.SetLayer(entryOrNew(doc.Layers, name, models.NewLayer))
				return nil
			}),
		NameRef("LineType", 6,
			func(e models.Entity) *models.LineType { return e.LineType() },
			func(doc *models.Document, e models.Entity, name string) error {
				e.SetLineType(entryOrNew(doc.LineTypes, name, models.NewLineType))
				return nil
			}).WithDefault(models.LineTypeByLayer),
		HandleRef("Material", 347,
			func(e models.Entity) *models.Material { return e.Material() },
			func(e models.Entity, m *models.Material) { e.SetMaterial(m) }).WithDefault(nil),
		Scalar("Color", 62,
			func(e models.Entity) any {
				if c := e.Common().Color; !c.IsTrueColor() {
					return c.Index()
				}
				return nil
			},
			func(e models.Entity, v any) {
				if i, err := convert[int16]("Color", v); err == nil {
					e.Common().Color = models.ColorIndex(i)
				}
			}).WithDefault(int16(256)),
		Scalar("LineWeight", 370,
			func(e models.Entity) models.LineWeight { return e.Common().LineWeight },
			func(e models.Entity, v models.LineWeight) { e.Common().LineWeight = v }).WithDefault(models.LineWeightByLayer),
		Scalar("LineTypeScale", 48,
			func(e models.Entity) float64 { return e.Common().LineTypeScale },
			func(e models.Entity, v float64) { e.Common().LineTypeScale = v }).WithDefault(1.0),
		Scalar("IsInvisible", 60,
			func(e models.Entity) bool { return e.Common().IsInvisible },
			func(e models.Entity, v bool) { e.Common().IsInvisible = v }).WithDefault(false),
		Scalar("TrueColor", 420,
			func(e models.Entity) any {
				if c := e.Common().Color; c.IsTrueColor() {
					return c.TrueValue()
				}
				return nil
			},
			func(e models.Entity, v any) {
				if i, err := convert[int32]("TrueColor", v); err == nil {
					e.Common().Color = models.ColorFromTrueValue(i)
				}
			}),
		Scalar("Transparency", 440,
			func(e models.Entity) models.Transparency { return e.Common().Transparency },
			func(e models.Entity, v models.Transparency) { e.Common().Transparency = v }).WithDefault(models.TransparencyByLayer),
	}}
}

func entity(objectName string, subclasses ...Subclass) *Mapping {
	return &Mapping{
		ObjectName: objectName,
		Subclasses: append([]Subclass{entityBlock()}, subclasses...),
	}
}

func entryName() *Field {
	f := Scalar("Name", 2, func(e models.TableEntry) string { return e.Name() }, nil)
	f.Set = func(dst any, _ int, value any) error {
		s, err := convert[string]("Name", value)
		if err != nil {
			return err
		}
		return dst.(models.TableEntry).SetName(s)
	}
	return f
}

func entryFlags() *Field {
	return Scalar("Flags", 70,
		func(e models.TableEntry) int16 { return e.Common().Flags },
		func(e models.TableEntry, v int16) { e.Common().Flags = v })
}

func table(objectName, marker string, fields ...*Field) *Mapping {
	return &Mapping{
		ObjectName: objectName,
		Subclasses: []Subclass{
			{Name: "AcDbSymbolTableRecord"},
			{Name: marker, Fields: append([]*Field{entryName(), entryFlags()}, fields...)},
		},
	}
}

// table entries

func appIDMapping() *Mapping {
	return table("APPID", "AcDbRegAppTableRecord")
}

func layerMapping() *Mapping {
	return table("LAYER", "AcDbLayerTableRecord",
		// a layer that is off is written with a negative color
		Scalar("Color", 62,
			func(l *models.Layer) int16 {
				i := l.Color.Index()
				if l.Color.IsTrueColor() {
					i = 7
				}
				if l.IsOff {
					return -i
				}
				return i
			},
			func(l *models.Layer, v int16) {
				l.IsOff = v < 0
				if v < 0 {
					v = -v
				}
				l.Color = models.ColorIndex(v)
			}),
		Scalar("TrueColor", 420,
			func(l *models.Layer) any {
				if l.Color.IsTrueColor() {
					return l.Color.TrueValue()
				}
				return nil
			},
			func(l *models.Layer, v any) {
				if i, err := convert[int32]("TrueColor", v); err == nil {
					l.Color = models.ColorFromTrueValue(i)
				}
			}),
		NameRef("LineType", 6,
			func(l *models.Layer) *models.LineType { return l.LineType() },
			func(doc *models.Document, l *models.Layer, name string) error {
				l.SetLineType(entryOrNew(doc.LineTypes, name, models.NewLineType))
				return nil
			}),
		Scalar("PlotFlag", 290,
			func(l *models.Layer) bool { return l.PlotFlag },
			func(l *models.Layer, v bool) { l.PlotFlag = v }).WithDefault(true),
		Scalar("LineWeight", 370,
			func(l *models.Layer) models.LineWeight { return l.LineWeight },
			func(l *models.Layer, v models.LineWeight) { l.LineWeight = v }),
	)
}

func lineTypeMapping() *Mapping {
	return table("LTYPE", "AcDbLinetypeTableRecord",
		Scalar("Description", 3,
			func(lt *models.LineType) string { return lt.Description },
			func(lt *models.LineType, v string) { lt.Description = v }),
		Scalar("Alignment", 72,
			func(lt *models.LineType) int16 { return lt.Alignment },
			func(lt *models.LineType, v int16) { lt.Alignment = v }),
		Scalar("PatternLength", 40, (*models.LineType).PatternLength, nil),
		Counted("Segments", 73,
			func(lt *models.LineType) []models.LineTypeSegment { return lt.Segments },
			func(lt *models.LineType) *models.LineTypeSegment {
				lt.Segments = append(lt.Segments, models.LineTypeSegment{})
				return &lt.Segments[len(lt.Segments)-1]
			},
			Scalar("Length", 49,
				func(s *models.LineTypeSegment) float64 { return s.Length },
				func(s *models.LineTypeSegment, v float64) { s.Length = v }),
			Scalar("Shape", 74,
				func(s *models.LineTypeSegment) int16 { return s.Shape },
				func(s *models.LineTypeSegment, v int16) { s.Shape = v }),
		),
	)
}

func textStyleMapping() *Mapping {
	return table("STYLE", "AcDbTextStyleTableRecord",
		Scalar("FixedHeight", 40,
			func(s *models.TextStyle) float64 { return s.FixedHeight },
			func(s *models.TextStyle, v float64) { s.FixedHeight = v }),
		Scalar("WidthFactor", 41,
			func(s *models.TextStyle) float64 { return s.WidthFactor },
			func(s *models.TextStyle, v float64) { s.WidthFactor = v }),
		Scalar("ObliqueAngle", 50,
			func(s *models.TextStyle) float64 { return s.ObliqueAngle },
			func(s *models.TextStyle, v float64) { s.ObliqueAngle = v }).Angle(),
		Scalar("GenerationFlags", 71,
			func(s *models.TextStyle) int16 { return s.GenerationFlags },
			func(s *models.TextStyle, v int16) { s.GenerationFlags = v }),
		Scalar("LastHeight", 42,
			func(s *models.TextStyle) float64 { return s.LastHeight },
			func(s *models.TextStyle, v float64) { s.LastHeight = v }),
		Scalar("FontFile", 3,
			func(s *models.TextStyle) string { return s.FontFile },
			func(s *models.TextStyle, v string) { s.FontFile = v }),
		Scalar("BigFontFile", 4,
			func(s *models.TextStyle) string { return s.BigFontFile },
			func(s *models.TextStyle, v string) { s.BigFontFile = v }).WithDefault(""),
	)
}

func dimensionStyleMapping() *Mapping {
	return table("DIMSTYLE", "AcDbDimStyleTableRecord",
		Scalar("PostFix", 3,
			func(s *models.DimensionStyle) string { return s.PostFix },
			func(s *models.DimensionStyle, v string) { s.PostFix = v }).WithDefault(""),
		Scalar("Scale", 40,
			func(s *models.DimensionStyle) float64 { return s.Scale },
			func(s *models.DimensionStyle, v float64) { s.Scale = v }),
		Scalar("ArrowSize", 41,
			func(s *models.DimensionStyle) float64 { return s.ArrowSize },
			func(s *models.DimensionStyle, v float64) { s.ArrowSize = v }),
		Scalar("ExtensionLineOffset", 42,
			func(s *models.DimensionStyle) float64 { return s.ExtensionLineOffset },
			func(s *models.DimensionStyle, v float64) { s.ExtensionLineOffset = v }),
		Scalar("ExtensionLineExtension", 44,
			func(s *models.DimensionStyle) float64 { return s.ExtensionLineExtension },
			func(s *models.DimensionStyle, v float64) { s.ExtensionLineExtension = v }),
		Scalar("TextHeight", 140,
			func(s *models.DimensionStyle) float64 { return s.TextHeight },
			func(s *models.DimensionStyle, v float64) { s.TextHeight = v }),
		Scalar("CenterMarkSize", 141,
			func(s *models.DimensionStyle) float64 { return s.CenterMarkSize },
			func(s *models.DimensionStyle, v float64) { s.CenterMarkSize = v }),
		Scalar("TextGap", 147,
			func(s *models.DimensionStyle) float64 { return s.TextGap },
			func(s *models.DimensionStyle, v float64) { s.TextGap = v }),
		Scalar("TextVerticalAlignment", 77,
			func(s *models.DimensionStyle) int16 { return s.TextVerticalAlignment },
			func(s *models.DimensionStyle, v int16) { s.TextVerticalAlignment = v }),
		Scalar("DecimalPlaces", 271,
			func(s *models.DimensionStyle) int16 { return s.DecimalPlaces },
			func(s *models.DimensionStyle, v int16) { s.DecimalPlaces = v }),
		HandleRef("TextStyle", 340,
			func(s *models.DimensionStyle) *models.TextStyle { return s.TextStyle() },
			func(s *models.DimensionStyle, ts *models.TextStyle) { s.SetTextStyle(ts) }),
	)
}

func viewMapping() *Mapping {
	return table("VIEW", "AcDbViewTableRecord",
		Scalar("Height", 40,
			func(v *models.View) float64 { return v.Height },
			func(v *models.View, x float64) { v.Height = x }),
		Vector2("Center", 10,
			func(v *models.View) models.XY { return v.Center },
			func(v *models.View, p models.XY) { v.Center = p }),
		Scalar("Width", 41,
			func(v *models.View) float64 { return v.Width },
			func(v *models.View, x float64) { v.Width = x }),
		Vector3("Direction", 11,
			func(v *models.View) models.XYZ { return v.Direction },
			func(v *models.View, p models.XYZ) { v.Direction = p }),
		Vector3("Target", 12,
			func(v *models.View) models.XYZ { return v.Target },
			func(v *models.View, p models.XYZ) { v.Target = p }),
		Scalar("LensLength", 42,
			func(v *models.View) float64 { return v.LensLength },
			func(v *models.View, x float64) { v.LensLength = x }),
		Scalar("TwistAngle", 50,
			func(v *models.View) float64 { return v.TwistAngle },
			func(v *models.View, x float64) { v.TwistAngle = x }).Angle(),
	)
}

func ucsMapping() *Mapping {
	return table("UCS", "AcDbUCSTableRecord",
		Vector3("Origin", 10,
			func(u *models.UCS) models.XYZ { return u.Origin },
			func(u *models.UCS, p models.XYZ) { u.Origin = p }),
		Vector3("XAxis", 11,
			func(u *models.UCS) models.XYZ { return u.XAxis },
			func(u *models.UCS, p models.XYZ) { u.XAxis = p }),
		Vector3("YAxis", 12,
			func(u *models.UCS) models.XYZ { return u.YAxis },
			func(u *models.UCS, p models.XYZ) { u.YAxis = p }),
		Scalar("Elevation", 146,
			func(u *models.UCS) float64 { return u.Elevation },
			func(u *models.UCS, x float64) { u.Elevation = x }).WithDefault(0.0),
	)
}

func vportMapping() *Mapping {
	xy := func(name string, code int, field func(v *models.VPort) *models.XY) *Field {
		return Vector2(name, code,
			func(v *models.VPort) models.XY { return *field(v) },
			func(v *models.VPort, p models.XY) { *field(v) = p })
	}
	num := func(name string, code int, field func(v *models.VPort) *float64) *Field {
		return Scalar(name, code,
			func(v *models.VPort) float64 { return *field(v) },
			func(v *models.VPort, x float64) { *field(v) = x })
	}
	return table("VPORT", "AcDbViewportTableRecord",
		xy("LowerLeft", 10, func(v *models.VPort) *models.XY { return &v.LowerLeft }),
		xy("UpperRight", 11, func(v *models.VPort) *models.XY { return &v.UpperRight }),
		xy("Center", 12, func(v *models.VPort) *models.XY { return &v.Center }),
		xy("SnapBase", 13, func(v *models.VPort) *models.XY { return &v.SnapBase }),
		xy("SnapSpacing", 14, func(v *models.VPort) *models.XY { return &v.SnapSpacing }),
		xy("GridSpacing", 15, func(v *models.VPort) *models.XY { return &v.GridSpacing }),
		Vector3("Direction", 16,
			func(v *models.VPort) models.XYZ { return v.Direction },
			func(v *models.VPort, p models.XYZ) { v.Direction = p }),
		Vector3("Target", 17,
			func(v *models.VPort) models.XYZ { return v.Target },
			func(v *models.VPort, p models.XYZ) { v.Target = p }),
		num("ViewHeight", 40, func(v *models.VPort) *float64 { return &v.ViewHeight }),
		num("AspectRatio", 41, func(v *models.VPort) *float64 { return &v.AspectRatio }),
		num("LensLength", 42, func(v *models.VPort) *float64 { return &v.LensLength }),
		num("SnapRotation", 50, func(v *models.VPort) *float64 { return &v.SnapRotation }).Angle(),
		num("TwistAngle", 51, func(v *models.VPort) *float64 { return &v.TwistAngle }).Angle(),
	)
}

func blockRecordMapping() *Mapping {
	return &Mapping{
		ObjectName: "BLOCK_RECORD",
		Subclasses: []Subclass{
			{Name: "AcDbSymbolTableRecord"},
			{Name: "AcDbBlockTableRecord", Fields: []*Field{
				entryName(),
				Scalar("Units", 70,
					func(r *models.BlockRecord) models.Units { return r.Units },
					func(r *models.BlockRecord, v models.Units) { r.Units = v }),
				Scalar("Explodable", 280,
					func(r *models.BlockRecord) bool { return r.Explodable },
					func(r *models.BlockRecord, v bool) { r.Explodable = v }),
				Scalar("CanScale", 281,
					func(r *models.BlockRecord) bool { return r.CanScale },
					func(r *models.BlockRecord, v bool) { r.CanScale = v }),
			}},
		},
	}
}

// block delimiters

func blockEntityMapping() *Mapping {
	return entity("BLOCK", Subclass{Name: "AcDbBlockBegin", Fields: []*Field{
		Scalar("Name", 2, (*models.BlockEntity).Name, nil),
		Scalar("Flags", 70, (*models.BlockEntity).Flags,
			func(b *models.BlockEntity, v int16) {
				if r := b.Record(); r != nil {
					r.Flags = v
				}
			}),
		Vector3("BasePoint", 10,
			func(b *models.BlockEntity) models.XYZ { return b.BasePoint },
			func(b *models.BlockEntity, p models.XYZ) { b.BasePoint = p }),
		Scalar("Name2", 3, (*models.BlockEntity).Name, nil),
		Scalar("XrefPath", 1,
			func(b *models.BlockEntity) string { return b.XrefPath },
			func(b *models.BlockEntity, v string) { b.XrefPath = v }).WithDefault(""),
		Scalar("Description", 4,
			func(b *models.BlockEntity) string { return b.Description },
			func(b *models.BlockEntity, v string) { b.Description = v }).WithDefault(""),
	}})
}

func blockEndMapping() *Mapping {
	return entity("ENDBLK", Subclass{Name: "AcDbBlockEnd"})
}

func seqendMapping() *Mapping {
	return entity("SEQEND")
}
