package models

import "math"

// Names of the entries every document carries.
const (
	DefaultLayerName     = "0"
	LineTypeByLayer      = "ByLayer"
	LineTypeByBlock      = "ByBlock"
	LineTypeContinuous   = "Continuous"
	DefaultTextStyleName = "Standard"
	DefaultDimStyleName  = "Standard"
	DefaultAppIDName     = "ACAD"
	ActiveVPortName      = "*Active"
	ModelSpaceName       = "*Model_Space"
	PaperSpaceName       = "*Paper_Space"
)

func appIDsOf(d *Document) *Table[*AppID]                   { return d.AppIDs }
func layersOf(d *Document) *Table[*Layer]                   { return d.Layers }
func lineTypesOf(d *Document) *Table[*LineType]             { return d.LineTypes }
func textStylesOf(d *Document) *Table[*TextStyle]           { return d.TextStyles }
func blockRecordsOf(d *Document) *Table[*BlockRecord]       { return d.BlockRecords }
func dimensionStylesOf(d *Document) *Table[*DimensionStyle] { return d.DimensionStyles }

// AppID registers an application name for extended data.
type AppID struct {
	TableEntryBase
}

func NewAppID(name string) *AppID {
	a := &AppID{}
	a.name = name
	return a
}

func (a *AppID) ObjectType() ObjectType { return TypeAppID }
func (a *AppID) ObjectName() string     { return "APPID" }
func (a *AppID) SubclassMarker() string { return "AcDbRegAppTableRecord" }

func (a *AppID) Clone() CadObject {
	c := *a
	c.TableEntryBase = a.cloneEntryBase()
	return &c
}

// Layer flag bits.
const (
	LayerFrozen int16 = 1
	LayerLocked int16 = 4
)

// Layer groups entities and supplies their ByLayer properties.
type Layer struct {
	TableEntryBase
	Color      Color
	IsOff      bool
	LineWeight LineWeight
	PlotFlag   bool

	lineType tableRef[*LineType]
}

func NewLayer(name string) *Layer {
	l := &Layer{
		Color:      ColorIndex(7),
		LineWeight: LineWeightDefault,
		PlotFlag:   true,
	}
	l.name = name
	l.lineType = newTableRef(lineTypesOf, func() *LineType { return NewLineType(LineTypeContinuous) }, LineTypeContinuous)
	return l
}

func (l *Layer) ObjectType() ObjectType { return TypeLayer }
func (l *Layer) ObjectName() string     { return "LAYER" }
func (l *Layer) SubclassMarker() string { return "AcDbLayerTableRecord" }

func (l *Layer) IsFrozen() bool { return l.Flags&LayerFrozen != 0 }
func (l *Layer) IsLocked() bool { return l.Flags&LayerLocked != 0 }

func (l *Layer) LineType() *LineType { return l.lineType.get() }

// SetLineType assigns the layer line type. Nil resets it to Continuous.
func (l *Layer) SetLineType(lt *LineType) { l.lineType.set(l.doc, lt) }

func (l *Layer) references() []reference {
	return append(l.ObjectBase.references(), &l.lineType)
}

func (l *Layer) Clone() CadObject {
	c := *l
	c.TableEntryBase = l.cloneEntryBase()
	c.lineType.cloneValue()
	return &c
}

// LineTypeSegment is one dash, dot or gap of a line type pattern.
type LineTypeSegment struct {
	// Length is positive for dashes, negative for gaps and zero for dots.
	Length float64
	// Shape holds the complex element flags (group code 74).
	Shape int16
}

// LineType describes a dash pattern.
type LineType struct {
	TableEntryBase
	Description string
	// Alignment is always 'A' (65) for DXF line types.
	Alignment int16
	Segments  []LineTypeSegment
}

func NewLineType(name string) *LineType {
	lt := &LineType{Alignment: 'A'}
	lt.name = name
	return lt
}

func (lt *LineType) ObjectType() ObjectType { return TypeLineType }
func (lt *LineType) ObjectName() string     { return "LTYPE" }
func (lt *LineType) SubclassMarker() string { return "AcDbLinetypeTableRecord" }

// PatternLength is the total length of one pattern repetition.
func (lt *LineType) PatternLength() float64 {
	var total float64
	for _, s := range lt.Segments {
		total += math.Abs(s.Length)
	}
	return total
}

func (lt *LineType) Clone() CadObject {
	c := *lt
	c.TableEntryBase = lt.cloneEntryBase()
	c.Segments = append([]LineTypeSegment(nil), lt.Segments...)
	return &c
}

// TextStyle holds the font settings used by text entities.
type TextStyle struct {
	TableEntryBase
	FixedHeight     float64
	WidthFactor     float64
	ObliqueAngle    float64
	GenerationFlags int16
	LastHeight      float64
	FontFile        string
	BigFontFile     string
}

func NewTextStyle(name string) *TextStyle {
	s := &TextStyle{WidthFactor: 1, LastHeight: 2.5, FontFile: "txt"}
	s.name = name
	return s
}

func (s *TextStyle) ObjectType() ObjectType { return TypeTextStyle }
func (s *TextStyle) ObjectName() string     { return "STYLE" }
func (s *TextStyle) SubclassMarker() string { return "AcDbTextStyleTableRecord" }

func (s *TextStyle) Clone() CadObject {
	c := *s
	c.TableEntryBase = s.cloneEntryBase()
	return &c
}

// DimensionStyle holds the subset of dimension variables this package models.
type DimensionStyle struct {
	TableEntryBase
	PostFix                string
	Scale                  float64
	ArrowSize              float64
	ExtensionLineOffset    float64
	ExtensionLineExtension float64
	TextHeight             float64
	CenterMarkSize         float64
	TextGap                float64
	TextVerticalAlignment  int16
	DecimalPlaces          int16

	textStyle tableRef[*TextStyle]
}

func NewDimensionStyle(name string) *DimensionStyle {
	s := &DimensionStyle{
		Scale:                  1,
		ArrowSize:              0.18,
		ExtensionLineOffset:    0.0625,
		ExtensionLineExtension: 0.18,
		TextHeight:             0.18,
		CenterMarkSize:         0.09,
		TextGap:                0.09,
		DecimalPlaces:          4,
	}
	s.name = name
	s.textStyle = newTableRef(textStylesOf, func() *TextStyle { return NewTextStyle(DefaultTextStyleName) }, "")
	return s
}

func (s *DimensionStyle) ObjectType() ObjectType { return TypeDimensionStyle }
func (s *DimensionStyle) ObjectName() string     { return "DIMSTYLE" }
func (s *DimensionStyle) SubclassMarker() string { return "AcDbDimStyleTableRecord" }

func (s *DimensionStyle) TextStyle() *TextStyle { return s.textStyle.get() }

func (s *DimensionStyle) SetTextStyle(ts *TextStyle) { s.textStyle.set(s.doc, ts) }

func (s *DimensionStyle) references() []reference {
	return append(s.ObjectBase.references(), &s.textStyle)
}

func (s *DimensionStyle) Clone() CadObject {
	c := *s
	c.TableEntryBase = s.cloneEntryBase()
	c.textStyle.cloneValue()
	return &c
}

// View is a named view of the drawing.
type View struct {
	TableEntryBase
	Height     float64
	Width      float64
	Center     XY
	Direction  XYZ
	Target     XYZ
	LensLength float64
	TwistAngle float64
}

func NewView(name string) *View {
	v := &View{Height: 1, Width: 1, Direction: ZAxis, LensLength: 50}
	v.name = name
	return v
}

func (v *View) ObjectType() ObjectType { return TypeView }
func (v *View) ObjectName() string     { return "VIEW" }
func (v *View) SubclassMarker() string { return "AcDbViewTableRecord" }

func (v *View) Clone() CadObject {
	c := *v
	c.TableEntryBase = v.cloneEntryBase()
	return &c
}

// UCS is a named user coordinate system.
type UCS struct {
	TableEntryBase
	Origin    XYZ
	XAxis     XYZ
	YAxis     XYZ
	Elevation float64
}

func NewUCS(name string) *UCS {
	u := &UCS{XAxis: XYZ{X: 1}, YAxis: XYZ{Y: 1}}
	u.name = name
	return u
}

func (u *UCS) ObjectType() ObjectType { return TypeUCS }
func (u *UCS) ObjectName() string     { return "UCS" }
func (u *UCS) SubclassMarker() string { return "AcDbUCSTableRecord" }

func (u *UCS) Clone() CadObject {
	c := *u
	c.TableEntryBase = u.cloneEntryBase()
	return &c
}

// VPort is a viewport configuration; *Active is the current one.
type VPort struct {
	TableEntryBase
	LowerLeft    XY
	UpperRight   XY
	Center       XY
	SnapBase     XY
	SnapSpacing  XY
	GridSpacing  XY
	Direction    XYZ
	Target       XYZ
	ViewHeight   float64
	AspectRatio  float64
	LensLength   float64
	SnapRotation float64
	TwistAngle   float64
}

func NewVPort(name string) *VPort {
	v := &VPort{
		UpperRight:  XY{X: 1, Y: 1},
		SnapSpacing: XY{X: 0.5, Y: 0.5},
		GridSpacing: XY{X: 10, Y: 10},
		Direction:   ZAxis,
		ViewHeight:  10,
		AspectRatio: 1,
		LensLength:  50,
	}
	v.name = name
	return v
}

func (v *VPort) ObjectType() ObjectType { return TypeVPort }
func (v *VPort) ObjectName() string     { return "VPORT" }
func (v *VPort) SubclassMarker() string { return "AcDbViewportTableRecord" }

func (v *VPort) Clone() CadObject {
	c := *v
	c.TableEntryBase = v.cloneEntryBase()
	return &c
}
