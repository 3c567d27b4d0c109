package models

// Point is a single point entity.
type Point struct {
	EntityBase
	Location  XYZ
	Thickness float64
	Normal    XYZ
	// XAxisAngle is the angle of the X axis of the UCS in effect, in radians.
	XAxisAngle float64
}

func NewPoint(location XYZ) *Point {
	return &Point{EntityBase: newEntityBase(), Location: location, Normal: ZAxis}
}

func (p *Point) ObjectType() ObjectType { return TypePoint }
func (p *Point) ObjectName() string     { return "POINT" }
func (p *Point) SubclassMarker() string { return "AcDbPoint" }

func (p *Point) Clone() CadObject {
	c := *p
	c.EntityBase = p.cloneEntityBase()
	return &c
}

type Line struct {
	EntityBase
	Start     XYZ
	End       XYZ
	Thickness float64
	Normal    XYZ
}

func NewLine(start, end XYZ) *Line {
	return &Line{EntityBase: newEntityBase(), Start: start, End: end, Normal: ZAxis}
}

func (l *Line) ObjectType() ObjectType { return TypeLine }
func (l *Line) ObjectName() string     { return "LINE" }
func (l *Line) SubclassMarker() string { return "AcDbLine" }

func (l *Line) Clone() CadObject {
	c := *l
	c.EntityBase = l.cloneEntityBase()
	return &c
}

type Circle struct {
	EntityBase
	Center    XYZ
	Radius    float64
	Thickness float64
	Normal    XYZ
}

func NewCircle(center XYZ, radius float64) *Circle {
	return &Circle{EntityBase: newEntityBase(), Center: center, Radius: radius, Normal: ZAxis}
}

func (c *Circle) ObjectType() ObjectType { return TypeCircle }
func (c *Circle) ObjectName() string     { return "CIRCLE" }
func (c *Circle) SubclassMarker() string { return "AcDbCircle" }

func (c *Circle) Clone() CadObject {
	cc := *c
	cc.EntityBase = c.cloneEntityBase()
	return &cc
}

// Arc is a circle segment. Angles are in radians, counter clockwise from the
// X axis of the entity's coordinate system.
type Arc struct {
	Circle
	StartAngle float64
	EndAngle   float64
}

func NewArc(center XYZ, radius, start, end float64) *Arc {
	return &Arc{Circle: *NewCircle(center, radius), StartAngle: start, EndAngle: end}
}

func (a *Arc) ObjectType() ObjectType { return TypeArc }
func (a *Arc) ObjectName() string     { return "ARC" }
func (a *Arc) SubclassMarker() string { return "AcDbArc" }

func (a *Arc) Clone() CadObject {
	c := *a
	c.EntityBase = a.cloneEntityBase()
	return &c
}

type Ellipse struct {
	EntityBase
	Center XYZ
	// MajorAxisEndPoint is relative to Center.
	MajorAxisEndPoint XYZ
	Normal            XYZ
	RadiusRatio       float64
	StartParameter    float64
	EndParameter      float64
}

func NewEllipse(center, majorAxis XYZ, ratio float64) *Ellipse {
	return &Ellipse{
		EntityBase:        newEntityBase(),
		Center:            center,
		MajorAxisEndPoint: majorAxis,
		Normal:            ZAxis,
		RadiusRatio:       ratio,
		EndParameter:      2 * 3.141592653589793,
	}
}

func (e *Ellipse) ObjectType() ObjectType { return TypeEllipse }
func (e *Ellipse) ObjectName() string     { return "ELLIPSE" }
func (e *Ellipse) SubclassMarker() string { return "AcDbEllipse" }

func (e *Ellipse) Clone() CadObject {
	c := *e
	c.EntityBase = e.cloneEntityBase()
	return &c
}

// TextHorizontalAlignment is group code 72 of TEXT.
type TextHorizontalAlignment int16

const (
	TextAlignLeft TextHorizontalAlignment = iota
	TextAlignCenter
	TextAlignRight
	TextAlignAligned
	TextAlignMiddle
	TextAlignFit
)

// TextVerticalAlignment is group code 73 of TEXT (74 of ATTDEF).
type TextVerticalAlignment int16

const (
	TextAlignBaseline TextVerticalAlignment = iota
	TextAlignBottom
	TextAlignVMiddle
	TextAlignTop
)

// Text is a single line of text.
type Text struct {
	EntityBase
	InsertPoint         XYZ
	AlignmentPoint      XYZ
	Normal              XYZ
	Thickness           float64
	Height              float64
	Value               string
	Rotation            float64
	WidthFactor         float64
	ObliqueAngle        float64
	HorizontalAlignment TextHorizontalAlignment
	VerticalAlignment   TextVerticalAlignment

	style tableRef[*TextStyle]
}

func newText() Text {
	t := Text{EntityBase: newEntityBase(), Normal: ZAxis, Height: 1, WidthFactor: 1}
	t.style = newTableRef(textStylesOf, func() *TextStyle { return NewTextStyle(DefaultTextStyleName) }, "")
	return t
}

func NewText(value string, insert XYZ, height float64) *Text {
	t := newText()
	t.Value = value
	t.InsertPoint = insert
	t.Height = height
	return &t
}

func (t *Text) ObjectType() ObjectType { return TypeText }
func (t *Text) ObjectName() string     { return "TEXT" }
func (t *Text) SubclassMarker() string { return "AcDbText" }

func (t *Text) Style() *TextStyle { return t.style.get() }

// SetStyle assigns the text style; nil resets it to Standard.
func (t *Text) SetStyle(s *TextStyle) { t.style.set(t.doc, s) }

func (t *Text) references() []reference {
	return append(t.EntityBase.references(), &t.style)
}

func (t *Text) cloneText() Text {
	c := *t
	c.EntityBase = t.cloneEntityBase()
	c.style.cloneValue()
	return c
}

func (t *Text) Clone() CadObject {
	c := t.cloneText()
	return &c
}

// Attribute flag bits (group code 70).
const (
	AttributeInvisible int16 = 1
	AttributeConstant  int16 = 2
	AttributeVerify    int16 = 4
	AttributePreset    int16 = 8
)

// AttributeDefinition is the template of an attribute, stored in a block.
type AttributeDefinition struct {
	Text
	Tag    string
	Prompt string
	Flags  int16
}

func NewAttributeDefinition(tag, prompt, value string) *AttributeDefinition {
	return &AttributeDefinition{Text: *NewText(value, XYZ{}, 1), Tag: tag, Prompt: prompt}
}

func (a *AttributeDefinition) ObjectType() ObjectType { return TypeAttributeDefinition }
func (a *AttributeDefinition) ObjectName() string     { return "ATTDEF" }
func (a *AttributeDefinition) SubclassMarker() string { return "AcDbAttributeDefinition" }

func (a *AttributeDefinition) Clone() CadObject {
	c := *a
	c.Text = a.cloneText()
	return &c
}

// AttributeEntity is the value of an attribute on an Insert.
type AttributeEntity struct {
	Text
	Tag   string
	Flags int16
}

func NewAttributeEntity(tag, value string) *AttributeEntity {
	return &AttributeEntity{Text: *NewText(value, XYZ{}, 1), Tag: tag}
}

func (a *AttributeEntity) ObjectType() ObjectType { return TypeAttributeEntity }
func (a *AttributeEntity) ObjectName() string     { return "ATTRIB" }
func (a *AttributeEntity) SubclassMarker() string { return "AcDbAttribute" }

func (a *AttributeEntity) Clone() CadObject {
	c := *a
	c.Text = a.cloneText()
	return &c
}

// Seqend closes the child chain of a POLYLINE or INSERT.
type Seqend struct {
	EntityBase
}

func NewSeqend() *Seqend {
	return &Seqend{EntityBase: newEntityBase()}
}

func (s *Seqend) ObjectType() ObjectType { return TypeSeqend }
func (s *Seqend) ObjectName() string     { return "SEQEND" }
func (s *Seqend) SubclassMarker() string { return "" }

func (s *Seqend) Clone() CadObject {
	c := *s
	c.EntityBase = s.cloneEntityBase()
	return &c
}

// Insert places a block reference.
type Insert struct {
	EntityBase
	InsertPoint   XYZ
	Scale         XYZ
	Rotation      float64
	Normal        XYZ
	ColumnCount   int16
	RowCount      int16
	ColumnSpacing float64
	RowSpacing    float64

	block      tableRef[*BlockRecord]
	attributes *EntityList[*AttributeEntity]
	seqend     *Seqend
}

// NewInsert references block. A free block is added to the document when the
// insert is attached.
func NewInsert(block *BlockRecord, at XYZ) *Insert {
	ins := &Insert{
		EntityBase:  newEntityBase(),
		InsertPoint: at,
		Scale:       XYZ{X: 1, Y: 1, Z: 1},
		Normal:      ZAxis,
		ColumnCount: 1,
		RowCount:    1,
		seqend:      NewSeqend(),
	}
	ins.block = newTableRef(blockRecordsOf, func() *BlockRecord { return NewBlockRecord(ModelSpaceName) }, "")
	ins.attributes = newEntityList[*AttributeEntity](ins)
	if block != nil {
		ins.block.value = block
	}
	return ins
}

func (i *Insert) ObjectType() ObjectType { return TypeInsert }
func (i *Insert) ObjectName() string     { return "INSERT" }
func (i *Insert) SubclassMarker() string { return "AcDbBlockReference" }

func (i *Insert) Block() *BlockRecord { return i.block.get() }

func (i *Insert) SetBlock(b *BlockRecord) { i.block.set(i.doc, b) }

// Attributes is the attribute chain written after the INSERT record.
func (i *Insert) Attributes() *EntityList[*AttributeEntity] { return i.attributes }

// Seqend closes the attribute chain. It only belongs to the document while
// the insert has attributes.
func (i *Insert) Seqend() *Seqend { return i.seqend }

func (i *Insert) references() []reference {
	return append(i.EntityBase.references(), &i.block)
}

func (i *Insert) children() []CadObject {
	if i.attributes.Len() == 0 {
		return nil
	}
	return append(i.attributes.objects(), i.seqend)
}

func (i *Insert) chainChanged() {
	if i.doc == nil {
		return
	}
	switch attached := i.seqend.Document() != nil; {
	case i.attributes.Len() > 0 && !attached:
		_ = i.doc.attach(i.seqend, i.handle)
	case i.attributes.Len() == 0 && attached:
		i.doc.detach(i.seqend)
	}
}

func (i *Insert) Clone() CadObject {
	c := *i
	c.EntityBase = i.cloneEntityBase()
	c.block.cloneValue()
	c.attributes = i.attributes.cloneFor(&c)
	c.seqend = i.seqend.Clone().(*Seqend)
	return &c
}
