package models

import "reflect"

// ObjectType identifies the concrete type of a CadObject. It is the key of the
// mapping catalog and of the writers' dispatch tables.
type ObjectType uint16

const (
	TypeUnknown ObjectType = iota

	// tables and table entries
	TypeTable
	TypeAppID
	TypeLayer
	TypeLineType
	TypeTextStyle
	TypeDimensionStyle
	TypeView
	TypeUCS
	TypeVPort
	TypeBlockRecord

	// entities
	TypeBlockEntity
	TypeBlockEnd
	TypePoint
	TypeLine
	TypeCircle
	TypeArc
	TypeEllipse
	TypeText
	TypeAttributeDefinition
	TypeAttributeEntity
	TypeInsert
	TypePolyline2D
	TypePolyline3D
	TypeVertex2D
	TypeVertex3D
	TypeLwPolyline
	TypeHatch
	TypeSeqend

	// non-graphical objects
	TypeDictionary
	TypeXRecord
	TypeGroup
	TypeMaterial
)

var typeNames = map[ObjectType]string{
	TypeUnknown:             "Unknown",
	TypeTable:               "Table",
	TypeAppID:               "AppId",
	TypeLayer:               "Layer",
	TypeLineType:            "LineType",
	TypeTextStyle:           "TextStyle",
	TypeDimensionStyle:      "DimensionStyle",
	TypeView:                "View",
	TypeUCS:                 "UCS",
	TypeVPort:               "VPort",
	TypeBlockRecord:         "BlockRecord",
	TypeBlockEntity:         "BlockEntity",
	TypeBlockEnd:            "BlockEnd",
	TypePoint:               "Point",
	TypeLine:                "Line",
	TypeCircle:              "Circle",
	TypeArc:                 "Arc",
	TypeEllipse:             "Ellipse",
	TypeText:                "Text",
	TypeAttributeDefinition: "AttributeDefinition",
	TypeAttributeEntity:     "AttributeEntity",
	TypeInsert:              "Insert",
	TypePolyline2D:          "Polyline2D",
	TypePolyline3D:          "Polyline3D",
	TypeVertex2D:            "Vertex2D",
	TypeVertex3D:            "Vertex3D",
	TypeLwPolyline:          "LwPolyline",
	TypeHatch:               "Hatch",
	TypeSeqend:              "Seqend",
	TypeDictionary:          "Dictionary",
	TypeXRecord:             "XRecord",
	TypeGroup:               "Group",
	TypeMaterial:            "Material",
}

func (t ObjectType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// AllObjectTypes lists every concrete type known to this package, in
// declaration order.
func AllObjectTypes() []ObjectType {
	types := make([]ObjectType, 0, len(typeNames)-1)
	for t := TypeTable; t <= TypeMaterial; t++ {
		types = append(types, t)
	}
	return types
}

// CadObject is the unit of persistence. The set of implementations is closed:
// every concrete type lives in this package.
type CadObject interface {
	Handle() Handle
	OwnerHandle() Handle
	// Owner resolves the owner handle through the document object store. It
	// returns nil for free objects.
	Owner() CadObject
	Document() *Document

	ObjectType() ObjectType
	// ObjectName is the DXF record name written under group code 0.
	ObjectName() string
	SubclassMarker() string

	XDictionary() *CadDictionary
	CreateXDictionary() *CadDictionary
	SetXDictionary(d *CadDictionary)
	ExtendedData() *ExtendedData

	// Clone returns a free deep copy: handle, owner and document are reset and
	// every reference is cloned so the copy shares nothing with a document.
	Clone() CadObject

	base() *ObjectBase
	references() []reference
	children() []CadObject
}

// ObjectBase carries the state shared by every CadObject.
type ObjectBase struct {
	handle Handle
	owner  Handle
	doc    *Document
	xdict  *CadDictionary
	xdata  ExtendedData
}

func (o *ObjectBase) Handle() Handle      { return o.handle }
func (o *ObjectBase) OwnerHandle() Handle { return o.owner }
func (o *ObjectBase) Document() *Document { return o.doc }

func (o *ObjectBase) Owner() CadObject {
	if o.doc == nil || o.owner == 0 {
		return nil
	}
	obj, _ := o.doc.Object(o.owner)
	return obj
}

func (o *ObjectBase) XDictionary() *CadDictionary { return o.xdict }

// CreateXDictionary returns the extension dictionary, creating it on first
// use.
func (o *ObjectBase) CreateXDictionary() *CadDictionary {
	if o.xdict == nil {
		o.SetXDictionary(NewDictionary(""))
	}
	return o.xdict
}

// SetXDictionary replaces the extension dictionary. The previous dictionary,
// if any, is detached from the document.
func (o *ObjectBase) SetXDictionary(d *CadDictionary) {
	if o.xdict == d {
		return
	}
	if o.xdict != nil && o.doc != nil {
		o.doc.detach(o.xdict)
	}
	o.xdict = d
	if d == nil {
		return
	}
	d.HardOwner = true
	if o.doc != nil {
		if err := o.doc.attach(d, o.handle); err != nil {
			// a dictionary owned by another document is copied instead of shared
			o.xdict = d.Clone().(*CadDictionary)
			_ = o.doc.attach(o.xdict, o.handle)
		}
	}
}

func (o *ObjectBase) ExtendedData() *ExtendedData { return &o.xdata }

func (o *ObjectBase) base() *ObjectBase { return o }

func (o *ObjectBase) references() []reference { return []reference{&o.xdata} }

func (o *ObjectBase) children() []CadObject { return nil }

// cloneBase returns the state of a free copy.
func (o *ObjectBase) cloneBase() ObjectBase {
	c := ObjectBase{xdata: o.xdata.clone()}
	if o.xdict != nil {
		c.xdict = o.xdict.Clone().(*CadDictionary)
	}
	return c
}

// SetHandle presets the handle of a free object. Readers use it to keep the
// handles found in a file; the handle is kept on attach when it is not in use.
func SetHandle(obj CadObject, h Handle) error {
	b := obj.base()
	if b.doc != nil {
		return ErrAlreadyAttached
	}
	b.handle = h
	return nil
}

// isNil reports whether obj is nil or a typed nil pointer.
func isNil(obj CadObject) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
