package models

import "strings"

// DxfClass describes an application defined class of the CLASSES section.
type DxfClass struct {
	DxfName         string // group code 1
	CppClassName    string // 2
	ApplicationName string // 3
	ProxyFlags      int32  // 90
	InstanceCount   int32  // 91
	WasAProxy       bool   // 280
	IsAnEntity      bool   // 281
}

// ClassCollection keeps the classes by DXF name, in insertion order.
type ClassCollection struct {
	items []*DxfClass
}

func (c *ClassCollection) Len() int { return len(c.items) }

func (c *ClassCollection) All() []*DxfClass {
	return append([]*DxfClass(nil), c.items...)
}

func (c *ClassCollection) Get(dxfName string) (*DxfClass, bool) {
	for _, x := range c.items {
		if strings.EqualFold(x.DxfName, dxfName) {
			return x, true
		}
	}
	return nil, false
}

// AddOrUpdate inserts cls or replaces the class with the same DXF name.
func (c *ClassCollection) AddOrUpdate(cls *DxfClass) {
	if cls == nil {
		return
	}
	for i, x := range c.items {
		if strings.EqualFold(x.DxfName, cls.DxfName) {
			c.items[i] = cls
			return
		}
	}
	c.items = append(c.items, cls)
}

// defaultClasses are the classes of the object types this package writes in
// OBJECTS beyond the built-in ones.
func defaultClasses() []*DxfClass {
	return []*DxfClass{
		{
			DxfName:         "MATERIAL",
			CppClassName:    "AcDbMaterial",
			ApplicationName: "ObjectDBX Classes",
			ProxyFlags:      1153,
		},
	}
}
