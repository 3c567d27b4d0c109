package models

import "fmt"

// Color is either an AutoCAD Color Index (ACI) value or a 24-bit true color.
type Color struct {
	index  int16
	rgb    uint32
	isTrue bool
}

var (
	ColorByBlock = Color{index: 0}
	ColorByLayer = Color{index: 256}
)

// ColorIndex returns an indexed color. Valid values are 0..256.
func ColorIndex(i int16) Color {
	return Color{index: i}
}

// ColorRGB returns a true color.
func ColorRGB(r, g, b uint8) Color {
	return Color{rgb: uint32(r)<<16 | uint32(g)<<8 | uint32(b), isTrue: true}
}

// ColorFromTrueValue decodes the value stored under group code 420.
func ColorFromTrueValue(v int32) Color {
	return Color{rgb: uint32(v) & 0xFFFFFF, isTrue: true}
}

func (c Color) Index() int16      { return c.index }
func (c Color) IsTrueColor() bool { return c.isTrue }
func (c Color) IsByLayer() bool   { return !c.isTrue && c.index == 256 }
func (c Color) IsByBlock() bool   { return !c.isTrue && c.index == 0 }
func (c Color) TrueValue() int32  { return int32(c.rgb) }

func (c Color) RGB() (r, g, b uint8) {
	return uint8(c.rgb >> 16), uint8(c.rgb >> 8), uint8(c.rgb)
}

func (c Color) String() string {
	switch {
	case c.isTrue:
		r, g, b := c.RGB()
		return fmt.Sprintf("RGB(%d,%d,%d)", r, g, b)
	case c.IsByLayer():
		return "ByLayer"
	case c.IsByBlock():
		return "ByBlock"
	}
	return fmt.Sprintf("ACI(%d)", c.index)
}

// LineWeight is expressed in hundredths of millimeters, or one of the
// special negative values.
type LineWeight int16

const (
	LineWeightByLayer LineWeight = -1
	LineWeightByBlock LineWeight = -2
	LineWeightDefault LineWeight = -3
)

// Transparency holds the raw DXF transparency value (group code 440).
type Transparency int32

const (
	TransparencyByLayer Transparency = 0
	TransparencyByBlock Transparency = 0x01000000
)

// NewTransparency converts a percentage (0 opaque, 90 most transparent) to
// the DXF representation.
func NewTransparency(percent int) Transparency {
	if percent < 0 {
		percent = 0
	}
	if percent > 90 {
		percent = 90
	}
	alpha := int32(255 * (100 - percent) / 100)
	return Transparency(0x02000000 | alpha)
}
