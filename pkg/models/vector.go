package models

import "math"

// Vector is implemented by the point types so writers can decompose them into
// one scalar per axis.
type Vector interface {
	Components() []float64
}

// XY is a 2D point or vector.
type XY struct {
	X, Y float64
}

func (v XY) Components() []float64 { return []float64{v.X, v.Y} }

// XYZ is a 3D point or vector.
type XYZ struct {
	X, Y, Z float64
}

// ZAxis is the default extrusion direction.
var ZAxis = XYZ{Z: 1}

func (v XYZ) Components() []float64 { return []float64{v.X, v.Y, v.Z} }

// XY drops the Z component.
func (v XYZ) XY() XY { return XY{X: v.X, Y: v.Y} }

// Length returns the euclidean norm.
func (v XYZ) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// WithComponent returns a copy of v with axis i (0, 1 or 2) replaced.
func (v XYZ) WithComponent(i int, f float64) XYZ {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	case 2:
		v.Z = f
	}
	return v
}

// WithComponent returns a copy of v with axis i (0 or 1) replaced.
func (v XY) WithComponent(i int, f float64) XY {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	}
	return v
}
