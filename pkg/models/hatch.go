package models

// Boundary path flag bits (group code 92).
const (
	BoundaryPathExternal  int32 = 1
	BoundaryPathPolyline  int32 = 2
	BoundaryPathDerived   int32 = 4
	BoundaryPathOutermost int32 = 16
)

// HatchEdgeType is group code 72 of a non-polyline boundary edge.
type HatchEdgeType int16

const (
	HatchEdgeLine HatchEdgeType = iota + 1
	HatchEdgeArc
	HatchEdgeEllipse
)

// HatchEdge is one segment of a boundary path.
type HatchEdge interface {
	EdgeType() HatchEdgeType
}

type HatchLineEdge struct {
	Start XY
	End   XY
}

func (HatchLineEdge) EdgeType() HatchEdgeType { return HatchEdgeLine }

// HatchArcEdge angles are in radians.
type HatchArcEdge struct {
	Center           XY
	Radius           float64
	StartAngle       float64
	EndAngle         float64
	CounterClockwise bool
}

func (HatchArcEdge) EdgeType() HatchEdgeType { return HatchEdgeArc }

type HatchEllipseEdge struct {
	Center XY
	// MajorAxisEndPoint is relative to Center.
	MajorAxisEndPoint XY
	MinorToMajorRatio float64
	StartAngle        float64
	EndAngle          float64
	CounterClockwise  bool
}

func (HatchEllipseEdge) EdgeType() HatchEdgeType { return HatchEdgeEllipse }

// HatchPolylineVertex is a polyline boundary vertex; Bulge is written only
// when the boundary has bulges.
type HatchPolylineVertex struct {
	Location XY
	Bulge    float64
}

// HatchBoundaryPath is either a polyline (Flags has BoundaryPathPolyline) or
// a list of edges.
type HatchBoundaryPath struct {
	Flags    int32
	IsClosed bool
	Vertices []HatchPolylineVertex
	Edges    []HatchEdge
}

func (p *HatchBoundaryPath) IsPolyline() bool { return p.Flags&BoundaryPathPolyline != 0 }

// HasBulge reports whether any polyline vertex carries a bulge.
func (p *HatchBoundaryPath) HasBulge() bool {
	for _, v := range p.Vertices {
		if v.Bulge != 0 {
			return true
		}
	}
	return false
}

func (p HatchBoundaryPath) clone() HatchBoundaryPath {
	p.Vertices = append([]HatchPolylineVertex(nil), p.Vertices...)
	p.Edges = append([]HatchEdge(nil), p.Edges...)
	return p
}

// HatchPatternType is group code 76.
type HatchPatternType int16

const (
	HatchPatternUserDefined HatchPatternType = iota
	HatchPatternPredefined
	HatchPatternCustom
)

// Hatch fills an area bounded by one or more paths.
type Hatch struct {
	EntityBase
	Elevation    float64
	Normal       XYZ
	PatternName  string
	IsSolid      bool
	Associative  bool
	Style        int16
	PatternType  HatchPatternType
	PatternAngle float64
	PatternScale float64
	Paths        []HatchBoundaryPath
	SeedPoints   []XY
}

func NewHatch() *Hatch {
	return &Hatch{
		EntityBase:   newEntityBase(),
		Normal:       ZAxis,
		PatternName:  "SOLID",
		IsSolid:      true,
		PatternType:  HatchPatternPredefined,
		PatternScale: 1,
	}
}

func (h *Hatch) ObjectType() ObjectType { return TypeHatch }
func (h *Hatch) ObjectName() string     { return "HATCH" }
func (h *Hatch) SubclassMarker() string { return "AcDbHatch" }

func (h *Hatch) Clone() CadObject {
	c := *h
	c.EntityBase = h.cloneEntityBase()
	c.Paths = make([]HatchBoundaryPath, len(h.Paths))
	for i, p := range h.Paths {
		c.Paths[i] = p.clone()
	}
	c.SeedPoints = append([]XY(nil), h.SeedPoints...)
	return &c
}
