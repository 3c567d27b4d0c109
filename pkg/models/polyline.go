package models

// Polyline flag bits (group code 70).
const (
	PolylineClosed   int16 = 1
	PolylineCurveFit int16 = 2
	PolylineSpline   int16 = 4
	PolylineIs3D     int16 = 8
)

// Vertex flag bits (group code 70).
const (
	VertexPolyline3D int16 = 32
)

type Vertex2D struct {
	EntityBase
	Location   XYZ
	StartWidth float64
	EndWidth   float64
	Bulge      float64
	Flags      int16
}

func NewVertex2D(location XYZ) *Vertex2D {
	return &Vertex2D{EntityBase: newEntityBase(), Location: location}
}

func (v *Vertex2D) ObjectType() ObjectType { return TypeVertex2D }
func (v *Vertex2D) ObjectName() string     { return "VERTEX" }
func (v *Vertex2D) SubclassMarker() string { return "AcDb2dVertex" }

func (v *Vertex2D) Clone() CadObject {
	c := *v
	c.EntityBase = v.cloneEntityBase()
	return &c
}

type Vertex3D struct {
	EntityBase
	Location XYZ
	Flags    int16
}

func NewVertex3D(location XYZ) *Vertex3D {
	return &Vertex3D{EntityBase: newEntityBase(), Location: location, Flags: VertexPolyline3D}
}

func (v *Vertex3D) ObjectType() ObjectType { return TypeVertex3D }
func (v *Vertex3D) ObjectName() string     { return "VERTEX" }
func (v *Vertex3D) SubclassMarker() string { return "AcDb3dPolylineVertex" }

func (v *Vertex3D) Clone() CadObject {
	c := *v
	c.EntityBase = v.cloneEntityBase()
	return &c
}

// polyline holds what the two heavy polylines share: a vertex chain closed by
// a SEQEND.
type polyline[V entityEntry] struct {
	EntityBase
	Flags     int16
	Elevation float64
	Normal    XYZ

	vertices *EntityList[V]
	seqend   *Seqend
}

func (p *polyline[V]) Vertices() *EntityList[V] { return p.vertices }

func (p *polyline[V]) Seqend() *Seqend { return p.seqend }

func (p *polyline[V]) IsClosed() bool { return p.Flags&PolylineClosed != 0 }

func (p *polyline[V]) children() []CadObject {
	return append(p.vertices.objects(), p.seqend)
}

func (p *polyline[V]) clonePolyline(owner CadObject) polyline[V] {
	c := *p
	c.EntityBase = p.cloneEntityBase()
	c.vertices = p.vertices.cloneFor(owner)
	c.seqend = p.seqend.Clone().(*Seqend)
	return c
}

// Polyline2D is a heavy POLYLINE in the plane of its normal.
type Polyline2D struct {
	polyline[*Vertex2D]
	StartWidth float64
	EndWidth   float64
}

func NewPolyline2D(points ...XY) *Polyline2D {
	p := &Polyline2D{}
	p.EntityBase = newEntityBase()
	p.Normal = ZAxis
	p.seqend = NewSeqend()
	p.vertices = newEntityList[*Vertex2D](p)
	for _, pt := range points {
		p.vertices.items = append(p.vertices.items, NewVertex2D(XYZ{X: pt.X, Y: pt.Y}))
	}
	return p
}

func (p *Polyline2D) ObjectType() ObjectType { return TypePolyline2D }
func (p *Polyline2D) ObjectName() string     { return "POLYLINE" }
func (p *Polyline2D) SubclassMarker() string { return "AcDb2dPolyline" }

func (p *Polyline2D) Clone() CadObject {
	c := &Polyline2D{StartWidth: p.StartWidth, EndWidth: p.EndWidth}
	c.polyline = p.clonePolyline(c)
	return c
}

// Polyline3D is a heavy POLYLINE with 3D vertices.
type Polyline3D struct {
	polyline[*Vertex3D]
}

func NewPolyline3D(points ...XYZ) *Polyline3D {
	p := &Polyline3D{}
	p.EntityBase = newEntityBase()
	p.Flags = PolylineIs3D
	p.Normal = ZAxis
	p.seqend = NewSeqend()
	p.vertices = newEntityList[*Vertex3D](p)
	for _, pt := range points {
		p.vertices.items = append(p.vertices.items, NewVertex3D(pt))
	}
	return p
}

func (p *Polyline3D) ObjectType() ObjectType { return TypePolyline3D }
func (p *Polyline3D) ObjectName() string     { return "POLYLINE" }
func (p *Polyline3D) SubclassMarker() string { return "AcDb3dPolyline" }

func (p *Polyline3D) Clone() CadObject {
	c := &Polyline3D{}
	c.polyline = p.clonePolyline(c)
	return c
}

// LwVertex is one vertex of a LwPolyline.
type LwVertex struct {
	Location   XY
	StartWidth float64
	EndWidth   float64
	Bulge      float64
}

// LwPolyline is a lightweight polyline; its vertices are plain values written
// inline after a count.
type LwPolyline struct {
	EntityBase
	Flags         int16
	ConstantWidth float64
	Elevation     float64
	Thickness     float64
	Normal        XYZ
	Vertices      []LwVertex
}

func NewLwPolyline(points ...XY) *LwPolyline {
	p := &LwPolyline{EntityBase: newEntityBase(), Normal: ZAxis}
	for _, pt := range points {
		p.Vertices = append(p.Vertices, LwVertex{Location: pt})
	}
	return p
}

func (p *LwPolyline) ObjectType() ObjectType { return TypeLwPolyline }
func (p *LwPolyline) ObjectName() string     { return "LWPOLYLINE" }
func (p *LwPolyline) SubclassMarker() string { return "AcDbPolyline" }

func (p *LwPolyline) IsClosed() bool { return p.Flags&PolylineClosed != 0 }

func (p *LwPolyline) Clone() CadObject {
	c := *p
	c.EntityBase = p.cloneEntityBase()
	c.Vertices = append([]LwVertex(nil), p.Vertices...)
	return &c
}
