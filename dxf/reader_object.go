package dxf

import (
	"fmt"
	"strings"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// constructors create a free object for a record name. Defaults are replaced
// by the values read.
var constructors = map[string]func() models.CadObject{
	"APPID":        func() models.CadObject { return models.NewAppID("") },
	"BLOCK_RECORD": func() models.CadObject { return models.NewBlockRecord("") },
	"DIMSTYLE":     func() models.CadObject { return models.NewDimensionStyle("") },
	"LAYER":        func() models.CadObject { return models.NewLayer("") },
	"LTYPE":        func() models.CadObject { return models.NewLineType("") },
	"STYLE":        func() models.CadObject { return models.NewTextStyle("") },
	"UCS":          func() models.CadObject { return models.NewUCS("") },
	"VIEW":         func() models.CadObject { return models.NewView("") },
	"VPORT":        func() models.CadObject { return models.NewVPort("") },

	"POINT":      func() models.CadObject { return models.NewPoint(models.XYZ{}) },
	"LINE":       func() models.CadObject { return models.NewLine(models.XYZ{}, models.XYZ{}) },
	"CIRCLE":     func() models.CadObject { return models.NewCircle(models.XYZ{}, 0) },
	"ARC":        func() models.CadObject { return models.NewArc(models.XYZ{}, 0, 0, 0) },
	"ELLIPSE":    func() models.CadObject { return models.NewEllipse(models.XYZ{}, models.XYZ{X: 1}, 1) },
	"TEXT":       func() models.CadObject { return models.NewText("", models.XYZ{}, 1) },
	"ATTDEF":     func() models.CadObject { return models.NewAttributeDefinition("", "", "") },
	"ATTRIB":     func() models.CadObject { return models.NewAttributeEntity("", "") },
	"INSERT":     func() models.CadObject { return models.NewInsert(nil, models.XYZ{}) },
	"LWPOLYLINE": func() models.CadObject { return models.NewLwPolyline() },
	"HATCH":      func() models.CadObject { return models.NewHatch() },

	"DICTIONARY": func() models.CadObject { return models.NewDictionary("") },
	"XRECORD":    func() models.CadObject { return models.NewXRecord("") },
	"GROUP":      func() models.CadObject { return models.NewGroup("") },
	"MATERIAL":   func() models.CadObject { return models.NewMaterial("") },
}

// newObject creates the free object a record describes.
func (dr *DocumentReader) newObject(rec *record) (models.CadObject, error) {
	if rec.name == "POLYLINE" {
		if is3DPolyline(rec) {
			return models.NewPolyline3D(), nil
		}
		return models.NewPolyline2D(), nil
	}
	create, ok := constructors[strings.ToUpper(rec.name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, rec.name)
	}
	return create(), nil
}

func is3DPolyline(rec *record) bool {
	for _, p := range rec.pairs {
		switch p.Code {
		case groupcode.Subclass:
			if s, _ := asString(p.Value); strings.EqualFold(s, "AcDb3dPolyline") {
				return true
			}
		case 70:
			if i, ok := asInt(p.Value); ok && int16(i)&models.PolylineIs3D != 0 {
				return true
			}
		}
	}
	return false
}

// populate sets the fields of obj from the pairs of rec. Owners, extension
// dictionaries, dictionary entries and references are collected on the
// reader to be wired once every object exists.
func (dr *DocumentReader) populate(obj models.CadObject, rec *record) error {
	m, err := dr.cfg.Catalog.Get(obj.ObjectType())
	if err != nil {
		if err := dr.note.warn(fmt.Sprintf("%s has no mapping", rec.name), err); err != nil {
			return err
		}
		m = nil
	}
	rr := &recordReader{dr: dr, obj: obj, m: m, rec: rec}
	return rr.run()
}

// recordReader walks the pairs of one record.
type recordReader struct {
	dr  *DocumentReader
	obj models.CadObject
	m   *mapping.Mapping
	rec *record
	pos int

	subclass string
	// count is the Count field whose elements are being read, item the
	// element being filled.
	count *mapping.Field
	item  any

	app      *models.AppID
	xrecords []models.ExtendedDataRecord

	entryName   string
	xrecordSeen bool
}

func (rr *recordReader) more() bool { return rr.pos < len(rr.rec.pairs) }

func (rr *recordReader) take() groupcode.Pair {
	p := rr.rec.pairs[rr.pos]
	rr.pos++
	return p
}

func (rr *recordReader) peek() (groupcode.Pair, bool) {
	if !rr.more() {
		return groupcode.Pair{}, false
	}
	return rr.rec.pairs[rr.pos], true
}

func (rr *recordReader) warn(format string, args ...any) error {
	msg := fmt.Sprintf("%s %s: ", rr.rec.name, rr.obj.Handle()) + fmt.Sprintf(format, args...)
	return rr.dr.note.warn(msg, nil)
}

func (rr *recordReader) run() error {
	for rr.more() {
		p := rr.take()
		if err := rr.pair(p); err != nil {
			return err
		}
	}
	rr.flushXData()
	return nil
}

func (rr *recordReader) pair(p groupcode.Pair) error {
	if rr.app != nil {
		if p.Code >= 1000 && p.Code != groupcode.XDataApp {
			rr.xrecords = appendPoint(rr.xrecords, p, func(code int, v any) models.ExtendedDataRecord {
				return models.ExtendedDataRecord{Code: code, Value: v}
			})
			return nil
		}
		rr.flushXData()
	}

	switch p.Code {
	case groupcode.XDataApp:
		name, _ := asString(p.Value)
		rr.startXData(name)
		return nil
	case groupcode.Subclass:
		rr.subclass, _ = asString(p.Value)
		rr.count, rr.item = nil, nil
		return nil
	case groupcode.ControlString:
		return rr.group(p)
	}

	if rr.subclass == "" {
		switch p.Code {
		case groupcode.ObjectHandle, groupcode.DimStyleHandle:
			h, _ := asHandle(p.Value)
			return rr.dr.register(rr.obj, h)
		case groupcode.SoftPointer:
			h, _ := asHandle(p.Value)
			rr.dr.owners[rr.obj] = h
			return nil
		}
	}

	if done, err := rr.hook(p); done || err != nil {
		return err
	}
	if rr.m == nil {
		return nil
	}

	if rr.count != nil {
		if el, ok := rr.count.Element(p.Code); ok {
			return rr.element(el, p)
		}
		rr.count, rr.item = nil, nil
	}

	f, ok := rr.m.Lookup(rr.subclass, p.Code)
	if !ok {
		return rr.warn("unknown group code %d", p.Code)
	}
	if f.Ref.Has(mapping.Count) {
		rr.count, rr.item = f, nil
		if el, ok := f.Element(p.Code); ok && p.Code != f.CountCode {
			return rr.element(el, p)
		}
		return nil
	}
	return rr.set(f, rr.obj, p)
}

// element fills the current item of a Count field. The first element code
// starts a new item.
func (rr *recordReader) element(el *mapping.Field, p groupcode.Pair) error {
	if rr.count.Append == nil {
		return nil
	}
	if rr.item == nil || p.Code == rr.count.Elements[0].Code {
		rr.item = rr.count.Append(rr.obj)
	}
	return rr.set(el, rr.item, p)
}

func (rr *recordReader) set(f *mapping.Field, dst any, p groupcode.Pair) error {
	if f.Link != nil && f.Ref.Has(mapping.Name|mapping.Handle) {
		var key any
		if f.Ref.Has(mapping.Name) {
			name, _ := asString(p.Value)
			if name == "" {
				return nil
			}
			key = name
		} else {
			key, _ = asHandle(p.Value)
		}
		rr.dr.links = append(rr.dr.links, link{field: f, dst: dst, key: key, owner: rr.obj})
		return nil
	}
	if f.Set == nil {
		return nil
	}
	value := p.Value
	if f.Ref.Has(mapping.IsAngle) {
		if deg, ok := asFloat(value); ok {
			value = toRadians(deg)
		}
	}
	if err := f.Set(dst, p.Code, value); err != nil {
		return rr.dr.note.warn(fmt.Sprintf("%s %s: field %s", rr.rec.name, rr.obj.Handle(), f.Name), err)
	}
	return nil
}

// group reads a 102 control group. Only the extension dictionary group is
// kept; reactors and application groups are skipped.
func (rr *recordReader) group(open groupcode.Pair) error {
	name, _ := asString(open.Value)
	if name == "}" {
		return nil
	}
	for rr.more() {
		p := rr.take()
		if p.Code == groupcode.ControlString {
			return nil
		}
		if strings.EqualFold(name, "{ACAD_XDICTIONARY") && p.Code == groupcode.HardOwner {
			if h, ok := asHandle(p.Value); ok && h != 0 {
				rr.dr.xdicts = append(rr.dr.xdicts, xdictRef{obj: rr.obj, handle: h})
			}
		}
	}
	return rr.warn("group %s is not closed", name)
}

func (rr *recordReader) startXData(name string) {
	if app, ok := rr.dr.doc.AppIDs.Get(name); ok {
		rr.app = app
	} else {
		rr.app = models.NewAppID(name)
	}
	rr.xrecords = nil
}

func (rr *recordReader) flushXData() {
	if rr.app == nil {
		return
	}
	rr.obj.ExtendedData().Add(rr.app, rr.xrecords...)
	rr.app, rr.xrecords = nil, nil
}

// hook handles the pairs whose layout the catalog does not describe. It
// reports whether p was consumed.
func (rr *recordReader) hook(p groupcode.Pair) (bool, error) {
	switch obj := rr.obj.(type) {
	case *models.CadDictionary:
		switch p.Code {
		case 3:
			rr.entryName, _ = asString(p.Value)
			return true, nil
		case 350, 360:
			h, _ := asHandle(p.Value)
			rr.dr.entries = append(rr.dr.entries, dictEntry{dict: obj, name: rr.entryName, handle: h})
			rr.entryName = ""
			return true, nil
		}
	case *models.XRecord:
		if !strings.EqualFold(rr.subclass, "AcDbXrecord") {
			return false, nil
		}
		if p.Code == 280 && !rr.xrecordSeen {
			rr.xrecordSeen = true
			return false, nil
		}
		rr.xrecordSeen = true
		obj.Entries = appendPoint(obj.Entries, p, func(code int, v any) models.XRecordEntry {
			return models.XRecordEntry{Code: code, Value: v}
		})
		return true, nil
	case *models.Hatch:
		if p.Code == 91 && strings.EqualFold(rr.subclass, "AcDbHatch") {
			return true, rr.hatchPaths(obj, p)
		}
	}
	return false, nil
}

// appendPoint appends p to records, folding the second and third components
// of a point into the XY or XYZ started by the first.
func appendPoint[R any](records []R, p groupcode.Pair, mk func(code int, v any) R) []R {
	base, axis, ok := pointAxis(p.Code)
	if !ok {
		return append(records, mk(p.Code, p.Value))
	}
	f, _ := asFloat(p.Value)
	if axis == 0 {
		return append(records, mk(p.Code, models.XY{X: f}))
	}
	if n := len(records); n > 0 {
		last := &records[n-1]
		code, value := recordOf(last)
		if code == base {
			switch v := value.(type) {
			case models.XY:
				if axis == 1 {
					*last = mk(code, v.WithComponent(1, f))
					return records
				}
				*last = mk(code, models.XYZ{X: v.X, Y: v.Y, Z: f})
				return records
			case models.XYZ:
				*last = mk(code, v.WithComponent(axis, f))
				return records
			}
		}
	}
	return append(records, mk(p.Code, p.Value))
}

func recordOf(r any) (int, any) {
	switch r := r.(type) {
	case *models.ExtendedDataRecord:
		return r.Code, r.Value
	case *models.XRecordEntry:
		return r.Code, r.Value
	}
	return 0, nil
}

// pointAxis returns the first code of the point p belongs to and its axis,
// for the point codes 10..39 and 1010..1039.
func pointAxis(code int) (base, axis int, ok bool) {
	switch {
	case code >= 10 && code <= 39:
		return 10 + code%10, (code - 10) / 10, true
	case code >= 1010 && code <= 1039:
		return 1010 + code%10, (code - 1010) / 10, true
	}
	return 0, 0, false
}

// hatchPaths reads the boundary paths that follow the 91 count. A path that
// does not match the expected layout is dropped with a warning and reading
// resumes at the hatch style.
func (rr *recordReader) hatchPaths(h *models.Hatch, count groupcode.Pair) error {
	n, _ := asInt(count.Value)
	s := &pathScanner{rr: rr}
	for i := int64(0); i < n && s.err == nil; i++ {
		path := s.path()
		if s.err == nil {
			h.Paths = append(h.Paths, path)
		}
	}
	if s.err == nil {
		return nil
	}
	for {
		p, ok := rr.peek()
		if !ok || p.Code == 75 || p.Code == groupcode.Subclass || p.Code == groupcode.XDataApp {
			break
		}
		rr.pos++
	}
	return rr.warn("boundary path: %v", s.err)
}

type pathScanner struct {
	rr  *recordReader
	err error
}

func (s *pathScanner) next(code int) any {
	if s.err != nil {
		return nil
	}
	p, ok := s.rr.peek()
	if !ok {
		s.err = fmt.Errorf("expected code %d, got end of record", code)
		return nil
	}
	if p.Code != code {
		s.err = fmt.Errorf("expected code %d, got %d", code, p.Code)
		return nil
	}
	s.rr.pos++
	return p.Value
}

func (s *pathScanner) float(code int) float64 {
	f, _ := asFloat(s.next(code))
	return f
}

func (s *pathScanner) int(code int) int64 {
	i, _ := asInt(s.next(code))
	return i
}

func (s *pathScanner) bool(code int) bool {
	b, _ := asBool(s.next(code))
	return b
}

func (s *pathScanner) xy(code int) models.XY {
	return models.XY{X: s.float(code), Y: s.float(code + 10)}
}

func (s *pathScanner) path() models.HatchBoundaryPath {
	var path models.HatchBoundaryPath
	path.Flags = int32(s.int(92))
	if path.IsPolyline() {
		bulge := s.bool(72)
		path.IsClosed = s.bool(73)
		n := s.int(93)
		for i := int64(0); i < n && s.err == nil; i++ {
			v := models.HatchPolylineVertex{Location: s.xy(10)}
			if p, ok := s.rr.peek(); bulge && ok && p.Code == 42 {
				v.Bulge = s.float(42)
			}
			path.Vertices = append(path.Vertices, v)
		}
	} else {
		n := s.int(93)
		for i := int64(0); i < n && s.err == nil; i++ {
			if e := s.edge(); e != nil {
				path.Edges = append(path.Edges, e)
			}
		}
	}
	// source boundary objects are not kept
	k := s.int(97)
	for i := int64(0); i < k && s.err == nil; i++ {
		s.next(330)
	}
	return path
}

func (s *pathScanner) edge() models.HatchEdge {
	switch t := models.HatchEdgeType(s.int(72)); t {
	case models.HatchEdgeLine:
		return models.HatchLineEdge{Start: s.xy(10), End: s.xy(11)}
	case models.HatchEdgeArc:
		return models.HatchArcEdge{
			Center:           s.xy(10),
			Radius:           s.float(40),
			StartAngle:       toRadians(s.float(50)),
			EndAngle:         toRadians(s.float(51)),
			CounterClockwise: s.bool(73),
		}
	case models.HatchEdgeEllipse:
		return models.HatchEllipseEdge{
			Center:            s.xy(10),
			MajorAxisEndPoint: s.xy(11),
			MinorToMajorRatio: s.float(40),
			StartAngle:        toRadians(s.float(50)),
			EndAngle:          toRadians(s.float(51)),
			CounterClockwise:  s.bool(73),
		}
	default:
		if s.err == nil {
			s.err = fmt.Errorf("edge type %d not supported", t)
		}
	}
	return nil
}
