package dxf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// record is one 0-delimited object of a section: its name and every pair up
// to the next code 0.
type record struct {
	name  string
	pairs []groupcode.Pair
}

func (r *record) str(code int) string {
	for _, p := range r.pairs {
		if p.Code == code {
			s, _ := asString(p.Value)
			return s
		}
	}
	return ""
}

func (r *record) handle(codes ...int) models.Handle {
	for _, p := range r.pairs {
		for _, c := range codes {
			if p.Code == c {
				h, _ := asHandle(p.Value)
				return h
			}
		}
	}
	return 0
}

// link is a Name or Handle reference resolved once the document is attached.
type link struct {
	field *mapping.Field
	dst   any
	key   any
	owner models.CadObject
}

// dictEntry is a dictionary name/handle pair waiting for its target.
type dictEntry struct {
	dict   *models.CadDictionary
	name   string
	handle models.Handle
}

// xdictRef is the extension dictionary handle read from an object.
type xdictRef struct {
	obj    models.CadObject
	handle models.Handle
}

// DocumentReader rebuilds a Document from a StreamReader. Sections are read
// into records first; objects are then created free with the handles of the
// file, wired into their owners and attached in one pass, after which the
// Name and Handle references are resolved.
type DocumentReader struct {
	r    StreamReader
	cfg  *Config
	note notifier
	doc  *models.Document

	sections map[string][]*record
	objects  map[models.Handle]models.CadObject
	owners   map[models.CadObject]models.Handle
	claimed  map[models.CadObject]bool
	xdicts   []xdictRef
	entries  []dictEntry
	links    []link

	nonGraphical []models.CadObject
	root         *models.CadDictionary
}

// NewDocumentReader reads from r. A nil cfg uses NewConfig.
func NewDocumentReader(r StreamReader, cfg *Config) *DocumentReader {
	if cfg == nil {
		cfg = NewConfig()
	}
	cfg = cfg.forDocument(nil)
	return &DocumentReader{
		r:    r,
		cfg:  cfg,
		note: notifier{cfg: cfg},
		doc:  models.NewEmptyDocument(),

		sections: make(map[string][]*record),
		objects:  make(map[models.Handle]models.CadObject),
		owners:   make(map[models.CadObject]models.Handle),
		claimed:  make(map[models.CadObject]bool),
	}
}

// Document returns the document being built.
func (dr *DocumentReader) Document() *models.Document { return dr.doc }

// Object resolves an attached object by handle.
func (dr *DocumentReader) Object(h models.Handle) (models.CadObject, bool) {
	return dr.doc.Object(h)
}

// Read reads every section and returns the attached document. ctx is
// checked between sections.
func (dr *DocumentReader) Read(ctx context.Context) (*models.Document, error) {
	if err := dr.readSections(ctx); err != nil {
		return nil, err
	}
	if err := dr.build(); err != nil {
		return nil, err
	}
	return dr.doc, nil
}

func (dr *DocumentReader) next() (groupcode.Pair, error) {
	p, err := dr.pair()
	if err == io.EOF {
		return p, malformed("unexpected end of stream")
	}
	return p, err
}

// pair returns the next pair that is not a 999 comment.
func (dr *DocumentReader) pair() (groupcode.Pair, error) {
	for {
		p, err := dr.r.Next()
		if err != nil || p.Code != groupcode.CommentCode {
			return p, err
		}
	}
}

func (dr *DocumentReader) readSections(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := dr.pair()
		if err == io.EOF {
			return dr.note.warn("stream ends without EOF", nil)
		}
		if err != nil {
			return err
		}
		name, _ := asString(p.Value)
		if p.Code != groupcode.Start {
			return malformed("expected a SECTION, got group code %d", p.Code)
		}
		switch name {
		case "EOF":
			return nil
		case "SECTION":
		default:
			return malformed("expected a SECTION, got %q", name)
		}

		p, err = dr.next()
		if err != nil {
			return err
		}
		section, _ := asString(p.Value)
		if p.Code != groupcode.Name || section == "" {
			return malformed("section without a name")
		}
		dr.cfg.Logger.Debug("reading section", "section", section)

		if section == SectionHeader {
			err = dr.readHeader()
		} else {
			err = dr.readRecords(section)
		}
		if err != nil {
			return fmt.Errorf("section %s: %w", section, err)
		}
	}
}

func (dr *DocumentReader) readHeader() error {
	var (
		name  string
		pairs []groupcode.Pair
	)
	flush := func() error {
		if name == "" {
			return nil
		}
		v, ok := lookupHeaderVar(name)
		if !ok {
			dr.note.info(fmt.Sprintf("header variable %s ignored", name))
			return nil
		}
		if err := v.set(dr.doc.Header, pairs); err != nil {
			if errors.Is(err, ErrUnsupportedVersion) {
				return err
			}
			return dr.note.warn("invalid header variable "+name, err)
		}
		if name == "$ACADVER" || name == "$DWGCODEPAGE" {
			dr.updateText()
		}
		return nil
	}

	for {
		p, err := dr.next()
		if err != nil {
			return err
		}
		if p.Code == groupcode.Start {
			if s, _ := asString(p.Value); s == "ENDSEC" {
				return flush()
			}
			return malformed("unexpected record %v in HEADER", p.Value)
		}
		if p.Code == groupcode.VariableName {
			if err := flush(); err != nil {
				return err
			}
			name, _ = asString(p.Value)
			pairs = nil
			continue
		}
		pairs = append(pairs, p)
	}
}

// updateText switches string decoding to the drawing code page.
func (dr *DocumentReader) updateText() {
	t, ok := dr.r.(textAware)
	if !ok {
		return
	}
	codePage := dr.cfg.CodePage
	if codePage == "" {
		codePage = dr.doc.Header.CodePage
	}
	t.setText(newTextCodec(codePage, dr.doc.Header.Version.IsUnicode()))
}

func (dr *DocumentReader) readRecords(section string) error {
	var (
		recs []*record
		cur  *record
	)
	for {
		p, err := dr.next()
		if err != nil {
			return err
		}
		if p.Code == groupcode.Start {
			name, _ := asString(p.Value)
			if name == "ENDSEC" {
				dr.sections[section] = recs
				return nil
			}
			cur = &record{name: name}
			recs = append(recs, cur)
			continue
		}
		if cur == nil {
			return malformed("group code %d before the first record", p.Code)
		}
		cur.pairs = append(cur.pairs, p)
	}
}

// build creates the objects in dependency order and attaches them.
func (dr *DocumentReader) build() error {
	steps := []func() error{
		dr.buildClasses,
		dr.buildTables,
		dr.buildBlocks,
		dr.buildEntities,
		dr.buildObjects,
		dr.claimEntries,
		dr.claimXDictionaries,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	for name := range dr.sections {
		switch name {
		case SectionClasses, SectionTables, SectionBlocks, SectionEntities, SectionObjects:
		default:
			dr.note.info(fmt.Sprintf("section %s ignored", name))
		}
	}

	doc := dr.doc
	doc.ReserveHandles(doc.Header.HandleSeed)
	if err := doc.AttachTables(); err != nil {
		return err
	}
	if dr.root != nil {
		if err := doc.SetRootDictionary(dr.root); err != nil {
			return fmt.Errorf("attaching root dictionary: %w", err)
		}
	}
	for _, l := range dr.links {
		if l.owner.Document() == nil {
			continue
		}
		if err := l.field.Link(dr, l.dst, l.key); err != nil {
			msg := fmt.Sprintf("%s %s: reference %s", l.owner.ObjectName(), l.owner.Handle(), l.field.Name)
			if err := dr.note.warn(msg, err); err != nil {
				return err
			}
		}
	}
	return doc.EnsureDefaults()
}

func (dr *DocumentReader) buildClasses() error {
	for _, rec := range dr.sections[SectionClasses] {
		if rec.name != "CLASS" {
			if err := dr.note.warn("unexpected record "+rec.name+" in CLASSES", nil); err != nil {
				return err
			}
			continue
		}
		cls := &models.DxfClass{}
		for _, p := range rec.pairs {
			switch p.Code {
			case 1:
				cls.DxfName, _ = asString(p.Value)
			case 2:
				cls.CppClassName, _ = asString(p.Value)
			case 3:
				cls.ApplicationName, _ = asString(p.Value)
			case 90:
				i, _ := asInt(p.Value)
				cls.ProxyFlags = int32(i)
			case 91:
				i, _ := asInt(p.Value)
				cls.InstanceCount = int32(i)
			case 280:
				cls.WasAProxy, _ = asBool(p.Value)
			case 281:
				cls.IsAnEntity, _ = asBool(p.Value)
			}
		}
		dr.doc.Classes.AddOrUpdate(cls)
	}
	return nil
}

func (dr *DocumentReader) symbolTable(name string) models.SymbolTable {
	for _, t := range dr.doc.SymbolTables() {
		if strings.EqualFold(t.Name(), name) {
			return t
		}
	}
	return nil
}

// register records the file handle of obj. A handle seen twice keeps its
// first object; the later one gets a new handle on attach.
func (dr *DocumentReader) register(obj models.CadObject, h models.Handle) error {
	if h == 0 {
		return nil
	}
	if prev, ok := dr.objects[h]; ok && prev != obj {
		return dr.note.warn(fmt.Sprintf("handle %s used by %s and %s", h, prev.ObjectName(), obj.ObjectName()), nil)
	}
	dr.objects[h] = obj
	return models.SetHandle(obj, h)
}

func (dr *DocumentReader) buildTables() error {
	var table models.SymbolTable
	for _, rec := range dr.sections[SectionTables] {
		switch rec.name {
		case "TABLE":
			table = dr.symbolTable(rec.str(groupcode.Name))
			if table == nil {
				if err := dr.note.warn("unknown table "+rec.str(groupcode.Name), nil); err != nil {
					return err
				}
				continue
			}
			if err := dr.register(table, rec.handle(groupcode.ObjectHandle)); err != nil {
				return err
			}
		case "ENDTAB":
			table = nil
		default:
			if table == nil {
				continue
			}
			obj, err := dr.newObject(rec)
			if err != nil {
				if err := dr.note.warn("table entry skipped", err); err != nil {
					return err
				}
				continue
			}
			if err := dr.populate(obj, rec); err != nil {
				return err
			}
			if err := dr.addEntry(obj.(models.TableEntry)); err != nil {
				if err := dr.note.warn("table entry skipped", err); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (dr *DocumentReader) addEntry(e models.TableEntry) error {
	doc := dr.doc
	switch e := e.(type) {
	case *models.AppID:
		return doc.AppIDs.Add(e)
	case *models.BlockRecord:
		return doc.BlockRecords.Add(e)
	case *models.DimensionStyle:
		return doc.DimensionStyles.Add(e)
	case *models.Layer:
		return doc.Layers.Add(e)
	case *models.LineType:
		return doc.LineTypes.Add(e)
	case *models.TextStyle:
		return doc.TextStyles.Add(e)
	case *models.UCS:
		return doc.UCSs.Add(e)
	case *models.View:
		return doc.Views.Add(e)
	case *models.VPort:
		return doc.VPorts.Add(e)
	}
	return fmt.Errorf("%w: %s", ErrNotImplemented, e.ObjectName())
}

func (dr *DocumentReader) blockRecord(name string) (*models.BlockRecord, error) {
	if r, ok := dr.doc.BlockRecords.Get(name); ok {
		return r, nil
	}
	r := models.NewBlockRecord(name)
	if err := dr.doc.BlockRecords.Add(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (dr *DocumentReader) buildBlocks() error {
	var (
		current *models.BlockRecord
		sink    *entitySink
	)
	for _, rec := range dr.sections[SectionBlocks] {
		switch rec.name {
		case "BLOCK":
			r, err := dr.blockRecord(rec.str(groupcode.Name))
			if err != nil {
				if err := dr.note.warn("block skipped", err); err != nil {
					return err
				}
				current, sink = nil, nil
				continue
			}
			current = r
			sink = &entitySink{dr: dr, owner: func(models.Handle) *models.BlockRecord { return r }}
			if err := dr.populate(r.BlockEntity(), rec); err != nil {
				return err
			}
		case "ENDBLK":
			if current != nil {
				if err := dr.populate(current.BlockEnd(), rec); err != nil {
					return err
				}
			}
			current, sink = nil, nil
		default:
			if sink == nil {
				if err := dr.note.warn(rec.name+" outside of a block", nil); err != nil {
					return err
				}
				continue
			}
			if err := sink.add(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (dr *DocumentReader) buildEntities() error {
	sink := &entitySink{dr: dr, owner: func(h models.Handle) *models.BlockRecord {
		if r, ok := dr.objects[h].(*models.BlockRecord); ok {
			return r
		}
		r, _ := dr.blockRecord(models.ModelSpaceName)
		return r
	}}
	for _, rec := range dr.sections[SectionEntities] {
		if err := sink.add(rec); err != nil {
			return err
		}
	}
	return nil
}

// entitySink adds entity records to their block record and routes the
// VERTEX, ATTRIB and SEQEND records that follow a container to it.
type entitySink struct {
	dr        *DocumentReader
	owner     func(h models.Handle) *models.BlockRecord
	container models.Entity
}

func (s *entitySink) add(rec *record) error {
	dr := s.dr
	switch rec.name {
	case "VERTEX":
		var err error
		switch p := s.container.(type) {
		case *models.Polyline2D:
			v := models.NewVertex2D(models.XYZ{})
			if err = dr.populate(v, rec); err == nil {
				err = p.Vertices().Add(v)
			}
		case *models.Polyline3D:
			v := models.NewVertex3D(models.XYZ{})
			if err = dr.populate(v, rec); err == nil {
				err = p.Vertices().Add(v)
			}
		default:
			return dr.note.warn("VERTEX without a POLYLINE", nil)
		}
		return err
	case "ATTRIB":
		ins, ok := s.container.(*models.Insert)
		if !ok {
			return dr.note.warn("ATTRIB without an INSERT", nil)
		}
		a := models.NewAttributeEntity("", "")
		if err := dr.populate(a, rec); err != nil {
			return err
		}
		return ins.Attributes().Add(a)
	case "SEQEND":
		var seqend *models.Seqend
		switch c := s.container.(type) {
		case *models.Polyline2D:
			seqend = c.Seqend()
		case *models.Polyline3D:
			seqend = c.Seqend()
		case *models.Insert:
			seqend = c.Seqend()
		default:
			return dr.note.warn("SEQEND without a container", nil)
		}
		s.container = nil
		return dr.populate(seqend, rec)
	}

	s.container = nil
	obj, err := dr.newObject(rec)
	if err != nil {
		return dr.note.warn("entity skipped", err)
	}
	e, ok := obj.(models.Entity)
	if !ok {
		return dr.note.warn(rec.name+" is not an entity", nil)
	}
	if err := dr.populate(e, rec); err != nil {
		return err
	}
	r := s.owner(dr.owners[e])
	if r == nil {
		return dr.note.warn(rec.name+" has no block record", nil)
	}
	if err := r.Entities().Add(e); err != nil {
		return dr.note.warn(rec.name+" skipped", err)
	}

	switch e.(type) {
	case *models.Polyline2D, *models.Polyline3D:
		s.container = e
	case *models.Insert:
		for _, p := range rec.pairs {
			if p.Code == 66 {
				if follow, _ := asBool(p.Value); follow {
					s.container = e
				}
			}
		}
	}
	return nil
}

func (dr *DocumentReader) buildObjects() error {
	for _, rec := range dr.sections[SectionObjects] {
		obj, err := dr.newObject(rec)
		if err != nil {
			if err := dr.note.warn("object skipped", err); err != nil {
				return err
			}
			continue
		}
		if err := dr.populate(obj, rec); err != nil {
			return err
		}
		dr.nonGraphical = append(dr.nonGraphical, obj)
		// the first dictionary owned by nothing is the named object dictionary
		if d, ok := obj.(*models.CadDictionary); ok && dr.root == nil && dr.owners[d] == 0 {
			dr.root = d
		}
	}
	return nil
}

// claimEntries adds the dictionary entries to their dictionaries, in file
// order, while everything is still free.
func (dr *DocumentReader) claimEntries() error {
	for _, e := range dr.entries {
		target, ok := dr.objects[e.handle].(models.NonGraphicalObject)
		if !ok || dr.claimed[target] || target == models.NonGraphicalObject(dr.root) {
			msg := fmt.Sprintf("dictionary %s: entry %q handle %s cannot be resolved", e.dict.Handle(), e.name, e.handle)
			if err := dr.note.warn(msg, nil); err != nil {
				return err
			}
			continue
		}
		if err := target.SetName(e.name); err != nil {
			if err := dr.note.warn("dictionary entry skipped", err); err != nil {
				return err
			}
			continue
		}
		if err := e.dict.Add(target); err != nil {
			if err := dr.note.warn("dictionary entry "+e.name+" skipped", err); err != nil {
				return err
			}
			continue
		}
		dr.claimed[target] = true
	}
	return nil
}

func (dr *DocumentReader) claimXDictionaries() error {
	for _, x := range dr.xdicts {
		d, ok := dr.objects[x.handle].(*models.CadDictionary)
		if !ok || dr.claimed[d] || d == dr.root {
			msg := fmt.Sprintf("%s %s: extension dictionary %s cannot be resolved", x.obj.ObjectName(), x.obj.Handle(), x.handle)
			if err := dr.note.warn(msg, nil); err != nil {
				return err
			}
			continue
		}
		x.obj.SetXDictionary(d)
		dr.claimed[d] = true
	}

	for _, obj := range dr.nonGraphical {
		if !dr.claimed[obj] && obj != models.CadObject(dr.root) {
			msg := fmt.Sprintf("%s %s is not owned by any dictionary", obj.ObjectName(), obj.Handle())
			if err := dr.note.warn(msg, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
