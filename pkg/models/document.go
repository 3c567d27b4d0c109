package models

import "fmt"

// Document is the root of the object graph. It owns the tables, the root
// dictionary and the handle space; every attached object is reachable through
// Object by handle.
type Document struct {
	Header  *Header
	Classes *ClassCollection

	AppIDs          *Table[*AppID]
	BlockRecords    *Table[*BlockRecord]
	DimensionStyles *Table[*DimensionStyle]
	Layers          *Table[*Layer]
	LineTypes       *Table[*LineType]
	TextStyles      *Table[*TextStyle]
	UCSs            *Table[*UCS]
	Views           *Table[*View]
	VPorts          *Table[*VPort]

	root       *CadDictionary
	objects    map[Handle]CadObject
	nextHandle Handle
}

// NewDocument returns a document holding the default entries every drawing
// needs: layer "0", the ByLayer/ByBlock/Continuous line types, the Standard
// styles, model and paper space.
func NewDocument() *Document {
	d := NewEmptyDocument()
	if err := d.EnsureDefaults(); err != nil {
		panic(fmt.Sprintf("models: creating default document: %v", err))
	}
	return d
}

// NewEmptyDocument returns a document whose tables are empty and not yet
// attached. Readers use it to keep the handles found in a file; call
// EnsureDefaults once the tables are populated.
func NewEmptyDocument() *Document {
	return &Document{
		Header:  NewHeader(),
		Classes: &ClassCollection{},

		AppIDs:          newTable("APPID", DefaultAppIDName, NewAppID),
		BlockRecords:    newTable("BLOCK_RECORD", ModelSpaceName, NewBlockRecord, PaperSpaceName),
		DimensionStyles: newTable("DIMSTYLE", DefaultDimStyleName, NewDimensionStyle),
		Layers:          newTable("LAYER", DefaultLayerName, NewLayer),
		LineTypes:       newTable("LTYPE", LineTypeByLayer, NewLineType, LineTypeByBlock, LineTypeContinuous),
		TextStyles:      newTable("STYLE", DefaultTextStyleName, NewTextStyle),
		UCSs:            newTable("UCS", "", NewUCS),
		Views:           newTable("VIEW", "", NewView),
		VPorts:          newTable("VPORT", ActiveVPortName, NewVPort),

		objects:    make(map[Handle]CadObject),
		nextHandle: 1,
	}
}

// SymbolTables returns the tables in the order of the TABLES section.
func (d *Document) SymbolTables() []SymbolTable {
	return []SymbolTable{
		d.VPorts, d.LineTypes, d.Layers, d.TextStyles, d.Views,
		d.UCSs, d.AppIDs, d.DimensionStyles, d.BlockRecords,
	}
}

// AttachTables attaches the tables that are still free. The order follows
// the reference dependencies between entries.
func (d *Document) AttachTables() error {
	tables := []CadObject{
		d.AppIDs, d.LineTypes, d.TextStyles, d.Layers, d.DimensionStyles,
		d.Views, d.UCSs, d.VPorts, d.BlockRecords,
	}
	for _, t := range tables {
		if t.Document() != nil {
			continue
		}
		if err := d.attach(t, 0); err != nil {
			return fmt.Errorf("attaching table %s: %w", t.(SymbolTable).Name(), err)
		}
	}
	return nil
}

// EnsureDefaults attaches the tables and creates every missing default entry.
func (d *Document) EnsureDefaults() error {
	if err := d.AttachTables(); err != nil {
		return err
	}

	d.AppIDs.Default()
	d.LineTypes.Default()
	for _, name := range []string{LineTypeByBlock, LineTypeContinuous} {
		if !d.LineTypes.Contains(name) {
			if err := d.LineTypes.Add(NewLineType(name)); err != nil {
				return err
			}
		}
	}
	d.TextStyles.Default()
	d.Layers.Default()
	d.DimensionStyles.Default()
	d.VPorts.Default()
	d.BlockRecords.Default()
	d.PaperSpace()

	d.Groups()
	materials := d.Materials()
	for _, name := range []string{MaterialByLayer, MaterialByBlock, MaterialGlobal} {
		if _, ok := materials.Get(name); !ok {
			if err := materials.Add(NewMaterial(name)); err != nil {
				return err
			}
		}
	}

	for _, cls := range defaultClasses() {
		if _, ok := d.Classes.Get(cls.DxfName); !ok {
			d.Classes.AddOrUpdate(cls)
		}
	}
	return nil
}

// Object looks up an attached object by handle.
func (d *Document) Object(h Handle) (CadObject, bool) {
	obj, ok := d.objects[h]
	return obj, ok
}

// Len returns the number of attached objects.
func (d *Document) Len() int { return len(d.objects) }

// NextHandle is the handle the next attached object receives; it is written
// as $HANDSEED.
func (d *Document) NextHandle() Handle { return d.nextHandle }

// ReserveHandles makes sure no handle below next is assigned to a new object.
func (d *Document) ReserveHandles(next Handle) {
	if next > d.nextHandle {
		d.nextHandle = next
	}
}

// ModelSpace returns the *Model_Space block record.
func (d *Document) ModelSpace() *BlockRecord { return d.BlockRecords.Default() }

// PaperSpace returns the *Paper_Space block record, creating it when missing.
func (d *Document) PaperSpace() *BlockRecord {
	if r, ok := d.BlockRecords.Get(PaperSpaceName); ok {
		return r
	}
	r := NewBlockRecord(PaperSpaceName)
	_ = d.BlockRecords.Add(r)
	return r
}

// Entities returns the model space entities.
func (d *Document) Entities() []Entity { return d.ModelSpace().Entities().All() }

// AddEntity adds a free entity to model space.
func (d *Document) AddEntity(e Entity) error { return d.ModelSpace().Entities().Add(e) }

// RootDictionary returns the named object dictionary, creating it on first use.
func (d *Document) RootDictionary() *CadDictionary {
	if d.root == nil {
		root := NewDictionary("")
		if err := d.attach(root, 0); err != nil {
			panic(fmt.Sprintf("models: attaching root dictionary: %v", err))
		}
		d.root = root
	}
	return d.root
}

// SetRootDictionary replaces the named object dictionary with a free one.
func (d *Document) SetRootDictionary(root *CadDictionary) error {
	if root == nil {
		return ErrNilObject
	}
	if root.Document() != nil {
		return ErrAlreadyAttached
	}
	if d.root != nil {
		d.detach(d.root)
	}
	if err := d.attach(root, 0); err != nil {
		return err
	}
	d.root = root
	return nil
}

// Groups returns the ACAD_GROUP dictionary.
func (d *Document) Groups() *CadDictionary { return d.rootEntry(GroupDictionaryName) }

// Materials returns the ACAD_MATERIAL dictionary.
func (d *Document) Materials() *CadDictionary { return d.rootEntry(MaterialDictionaryName) }

func (d *Document) rootEntry(name string) *CadDictionary {
	root := d.RootDictionary()
	if e, ok := root.Get(name); ok {
		if dict, ok := e.(*CadDictionary); ok {
			return dict
		}
	}
	dict := NewDictionary(name)
	if err := root.Add(dict); err != nil {
		// the name is taken by an object that is not a dictionary
		panic(fmt.Sprintf("models: adding %s: %v", name, err))
	}
	return dict
}

// attach inserts obj into the document: a handle is assigned unless the
// preset one is free, the owner is set, references are resolved into this
// document and the x-dictionary and owned children follow recursively.
func (d *Document) attach(obj CadObject, owner Handle) error {
	if isNil(obj) {
		return ErrNilObject
	}
	b := obj.base()
	switch b.doc {
	case nil:
	case d:
		return ErrAlreadyAttached
	default:
		return ErrWrongDocument
	}

	if _, used := d.objects[b.handle]; b.handle == 0 || used {
		b.handle = d.nextHandle
	}
	if b.handle >= d.nextHandle {
		d.nextHandle = b.handle + 1
	}
	b.doc = d
	b.owner = owner
	d.objects[b.handle] = obj

	for _, r := range obj.references() {
		r.join(d)
	}

	if b.xdict != nil {
		if b.xdict.Document() != nil {
			b.xdict = b.xdict.Clone().(*CadDictionary)
		}
		b.xdict.HardOwner = true
		if err := d.attach(b.xdict, b.handle); err != nil {
			return err
		}
	}

	for _, c := range obj.children() {
		if err := d.attach(c, b.handle); err != nil {
			return fmt.Errorf("attaching %s owned by %s: %w", c.ObjectName(), b.handle, err)
		}
	}
	return nil
}

// detach removes obj and everything it owns from the document. References
// are replaced by free copies so the object shares nothing with the document.
// The handle is kept.
func (d *Document) detach(obj CadObject) {
	if isNil(obj) {
		return
	}
	b := obj.base()
	if b.doc != d {
		return
	}
	for _, c := range obj.children() {
		d.detach(c)
	}
	if b.xdict != nil {
		d.detach(b.xdict)
	}
	for _, r := range obj.references() {
		r.leave(d)
	}
	delete(d.objects, b.handle)
	b.doc = nil
	b.owner = 0
	if obj == CadObject(d.root) {
		d.root = nil
	}
}
