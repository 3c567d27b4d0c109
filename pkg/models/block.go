package models

import "strings"

// Block flag bits (group code 70 of BLOCK).
const (
	BlockAnonymous     int16 = 1
	BlockHasAttributes int16 = 2
	BlockXref          int16 = 4
	BlockXrefOverlay   int16 = 8
	BlockExternal      int16 = 16
)

// Units is the insertion units of a block (group code 70 of BLOCK_RECORD).
type Units int16

const (
	UnitsUnitless Units = iota
	UnitsInches
	UnitsFeet
	UnitsMiles
	UnitsMillimeters
	UnitsCentimeters
	UnitsMeters
)

// BlockRecord owns a named collection of entities. *Model_Space holds the
// drawing entities, *Paper_Space the layout ones.
type BlockRecord struct {
	TableEntryBase
	Units      Units
	Explodable bool
	CanScale   bool

	block    *BlockEntity
	end      *BlockEnd
	entities *EntityList[Entity]
}

func NewBlockRecord(name string) *BlockRecord {
	r := &BlockRecord{Explodable: true, CanScale: true}
	r.name = name
	r.block = newBlockEntity(r)
	r.end = newBlockEnd()
	r.entities = newEntityList[Entity](r)
	return r
}

func (r *BlockRecord) ObjectType() ObjectType { return TypeBlockRecord }
func (r *BlockRecord) ObjectName() string     { return "BLOCK_RECORD" }
func (r *BlockRecord) SubclassMarker() string { return "AcDbBlockTableRecord" }

// Entities is the list of entities owned by the record.
func (r *BlockRecord) Entities() *EntityList[Entity] { return r.entities }

func (r *BlockRecord) BlockEntity() *BlockEntity { return r.block }

func (r *BlockRecord) BlockEnd() *BlockEnd { return r.end }

func (r *BlockRecord) IsModelSpace() bool { return strings.EqualFold(r.name, ModelSpaceName) }

// IsPaperSpace matches *Paper_Space and the numbered layouts *Paper_Space0...
func (r *BlockRecord) IsPaperSpace() bool {
	return strings.HasPrefix(strings.ToLower(r.name), strings.ToLower(PaperSpaceName))
}

func (r *BlockRecord) IsAnonymous() bool { return r.Flags&BlockAnonymous != 0 }

// AttributeDefinitions returns the attribute templates of the block.
func (r *BlockRecord) AttributeDefinitions() []*AttributeDefinition {
	var out []*AttributeDefinition
	for _, e := range r.entities.items {
		if a, ok := e.(*AttributeDefinition); ok {
			out = append(out, a)
		}
	}
	return out
}

func (r *BlockRecord) children() []CadObject {
	return append([]CadObject{r.block, r.end}, r.entities.objects()...)
}

func (r *BlockRecord) Clone() CadObject {
	c := &BlockRecord{Units: r.Units, Explodable: r.Explodable, CanScale: r.CanScale}
	c.TableEntryBase = r.cloneEntryBase()
	c.block = r.block.Clone().(*BlockEntity)
	c.block.record = c
	c.end = r.end.Clone().(*BlockEnd)
	c.entities = r.entities.cloneFor(c)
	return c
}

// BlockEntity is the BLOCK record that opens a block definition. Its name and
// flags are those of the owning record.
type BlockEntity struct {
	EntityBase
	BasePoint   XYZ
	XrefPath    string
	Description string

	record *BlockRecord
}

func newBlockEntity(r *BlockRecord) *BlockEntity {
	return &BlockEntity{EntityBase: newEntityBase(), record: r}
}

func (b *BlockEntity) ObjectType() ObjectType { return TypeBlockEntity }
func (b *BlockEntity) ObjectName() string     { return "BLOCK" }
func (b *BlockEntity) SubclassMarker() string { return "AcDbBlockBegin" }

func (b *BlockEntity) Name() string {
	if b.record == nil {
		return ""
	}
	return b.record.Name()
}

func (b *BlockEntity) Flags() int16 {
	if b.record == nil {
		return 0
	}
	return b.record.Flags
}

func (b *BlockEntity) Record() *BlockRecord { return b.record }

func (b *BlockEntity) Clone() CadObject {
	c := *b
	c.EntityBase = b.cloneEntityBase()
	c.record = nil
	return &c
}

// BlockEnd is the ENDBLK record closing a block definition.
type BlockEnd struct {
	EntityBase
}

func newBlockEnd() *BlockEnd {
	return &BlockEnd{EntityBase: newEntityBase()}
}

func (b *BlockEnd) ObjectType() ObjectType { return TypeBlockEnd }
func (b *BlockEnd) ObjectName() string     { return "ENDBLK" }
func (b *BlockEnd) SubclassMarker() string { return "AcDbBlockEnd" }

func (b *BlockEnd) Clone() CadObject {
	c := *b
	c.EntityBase = b.cloneEntityBase()
	return &c
}
