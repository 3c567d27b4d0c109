package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go/pkg/models"
)

func TestNewDocument_defaults(t *testing.T) {
	doc := models.NewDocument()

	for _, tc := range []struct {
		table models.SymbolTable
		names []string
	}{
		{doc.Layers, []string{"0"}},
		{doc.LineTypes, []string{"ByLayer", "ByBlock", "Continuous"}},
		{doc.TextStyles, []string{"Standard"}},
		{doc.DimensionStyles, []string{"Standard"}},
		{doc.AppIDs, []string{"ACAD"}},
		{doc.VPorts, []string{"*Active"}},
		{doc.BlockRecords, []string{"*Model_Space", "*Paper_Space"}},
	} {
		t.Run(tc.table.Name(), func(t *testing.T) {
			assert.Equal(t, doc, tc.table.Document())
			assert.NotZero(t, tc.table.Handle())
			var names []string
			for _, e := range tc.table.Entries() {
				names = append(names, e.Name())
				assert.Equal(t, tc.table.Handle(), e.OwnerHandle())
			}
			for _, n := range tc.names {
				assert.Contains(t, names, n)
			}
		})
	}

	require.NotNil(t, doc.RootDictionary())
	assert.Equal(t, []string{"ACAD_GROUP", "ACAD_MATERIAL"}, doc.RootDictionary().Keys())
	assert.Equal(t, 3, doc.Materials().Len())
}

func TestDocument_handlesAreUnique(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	circle := models.NewCircle(models.XYZ{}, 2)
	require.NoError(t, doc.AddEntity(line))
	require.NoError(t, doc.AddEntity(circle))

	assert.NotZero(t, line.Handle())
	assert.NotEqual(t, line.Handle(), circle.Handle())
	assert.Greater(t, doc.NextHandle(), circle.Handle())

	got, ok := doc.Object(line.Handle())
	require.True(t, ok)
	assert.Same(t, line, got)
	assert.Same(t, doc.ModelSpace(), line.Owner())
}

func TestDocument_presetHandle(t *testing.T) {
	doc := models.NewDocument()

	free := models.NewPoint(models.XYZ{})
	require.NoError(t, models.SetHandle(free, 0x500))
	require.NoError(t, doc.AddEntity(free))
	assert.Equal(t, models.Handle(0x500), free.Handle())
	assert.Equal(t, models.Handle(0x501), doc.NextHandle())

	clash := models.NewPoint(models.XYZ{})
	require.NoError(t, models.SetHandle(clash, 0x500))
	require.NoError(t, doc.AddEntity(clash))
	assert.NotEqual(t, models.Handle(0x500), clash.Handle())

	assert.ErrorIs(t, models.SetHandle(clash, 0x900), models.ErrAlreadyAttached)
}

func TestEntity_layerCanonicalization(t *testing.T) {
	doc := models.NewDocument()

	a := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	b := models.NewLine(models.XYZ{}, models.XYZ{Y: 1})
	require.NoError(t, doc.AddEntity(a))
	require.NoError(t, doc.AddEntity(b))

	a.SetLayer(models.NewLayer("A"))
	b.SetLayer(models.NewLayer("a"))

	require.True(t, doc.Layers.Contains("A"))
	assert.Same(t, a.Layer(), b.Layer())
	assert.Equal(t, doc, a.Layer().Document())
	assert.Equal(t, "A", b.Layer().Name())
}

func TestEntity_freeOwnerKeepsRawValue(t *testing.T) {
	layer := models.NewLayer("A")
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	line.SetLayer(layer)
	assert.Same(t, layer, line.Layer())

	line.SetLayer(nil)
	assert.Equal(t, "0", line.Layer().Name())
	assert.Nil(t, line.Layer().Document())
}

func TestEntity_attachResolvesReferences(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	free := models.NewLayer("Walls")
	line.SetLayer(free)

	require.NoError(t, doc.AddEntity(line))

	layer, ok := doc.Layers.Get("walls")
	require.True(t, ok)
	assert.Same(t, layer, line.Layer())
	lt, _ := doc.LineTypes.Get("ByLayer")
	assert.Same(t, lt, line.LineType())
}

func TestEntity_referenceFromOtherDocumentIsCopied(t *testing.T) {
	src := models.NewDocument()
	dst := models.NewDocument()

	foreign := models.NewLayer("Shared")
	require.NoError(t, src.Layers.Add(foreign))

	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, dst.AddEntity(line))
	line.SetLayer(foreign)

	assert.NotSame(t, foreign, line.Layer())
	assert.Equal(t, dst, line.Layer().Document())
	assert.Equal(t, src, foreign.Document())
}

func TestTable_removeFallsBack(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, doc.AddEntity(line))

	dashed := models.NewLineType("Dashed")
	layer := models.NewLayer("A")
	layer.SetLineType(dashed)
	line.SetLayer(layer)
	line.SetLineType(dashed)

	removed, err := doc.LineTypes.Remove("dashed")
	require.NoError(t, err)
	assert.Nil(t, removed.Document())

	assert.Equal(t, "ByLayer", line.LineType().Name())
	assert.Equal(t, "Continuous", line.Layer().LineType().Name())

	_, err = doc.Layers.Remove("A")
	require.NoError(t, err)
	assert.Equal(t, "0", line.Layer().Name())
	assert.Equal(t, doc, line.Layer().Document())
}

func TestTable_protectedEntries(t *testing.T) {
	doc := models.NewDocument()

	for _, tc := range []struct {
		name string
		del  func() error
	}{
		{"layer 0", func() error { _, err := doc.Layers.Remove("0"); return err }},
		{"ByBlock", func() error { _, err := doc.LineTypes.Remove("BYBLOCK"); return err }},
		{"Continuous", func() error { _, err := doc.LineTypes.Remove("continuous"); return err }},
		{"model space", func() error { _, err := doc.BlockRecords.Remove("*Model_Space"); return err }},
		{"paper space", func() error { _, err := doc.BlockRecords.Remove("*Paper_Space"); return err }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.del(), models.ErrProtectedEntry)
		})
	}

	_, err := doc.Layers.Remove("missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTable_duplicateAndRename(t *testing.T) {
	doc := models.NewDocument()
	require.NoError(t, doc.Layers.Add(models.NewLayer("A")))
	assert.ErrorIs(t, doc.Layers.Add(models.NewLayer("a")), models.ErrDuplicateName)

	b := models.NewLayer("B")
	require.NoError(t, doc.Layers.Add(b))

	require.NoError(t, b.SetName("C"))
	_, ok := doc.Layers.Get("B")
	assert.False(t, ok)
	got, ok := doc.Layers.Get("c")
	require.True(t, ok)
	assert.Same(t, b, got)

	assert.ErrorIs(t, b.SetName("A"), models.ErrDuplicateName)
	assert.Equal(t, "C", b.Name())

	zero, _ := doc.Layers.Get("0")
	assert.ErrorIs(t, zero.SetName("Zero"), models.ErrProtectedEntry)
}

func TestDictionary_renameAndRemove(t *testing.T) {
	doc := models.NewDocument()
	mats := doc.Materials()

	steel := models.NewMaterial("Steel")
	require.NoError(t, mats.Add(steel))
	assert.Equal(t, mats.Handle(), steel.OwnerHandle())

	circle := models.NewCircle(models.XYZ{}, 1)
	require.NoError(t, doc.AddEntity(circle))
	circle.SetMaterial(models.NewMaterial("steel"))
	assert.Same(t, steel, circle.Material())

	require.NoError(t, steel.SetName("Iron"))
	got, ok := mats.Get("IRON")
	require.True(t, ok)
	assert.Same(t, steel, got)
	assert.ErrorIs(t, steel.SetName("Global"), models.ErrDuplicateName)

	removed, err := mats.Remove("iron")
	require.NoError(t, err)
	assert.Zero(t, removed.OwnerHandle())
	assert.Nil(t, removed.Document())
	assert.Nil(t, circle.Material())
}

func TestDetach_deepClonesReferences(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, doc.AddEntity(line))
	line.SetLayer(models.NewLayer("A"))
	attachedLayer := line.Layer()
	handle := line.Handle()

	require.True(t, doc.ModelSpace().Entities().Remove(line))

	assert.Nil(t, line.Document())
	assert.Equal(t, handle, line.Handle())
	assert.NotSame(t, attachedLayer, line.Layer())
	assert.Nil(t, line.Layer().Document())
	assert.Equal(t, "A", line.Layer().Name())

	// the detached copy no longer follows the document
	require.NoError(t, attachedLayer.SetName("B"))
	assert.Equal(t, "A", line.Layer().Name())
	_, ok := doc.Object(handle)
	assert.False(t, ok)
}

func TestClone_isFree(t *testing.T) {
	doc := models.NewDocument()
	text := models.NewText("hello", models.XYZ{X: 1}, 2)
	require.NoError(t, doc.AddEntity(text))
	text.SetStyle(models.NewTextStyle("Mono"))
	text.CreateXDictionary()

	c, ok := text.Clone().(*models.Text)
	require.True(t, ok)
	assert.Zero(t, c.Handle())
	assert.Zero(t, c.OwnerHandle())
	assert.Nil(t, c.Document())
	assert.Nil(t, c.Style().Document())
	assert.Equal(t, "Mono", c.Style().Name())
	require.NotNil(t, c.XDictionary())
	assert.Nil(t, c.XDictionary().Document())
	assert.Equal(t, "hello", c.Value)
}

func TestXDictionary_attachedWithOwner(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, doc.AddEntity(line))

	xd := line.CreateXDictionary()
	assert.True(t, xd.HardOwner)
	assert.Equal(t, doc, xd.Document())
	assert.Equal(t, line.Handle(), xd.OwnerHandle())

	rec := models.NewXRecord("data")
	rec.Append(1, "value")
	require.NoError(t, xd.Add(rec))
	assert.Equal(t, xd.Handle(), rec.OwnerHandle())
}

func TestExtendedData_joinsAppIDs(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	line.ExtendedData().Add(models.NewAppID("MYAPP"), models.ExtendedDataRecord{Code: 1000, Value: "x"})

	require.NoError(t, doc.AddEntity(line))
	app, ok := doc.AppIDs.Get("myapp")
	require.True(t, ok)
	entry, ok := line.ExtendedData().Get("MYAPP")
	require.True(t, ok)
	assert.Same(t, app, entry.App)

	_, err := doc.AppIDs.Remove("MYAPP")
	require.NoError(t, err)
	assert.Equal(t, 0, line.ExtendedData().Len())
}

func TestInsert_attachesBlockAndAttributes(t *testing.T) {
	doc := models.NewDocument()
	block := models.NewBlockRecord("Door")
	require.NoError(t, block.Entities().Add(models.NewLine(models.XYZ{}, models.XYZ{X: 1})))
	require.NoError(t, block.Entities().Add(models.NewAttributeDefinition("TAG", "Tag?", "")))

	ins := models.NewInsert(block, models.XYZ{X: 5})
	require.NoError(t, ins.Attributes().Add(models.NewAttributeEntity("TAG", "D1")))
	require.NoError(t, doc.AddEntity(ins))

	got, ok := doc.BlockRecords.Get("door")
	require.True(t, ok)
	assert.Same(t, block, got)
	assert.Same(t, block, ins.Block())
	assert.Equal(t, doc, block.BlockEntity().Document())
	assert.Equal(t, "Door", block.BlockEntity().Name())
	assert.Len(t, block.AttributeDefinitions(), 1)

	attr := ins.Attributes().All()[0]
	assert.Equal(t, ins.Handle(), attr.OwnerHandle())
	assert.Equal(t, ins.Handle(), ins.Seqend().OwnerHandle())

	_, err := doc.BlockRecords.Remove("Door")
	require.NoError(t, err)
	assert.Equal(t, "*Model_Space", ins.Block().Name())
	assert.Nil(t, block.BlockEntity().Document())
}

func TestInsert_seqendFollowsAttributes(t *testing.T) {
	doc := models.NewDocument()
	ins := models.NewInsert(doc.ModelSpace(), models.XYZ{})
	require.NoError(t, doc.AddEntity(ins))
	assert.Nil(t, ins.Seqend().Document())

	attr := models.NewAttributeEntity("TAG", "D1")
	require.NoError(t, ins.Attributes().Add(attr))
	assert.Equal(t, doc, ins.Seqend().Document())
	assert.NotZero(t, ins.Seqend().Handle())

	assert.True(t, ins.Attributes().Remove(attr))
	assert.Nil(t, ins.Seqend().Document())
}

func TestPolyline_vertexChainOwned(t *testing.T) {
	doc := models.NewDocument()
	pl := models.NewPolyline2D(models.XY{}, models.XY{X: 1}, models.XY{X: 1, Y: 1})
	require.NoError(t, doc.AddEntity(pl))

	require.Equal(t, 3, pl.Vertices().Len())
	for _, v := range pl.Vertices().All() {
		assert.Equal(t, pl.Handle(), v.OwnerHandle())
	}
	assert.Equal(t, pl.Handle(), pl.Seqend().OwnerHandle())

	c := pl.Clone().(*models.Polyline2D)
	require.NoError(t, c.Vertices().Add(models.NewVertex2D(models.XYZ{})))
	assert.Equal(t, 4, c.Vertices().Len())
	assert.Equal(t, 3, pl.Vertices().Len())
}

func TestGroup_members(t *testing.T) {
	doc := models.NewDocument()
	other := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	foreign := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, doc.AddEntity(line))
	require.NoError(t, other.AddEntity(foreign))

	g := models.NewGroup("G1")
	require.NoError(t, doc.Groups().Add(g))
	require.NoError(t, g.Add(line))
	assert.ErrorIs(t, g.Add(foreign), models.ErrWrongDocument)

	doc.ModelSpace().Entities().Remove(line)
	assert.Empty(t, g.Entities())
}
