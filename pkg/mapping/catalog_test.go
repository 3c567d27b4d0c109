package mapping_test

import (
	"math"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

func TestCatalog_everyTypeHasMapping(t *testing.T) {
	c := mapping.NewCatalog()
	for _, typ := range models.AllObjectTypes() {
		if typ == models.TypeTable {
			continue
		}
		t.Run(typ.String(), func(t *testing.T) {
			m, err := c.Get(typ)
			require.NoError(t, err)
			assert.Equal(t, typ, m.Type)
			assert.NotEmpty(t, m.ObjectName)
		})
	}

	_, err := c.Get(models.TypeTable)
	assert.ErrorIs(t, err, mapping.ErrNoMapping)
}

func TestCatalog_cachesMappings(t *testing.T) {
	c := mapping.NewCatalog()

	var wg sync.WaitGroup
	got := make([]*mapping.Mapping, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := c.Get(models.TypeLine)
			assert.NoError(t, err)
			got[i] = m
		}(i)
	}
	wg.Wait()

	for _, m := range got[1:] {
		assert.Same(t, got[0], m)
	}

	c.Register(models.TypeLine, func() *mapping.Mapping { return &mapping.Mapping{ObjectName: "LINE"} })
	m, err := c.Get(models.TypeLine)
	require.NoError(t, err)
	assert.NotSame(t, got[0], m)
	assert.Empty(t, m.Subclasses)
}

func TestMapping_entitySubclassOrder(t *testing.T) {
	m, err := mapping.Default().Get(models.TypeArc)
	require.NoError(t, err)

	var names []string
	for _, s := range m.Subclasses {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"AcDbEntity", "AcDbCircle", "AcDbArc"}, names)

	f, ok := m.Lookup("AcDbArc", 50)
	require.True(t, ok)
	assert.True(t, f.Ref.Has(mapping.IsAngle))
	assert.Equal(t, "StartAngle", f.Name)

	f, ok = m.Lookup("AcDbCircle", 20)
	require.True(t, ok)
	assert.Equal(t, "Center", f.Name)
	assert.Equal(t, 3, f.Codes)
}

func TestField_getAndSet(t *testing.T) {
	m, err := mapping.Default().Get(models.TypeArc)
	require.NoError(t, err)
	arc := models.NewArc(models.XYZ{X: 1, Y: 2}, 3, 0, math.Pi)

	center, _ := m.Lookup("AcDbCircle", 10)
	assert.Equal(t, models.XYZ{X: 1, Y: 2}, center.Get(arc))
	require.NoError(t, center.Set(arc, 20, 7.5))
	assert.Equal(t, models.XYZ{X: 1, Y: 7.5}, arc.Center)

	radius, _ := m.Lookup("AcDbCircle", 40)
	require.NoError(t, radius.Set(arc, 40, int16(4)))
	assert.Equal(t, 4.0, arc.Radius)
	assert.ErrorIs(t, radius.Set(arc, 40, "four"), mapping.ErrValueType)
}

func TestField_isDefault(t *testing.T) {
	m, err := mapping.Default().Get(models.TypeLine)
	require.NoError(t, err)
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})

	for _, tc := range []struct {
		code    int
		mutate  func()
		isDflt  bool
		comment string
	}{
		{62, func() {}, true, "ByLayer color"},
		{62, func() { line.Color = models.ColorIndex(1) }, false, "red"},
		{6, func() {}, true, "ByLayer line type"},
		{6, func() { line.SetLineType(models.NewLineType("Dashed")) }, false, "dashed"},
		{48, func() {}, true, "unit scale"},
		{48, func() { line.LineTypeScale = 2 }, false, "double scale"},
		{370, func() { line.LineWeight = 25 }, false, "line weight"},
		{347, func() {}, true, "no material"},
		{210, func() {}, true, "z normal"},
		{210, func() { line.Normal = models.XYZ{X: 1} }, false, "x normal"},
	} {
		t.Run(tc.comment, func(t *testing.T) {
			tc.mutate()
			f, ok := m.Lookup("", tc.code)
			require.True(t, ok)
			require.True(t, f.Ref.Has(mapping.Optional))
			assert.Equal(t, tc.isDflt, f.IsDefault(f.Get(line)))
		})
	}
}

func TestCounted_appendAndItems(t *testing.T) {
	m, err := mapping.Default().Get(models.TypeLwPolyline)
	require.NoError(t, err)
	pl := models.NewLwPolyline(models.XY{X: 1}, models.XY{X: 2})

	f, ok := m.Lookup("AcDbPolyline", 90)
	require.True(t, ok)
	require.True(t, f.Ref.Has(mapping.Count))
	assert.Equal(t, 2, f.Get(pl))
	assert.Len(t, f.Items(pl), 2)

	el := f.Append(pl)
	x, ok := f.Element(10)
	require.True(t, ok)
	require.NoError(t, x.Set(el, 10, 5.0))
	require.NoError(t, x.Set(el, 20, 6.0))
	assert.Equal(t, models.XY{X: 5, Y: 6}, pl.Vertices[2].Location)

	byElement, ok := m.Lookup("AcDbPolyline", 42)
	require.True(t, ok)
	assert.Same(t, f, byElement)
}

func TestDescribe(t *testing.T) {
	data, err := mapping.NewCatalog().Describe()
	require.NoError(t, err)

	var out []struct {
		Type       string `json:"type"`
		ObjectName string `json:"objectName"`
		Subclasses []struct {
			Name   string `json:"name"`
			Fields []struct {
				Name  string   `json:"name"`
				Codes []int    `json:"codes"`
				Flags []string `json:"flags"`
			} `json:"fields"`
		} `json:"subclasses"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out)

	var found bool
	for _, m := range out {
		if m.Type != "Line" {
			continue
		}
		found = true
		assert.Equal(t, "LINE", m.ObjectName)
		require.Len(t, m.Subclasses, 2)
		assert.Equal(t, "AcDbLine", m.Subclasses[1].Name)
		assert.Equal(t, []int{10, 20, 30}, m.Subclasses[1].Fields[1].Codes)
	}
	assert.True(t, found)
}
