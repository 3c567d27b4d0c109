package dxf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

func newTestDocWriter(buf *bytes.Buffer, doc *models.Document, cfg *Config) *docWriter {
	cfg = cfg.forDocument(doc)
	return newDocWriter(NewASCIIWriter(buf, cfg), doc, cfg)
}

func TestWriteObject_notImplemented(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, doc.AddEntity(line))

	cfg := testConfig()
	cfg.Catalog = &mapping.Catalog{}
	var buf bytes.Buffer
	dw := newTestDocWriter(&buf, doc, cfg)

	err := dw.writeEntitiesSection()
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.ErrorIs(t, err, mapping.ErrNoMapping)
	assert.Contains(t, err.Error(), "section ENTITIES")

	// an emitter alone is enough
	ins := models.NewInsert(doc.ModelSpace(), models.XYZ{})
	require.NoError(t, doc.AddEntity(ins))
	assert.NoError(t, dw.writeObject(ins))
}

func TestWriteObject_common(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, doc.AddEntity(line))
	xd := line.CreateXDictionary()

	var buf bytes.Buffer
	dw := newTestDocWriter(&buf, doc, testConfig())
	require.NoError(t, dw.writeObject(line))
	require.NoError(t, dw.w.Close())

	want := "  0\r\nLINE\r\n" +
		"  5\r\n" + line.Handle().String() + "\r\n" +
		"102\r\n{ACAD_XDICTIONARY\r\n" +
		"360\r\n" + xd.Handle().String() + "\r\n" +
		"102\r\n}\r\n" +
		"330\r\n" + doc.ModelSpace().Handle().String() + "\r\n" +
		"100\r\nAcDbEntity\r\n"
	assert.True(t, strings.HasPrefix(buf.String(), want), buf.String())

	obj, ok := dw.queue.Pop()
	require.True(t, ok)
	assert.Same(t, xd, obj)
}

func TestWriteObject_dimStyleHandle(t *testing.T) {
	doc := models.NewDocument()
	ds := doc.DimensionStyles.Default()

	var buf bytes.Buffer
	dw := newTestDocWriter(&buf, doc, testConfig())
	require.NoError(t, dw.writeObject(ds))
	require.NoError(t, dw.w.Close())

	assert.True(t, strings.HasPrefix(buf.String(), "  0\r\nDIMSTYLE\r\n105\r\n"+ds.Handle().String()+"\r\n"))
}

func TestWriteExtendedData(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, doc.AddEntity(line))
	line.ExtendedData().Add(models.NewAppID("MYAPP"),
		models.ExtendedDataRecord{Code: 1000, Value: "tag"},
		models.ExtendedDataRecord{Code: 10, Value: 1.0},
		models.ExtendedDataRecord{Code: 1070, Value: int16(4)},
	)

	var notes []Notification
	cfg := testConfig()
	cfg.Notify = func(n Notification) { notes = append(notes, n) }

	var buf bytes.Buffer
	dw := newTestDocWriter(&buf, doc, cfg)
	require.NoError(t, dw.writeExtendedData(line))
	require.NoError(t, dw.w.Close())

	assert.Equal(t, "1001\r\nMYAPP\r\n1000\r\ntag\r\n1070\r\n4\r\n", buf.String())
	require.Len(t, notes, 1)
	assert.Equal(t, LevelWarning, notes[0].Level)

	cfg.Strict = true
	buf.Reset()
	dw = newTestDocWriter(&buf, doc, cfg)
	assert.ErrorIs(t, dw.writeExtendedData(line), ErrStrict)
}

func TestWriteHeader_versionGated(t *testing.T) {
	doc := models.NewDocument()
	doc.Header.LastSavedBy = "someone"

	for _, tc := range []struct {
		version models.ACadVersion
		want    bool
	}{
		{models.AC1015, false},
		{models.AC1018, true},
	} {
		t.Run(string(tc.version), func(t *testing.T) {
			cfg := testConfig()
			cfg.Version = tc.version
			var buf bytes.Buffer
			dw := newTestDocWriter(&buf, doc, cfg)
			require.NoError(t, dw.writeHeader())
			require.NoError(t, dw.w.Close())

			out := buf.String()
			assert.Contains(t, out, "  1\r\n"+string(tc.version)+"\r\n")
			assert.Equal(t, tc.want, strings.Contains(out, "$LASTSAVEDBY"))
		})
	}
}

func TestHeaderVars_roundTrip(t *testing.T) {
	doc := models.NewDocument()
	doc.Header.AngleBase = 0.5
	doc.Header.CurrentLayer = "WALLS"
	doc.Header.InsertionBase = models.XYZ{X: 1, Y: 2, Z: 3}

	h := models.NewHeader()
	for _, name := range []string{"$ANGBASE", "$CLAYER", "$INSBASE"} {
		v, ok := lookupHeaderVar(name)
		require.True(t, ok, name)

		var pairs []groupcode.Pair
		value := v.get(doc)
		if p, ok := value.(models.XYZ); ok {
			pairs = append(pairs,
				groupcode.Pair{Code: 10, Value: p.X},
				groupcode.Pair{Code: 20, Value: p.Y},
				groupcode.Pair{Code: 30, Value: p.Z})
		} else {
			pairs = append(pairs, groupcode.Pair{Code: v.code, Value: value})
		}
		require.NoError(t, v.set(h, pairs))
	}

	assert.InDelta(t, 0.5, h.AngleBase, 1e-9)
	assert.Equal(t, "WALLS", h.CurrentLayer)
	assert.Equal(t, models.XYZ{X: 1, Y: 2, Z: 3}, h.InsertionBase)

	_, ok := lookupHeaderVar("$acadver")
	assert.True(t, ok)
	_, ok = lookupHeaderVar("$NOPE")
	assert.False(t, ok)
}
