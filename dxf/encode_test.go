package dxf_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go/contrib/testenv"
	"github.com/cadgraph/cadgraph.go/dxf"
	"github.com/cadgraph/cadgraph.go/pkg/logger"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// section returns the body of the named section of an ASCII stream.
func section(t *testing.T, text, name string) string {
	t.Helper()
	open := "  0\r\nSECTION\r\n  2\r\n" + name + "\r\n"
	start := strings.Index(text, open)
	require.NotEqual(t, -1, start, "section %s", name)
	body := text[start+len(open):]
	end := strings.Index(body, "  0\r\nENDSEC\r\n")
	require.NotEqual(t, -1, end)
	return body[:end]
}

func encode(t *testing.T, doc *models.Document, cfg *dxf.Config) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, dxf.Encode(context.Background(), &buf, doc, cfg))
	return buf.Bytes()
}

func decode(t *testing.T, b []byte, cfg *dxf.Config) *models.Document {
	t.Helper()
	doc, err := dxf.Decode(context.Background(), bytes.NewReader(b), cfg)
	require.NoError(t, err)
	return doc
}

func TestEncode_layerScenario(t *testing.T) {
	doc := models.NewDocument()
	layer := models.NewLayer("A")
	require.NoError(t, doc.Layers.Add(layer))
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 10, Y: 5})
	line.SetLayer(layer)
	require.NoError(t, doc.AddEntity(line))

	text := string(encode(t, doc, nil))
	tables := section(t, text, dxf.SectionTables)
	assert.Equal(t, 2, strings.Count(tables, "  0\r\nLAYER\r\n"))
	assert.Contains(t, section(t, text, dxf.SectionEntities), "  8\r\nA\r\n")

	got := decode(t, []byte(text), nil)
	assert.Equal(t, 2, got.Layers.Len())
	require.Len(t, got.Entities(), 1)
	assert.Equal(t, "A", got.Entities()[0].Layer().Name())
	assert.Equal(t, line.Handle(), got.Entities()[0].Handle())

	_, err := doc.Layers.Remove("A")
	require.NoError(t, err)
	assert.Same(t, doc.Layers.Default(), line.Layer())

	text = string(encode(t, doc, nil))
	assert.Equal(t, 1, strings.Count(section(t, text, dxf.SectionTables), "  0\r\nLAYER\r\n"))
	assert.Contains(t, section(t, text, dxf.SectionEntities), "  8\r\n0\r\n")
}

func TestEncode_xdictionaryOnce(t *testing.T) {
	doc := models.NewDocument()
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 1})
	require.NoError(t, doc.AddEntity(line))
	xd := line.CreateXDictionary()
	rec := models.NewXRecord("DATA")
	rec.Append(1, "payload")
	require.NoError(t, xd.Add(rec))

	text := string(encode(t, doc, nil))
	head := "  0\r\nDICTIONARY\r\n  5\r\n" + xd.Handle().String() + "\r\n"
	assert.Equal(t, 1, strings.Count(text, head))
	assert.Contains(t, section(t, text, dxf.SectionObjects), head)
	assert.NotContains(t, section(t, text, dxf.SectionEntities), head)
	assert.Equal(t, 1, strings.Count(text, "  0\r\nXRECORD\r\n  5\r\n"+rec.Handle().String()+"\r\n"))

	// the named object dictionary opens the section
	objects := section(t, text, dxf.SectionObjects)
	assert.True(t, strings.HasPrefix(objects, "  0\r\nDICTIONARY\r\n  5\r\n"+doc.RootDictionary().Handle().String()+"\r\n"))

	got := decode(t, []byte(text), nil)
	gline, ok := got.Object(line.Handle())
	require.True(t, ok)
	gxd := gline.XDictionary()
	require.NotNil(t, gxd)
	assert.Equal(t, xd.Handle(), gxd.Handle())
	assert.Equal(t, line.Handle(), gxd.OwnerHandle())
	e, ok := gxd.Get("DATA")
	require.True(t, ok)
	assert.Equal(t, []models.XRecordEntry{{Code: 1, Value: "payload"}}, e.(*models.XRecord).Entries)
}

// sampleDocument exercises every emitter and most mappings.
func sampleDocument(t *testing.T) *models.Document {
	t.Helper()
	doc := models.NewDocument()
	doc.Header.CurrentLayer = "A"

	layer := models.NewLayer("A")
	layer.Color = models.ColorIndex(3)
	require.NoError(t, doc.Layers.Add(layer))

	line := models.NewLine(models.XYZ{X: 1, Y: 2}, models.XYZ{X: 3.25, Y: -4, Z: 0.5})
	line.SetLayer(layer)
	require.NoError(t, doc.AddEntity(line))
	line.ExtendedData().Add(models.NewAppID("MYAPP"),
		models.ExtendedDataRecord{Code: 1000, Value: "tag"},
		models.ExtendedDataRecord{Code: 1010, Value: models.XYZ{X: 1, Y: 2, Z: 3}},
		models.ExtendedDataRecord{Code: 1070, Value: int16(7)},
	)
	xrec := models.NewXRecord("NOTES")
	xrec.Append(1, "first")
	xrec.Append(10, models.XY{X: 4, Y: 5})
	xrec.Append(70, int16(2))
	require.NoError(t, line.CreateXDictionary().Add(xrec))

	arc := models.NewArc(models.XYZ{X: 5}, 2, math.Pi/3, 3*math.Pi/2)
	require.NoError(t, doc.AddEntity(arc))
	require.NoError(t, doc.AddEntity(models.NewCircle(models.XYZ{Y: 1}, 0.75)))
	require.NoError(t, doc.AddEntity(models.NewPoint(models.XYZ{X: 9, Y: 9})))
	require.NoError(t, doc.AddEntity(models.NewEllipse(models.XYZ{}, models.XYZ{X: 4}, 0.5)))
	require.NoError(t, doc.AddEntity(models.NewText("hello^world", models.XYZ{X: 1}, 2.5)))

	lw := models.NewLwPolyline(models.XY{}, models.XY{X: 1}, models.XY{X: 1, Y: 1})
	lw.Vertices[1].Bulge = 0.5
	require.NoError(t, doc.AddEntity(lw))
	require.NoError(t, doc.AddEntity(models.NewPolyline2D(models.XY{}, models.XY{X: 2}, models.XY{X: 2, Y: 2})))
	require.NoError(t, doc.AddEntity(models.NewPolyline3D(models.XYZ{}, models.XYZ{Z: 1})))

	block := models.NewBlockRecord("DOOR")
	require.NoError(t, doc.BlockRecords.Add(block))
	require.NoError(t, block.Entities().Add(models.NewLine(models.XYZ{}, models.XYZ{Y: 2})))
	require.NoError(t, block.Entities().Add(models.NewAttributeDefinition("WIDTH", "Width?", "90")))

	ins := models.NewInsert(block, models.XYZ{X: 20})
	require.NoError(t, doc.AddEntity(ins))
	require.NoError(t, ins.Attributes().Add(models.NewAttributeEntity("WIDTH", "80")))
	require.NoError(t, doc.AddEntity(models.NewInsert(block, models.XYZ{X: 30})))

	hatch := models.NewHatch()
	hatch.Paths = []models.HatchBoundaryPath{
		{
			Flags:    models.BoundaryPathPolyline,
			IsClosed: true,
			Vertices: []models.HatchPolylineVertex{
				{Location: models.XY{}},
				{Location: models.XY{X: 4}, Bulge: 0.25},
				{Location: models.XY{X: 4, Y: 4}},
			},
		},
		{
			Flags: 1,
			Edges: []models.HatchEdge{
				models.HatchLineEdge{Start: models.XY{}, End: models.XY{X: 1}},
				models.HatchArcEdge{Center: models.XY{X: 1}, Radius: 1, StartAngle: 0, EndAngle: math.Pi, CounterClockwise: true},
				models.HatchEllipseEdge{Center: models.XY{}, MajorAxisEndPoint: models.XY{X: 2}, MinorToMajorRatio: 0.5, EndAngle: math.Pi / 2},
			},
		},
	}
	require.NoError(t, doc.AddEntity(hatch))

	group := models.NewGroup("PAIR")
	group.Description = "line and arc"
	require.NoError(t, doc.Groups().Add(group))
	require.NoError(t, group.Add(line))
	require.NoError(t, group.Add(arc))

	return doc
}

func TestRoundTrip_ascii(t *testing.T) {
	doc := sampleDocument(t)
	first := encode(t, doc, nil)

	got := decode(t, first, nil)
	second := encode(t, got, nil)
	assert.Equal(t, string(first), string(second))

	assert.Equal(t, doc.NextHandle(), got.NextHandle())
	assert.Equal(t, len(doc.Entities()), len(got.Entities()))
	for i, e := range doc.Entities() {
		g := got.Entities()[i]
		assert.Equal(t, e.Handle(), g.Handle())
		assert.Equal(t, e.ObjectType(), g.ObjectType())
		assert.Equal(t, e.Layer().Name(), g.Layer().Name())
	}

	arc := got.Entities()[1].(*models.Arc)
	assert.InDelta(t, math.Pi/3, arc.StartAngle, 1e-9)
	assert.InDelta(t, 3*math.Pi/2, arc.EndAngle, 1e-9)

	ins := got.Entities()[9].(*models.Insert)
	assert.Equal(t, "DOOR", ins.Block().Name())
	require.Equal(t, 1, ins.Attributes().Len())
	assert.Equal(t, "80", ins.Attributes().All()[0].Value)

	hatch := got.Entities()[11].(*models.Hatch)
	require.Len(t, hatch.Paths, 2)
	assert.Len(t, hatch.Paths[0].Vertices, 3)
	assert.InDelta(t, 0.25, hatch.Paths[0].Vertices[1].Bulge, 1e-12)
	require.Len(t, hatch.Paths[1].Edges, 3)
	assert.IsType(t, models.HatchEllipseEdge{}, hatch.Paths[1].Edges[2])

	g, ok := got.Groups().Get("PAIR")
	require.True(t, ok)
	members := g.(*models.Group).Entities()
	require.Len(t, members, 2)
	assert.Same(t, got.Entities()[0], members[0])

	xd := got.Entities()[0].ExtendedData()
	e, ok := xd.Get("MYAPP")
	require.True(t, ok)
	assert.Equal(t, models.XYZ{X: 1, Y: 2, Z: 3}, e.Records[1].Value)
	app, ok := got.AppIDs.Get("MYAPP")
	require.True(t, ok)
	assert.Same(t, app, e.App)
}

func TestRoundTrip_formats(t *testing.T) {
	doc := sampleDocument(t)
	want := encode(t, doc, nil)

	for _, format := range []dxf.Format{dxf.Binary, dxf.CBOR} {
		t.Run(format.String(), func(t *testing.T) {
			cfg := dxf.NewConfig()
			cfg.Format = format
			b := encode(t, doc, cfg)
			got := decode(t, b, nil)
			assert.Equal(t, string(want), string(encode(t, got, nil)))
		})
	}
}

func TestDecode_comments(t *testing.T) {
	doc := sampleDocument(t)
	want := string(encode(t, doc, nil))

	t.Run("ascii", func(t *testing.T) {
		comment := "999\r\nwritten by hand\r\n"
		endsec := "  0\r\nENDSEC\r\n"
		text := comment + strings.Replace(want, endsec, endsec+comment, 1)
		text = strings.Replace(text, "100\r\nAcDbLine\r\n", "100\r\nAcDbLine\r\n"+comment, 1)
		require.Equal(t, 3, strings.Count(text, comment))

		got := decode(t, []byte(text), nil)
		assert.Equal(t, want, string(encode(t, got, nil)))
	})

	t.Run("binary", func(t *testing.T) {
		cfg := dxf.NewConfig()
		cfg.Format = dxf.Binary
		b := encode(t, doc, cfg)

		comment := []byte{0xE7, 0x03, 'n', 'o', 't', 'e', 0}
		endsec := []byte{0, 0, 'E', 'N', 'D', 'S', 'E', 'C', 0}
		i := bytes.Index(b, endsec)
		require.NotEqual(t, -1, i)
		i += len(endsec)

		var patched []byte
		patched = append(patched, b[:len(dxf.BinarySentinel)]...)
		patched = append(patched, comment...)
		patched = append(patched, b[len(dxf.BinarySentinel):i]...)
		patched = append(patched, comment...)
		patched = append(patched, b[i:]...)

		got := decode(t, patched, nil)
		assert.Equal(t, want, string(encode(t, got, nil)))
	})
}

func TestEncode_leavesHandleSeed(t *testing.T) {
	doc := models.NewDocument()
	require.NoError(t, doc.AddEntity(models.NewLine(models.XYZ{}, models.XYZ{X: 1})))
	seed := doc.Header.HandleSeed

	text := string(encode(t, doc, nil))
	assert.Equal(t, seed, doc.Header.HandleSeed)
	assert.Contains(t, section(t, text, "HEADER"), "  9\r\n$HANDSEED\r\n  5\r\n"+doc.NextHandle().String()+"\r\n")
}

func TestRoundTrip_codePage(t *testing.T) {
	doc := models.NewDocument()
	require.NoError(t, doc.Layers.Add(models.NewLayer("Übergröße")))

	cfg := dxf.NewConfig()
	cfg.Version = models.AC1015
	cfg.CodePage = "ANSI_1252"
	b := encode(t, doc, cfg)
	assert.Contains(t, string(b), "\xdcbergr\xf6\xdfe")

	got := decode(t, b, nil)
	assert.True(t, got.Layers.Contains("Übergröße"))
	assert.Equal(t, models.AC1015, got.Header.Version)
}

func TestEncode_errors(t *testing.T) {
	t.Run("nil document", func(t *testing.T) {
		assert.Error(t, dxf.Encode(context.Background(), &bytes.Buffer{}, nil, nil))
	})

	t.Run("unsupported version", func(t *testing.T) {
		cfg := dxf.NewConfig()
		cfg.Version = "AC1009"
		err := dxf.Encode(context.Background(), &bytes.Buffer{}, models.NewDocument(), cfg)
		assert.ErrorIs(t, err, dxf.ErrUnsupportedVersion)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := dxf.Encode(ctx, &bytes.Buffer{}, models.NewDocument(), nil)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("sink", func(t *testing.T) {
		sinkErr := errors.New("broken pipe")
		err := dxf.Encode(context.Background(), failingWriter{sinkErr}, sampleDocument(t), nil)
		require.ErrorIs(t, err, sinkErr)
		assert.Equal(t, 1, strings.Count(err.Error(), "broken pipe"))
	})

	t.Run("binary NUL text", func(t *testing.T) {
		doc := models.NewDocument()
		require.NoError(t, doc.AddEntity(models.NewText("a\x00b", models.XYZ{}, 1)))

		cfg := dxf.NewConfig()
		cfg.Format = dxf.Binary
		err := dxf.Encode(context.Background(), &bytes.Buffer{}, doc, cfg)
		assert.ErrorIs(t, err, dxf.ErrUnsupportedValueKind)

		got := decode(t, encode(t, doc, nil), nil)
		assert.Equal(t, "a\x00b", got.Entities()[0].(*models.Text).Value)
	})
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestDecode_errors(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		_, err := dxf.Decode(context.Background(), strings.NewReader("  0\r\nSECTION\r\n  2\r\nHEADER\r\n"), nil)
		assert.ErrorIs(t, err, dxf.ErrMalformed)
	})

	t.Run("unsupported version", func(t *testing.T) {
		in := "  0\r\nSECTION\r\n  2\r\nHEADER\r\n  9\r\n$ACADVER\r\n  1\r\nAC1009\r\n  0\r\nENDSEC\r\n  0\r\nEOF\r\n"
		_, err := dxf.Decode(context.Background(), strings.NewReader(in), nil)
		assert.ErrorIs(t, err, dxf.ErrUnsupportedVersion)
	})
}

func TestDecode_notifications(t *testing.T) {
	doc := models.NewDocument()
	require.NoError(t, doc.AddEntity(models.NewLine(models.XYZ{}, models.XYZ{X: 1})))
	text := string(encode(t, doc, nil))
	text = strings.Replace(text, "100\r\nAcDbLine\r\n", "100\r\nAcDbLine\r\n1071\r\n5\r\n", 1)

	var notes []dxf.Notification
	var logs bytes.Buffer
	cfg := dxf.NewConfig()
	cfg.Notify = func(n dxf.Notification) { notes = append(notes, n) }
	cfg.Logger = logger.New(testenv.NewLogHandler(&logs, testenv.WithIgnoreDebug()))
	got := decode(t, []byte(text), cfg)
	assert.Len(t, got.Entities(), 1)

	var warnings []string
	for _, n := range notes {
		if n.Level == dxf.LevelWarning {
			warnings = append(warnings, n.Message)
		}
	}
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unknown group code 1071")
	assert.Equal(t, "[0] WARN: "+warnings[0]+"\n", logs.String())

	cfg = dxf.NewConfig()
	cfg.Strict = true
	_, err := dxf.Decode(context.Background(), strings.NewReader(text), cfg)
	assert.ErrorIs(t, err, dxf.ErrStrict)
}
