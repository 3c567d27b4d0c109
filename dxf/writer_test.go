package dxf

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

func testConfig() *Config {
	cfg := NewConfig()
	cfg.Version = models.AC1032
	return cfg
}

func TestASCIIWriter_format(t *testing.T) {
	var buf bytes.Buffer
	w := NewASCIIWriter(&buf, testConfig())

	w.Write(groupcode.Start, "SECTION")
	w.Write(10, models.XYZ{X: 1, Y: 2.5, Z: -3})
	w.Write(groupcode.ObjectHandle, models.Handle(0x1F))
	w.Write(70, int16(3))
	w.Write(40, 1.0)
	w.Write(1, "a^b\nc")
	w.Write(1071, int32(-7))
	require.NoError(t, w.Close())

	want := "  0\r\nSECTION\r\n" +
		" 10\r\n1.0\r\n 20\r\n2.5\r\n 30\r\n-3.0\r\n" +
		"  5\r\n1F\r\n" +
		" 70\r\n3\r\n" +
		" 40\r\n1.0\r\n" +
		"  1\r\na^ b^Jc\r\n" +
		"1071\r\n-7\r\n"
	assert.Equal(t, want, buf.String())
}

func TestAppendFloat(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.1, "0.1"},
		{-2.25, "-2.25"},
		{1e21, "1000000000000000000000.0"},
		{math.Inf(1), "+Inf"},
	} {
		assert.Equal(t, tc.want, string(appendFloat(nil, tc.in)))
	}
}

func TestEscapeControl(t *testing.T) {
	for _, s := range []string{"", "plain", "^", "a\tb", "x^Jy", "\r\n"} {
		assert.Equal(t, s, unescapeControl(escapeControl(s)), "%q", s)
	}
}

func TestWriteField_optional(t *testing.T) {
	f := mapping.Scalar("Thickness", 39,
		func(c *models.Circle) float64 { return c.Thickness }, nil).WithDefault(0.0)

	for _, tc := range []struct {
		name           string
		value          float64
		writeOptionals bool
		want           string
	}{
		{"default suppressed", 0, false, ""},
		{"value written", 2.5, false, " 39\r\n2.5\r\n"},
		{"default forced", 0, true, " 39\r\n0.0\r\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.WriteOptionals = tc.writeOptionals
			var buf bytes.Buffer
			w := NewASCIIWriter(&buf, cfg)
			w.WriteField(39, tc.value, f)
			require.NoError(t, w.Close())
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriteField_angle(t *testing.T) {
	f := mapping.Scalar("StartAngle", 50,
		func(a *models.Arc) float64 { return a.StartAngle }, nil).Angle()

	var buf bytes.Buffer
	w := NewASCIIWriter(&buf, testConfig())
	w.WriteField(50, math.Pi/2, f)
	w.WriteField(50, 1.0, f)
	require.NoError(t, w.Close())

	assert.Equal(t, " 50\r\n90.0\r\n 50\r\n57.2957795131\r\n", buf.String())
	assert.InDelta(t, 1.0, toRadians(toDegrees(1.0)), 1e-9)
}

func TestWriteField_nilHandle(t *testing.T) {
	f := mapping.HandleRef("Material", 347,
		func(e models.Entity) *models.Material { return e.Material() }, nil)

	var buf bytes.Buffer
	w := NewASCIIWriter(&buf, testConfig())
	w.WriteField(347, (*models.Material)(nil), f)
	w.Write(347, nil)
	require.NoError(t, w.Close())

	// a plain nil value writes nothing
	assert.Equal(t, "347\r\n0\r\n", buf.String())
}

func TestWriteField_ignored(t *testing.T) {
	f := mapping.Scalar("Paths", 91, func(h *models.Hatch) int32 { return 0 }, nil).Ignore()

	var buf bytes.Buffer
	w := NewASCIIWriter(&buf, testConfig())
	w.WriteField(91, int32(4), f)
	require.NoError(t, w.Close())
	assert.Empty(t, buf.String())
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestStreamWriter_stickyError(t *testing.T) {
	t.Run("sink", func(t *testing.T) {
		sinkErr := errors.New("disk full")
		w := NewASCIIWriter(failingWriter{sinkErr}, testConfig())
		for i := 0; i < 2000; i++ {
			w.Write(1, "some text that fills the buffer")
		}
		assert.ErrorIs(t, w.Err(), sinkErr)
		assert.ErrorIs(t, w.Flush(), sinkErr)
		assert.ErrorIs(t, w.Close(), sinkErr)
	})

	t.Run("unknown code", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewASCIIWriter(&buf, testConfig())
		w.Write(2000, "x")
		first := w.Err()
		require.ErrorIs(t, first, groupcode.ErrUnknownGroupCode)

		w.Write(1, "ignored")
		assert.Equal(t, first, w.Err())
		assert.Equal(t, first, w.Close())
		assert.Empty(t, buf.String())
	})

	t.Run("closed", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewASCIIWriter(&buf, testConfig())
		require.NoError(t, w.Close())
		require.NoError(t, w.Close())
		w.Write(1, "late")
		assert.ErrorIs(t, w.Err(), ErrClosed)
	})
}

func TestBinaryWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf, testConfig())
	w.Write(70, int16(5))
	w.Write(290, true)
	w.Write(280, int16(2))
	w.Write(1, "AB")
	require.NoError(t, w.Close())

	b := buf.Bytes()
	require.True(t, bytes.HasPrefix(b, []byte(BinarySentinel)))
	assert.Len(t, BinarySentinel, 22)
	assert.Equal(t, []byte{
		70, 0, 5, 0,
		0x22, 0x01, 1,
		0x18, 0x01, 2, 0,
		1, 0, 'A', 'B', 0,
	}, b[len(BinarySentinel):])
}

func TestBinaryWriter_chunkTooLong(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf, testConfig())
	w.Write(310, make([]byte, 256))
	assert.ErrorIs(t, w.Close(), ErrChunkTooLong)
}

func TestBinaryWriter_nulString(t *testing.T) {
	var buf bytes.Buffer
	w := NewBinaryWriter(&buf, testConfig())
	w.Write(1, "a\x00b")
	err := w.Close()
	require.ErrorIs(t, err, ErrUnsupportedValueKind)
	assert.Contains(t, err.Error(), "NUL")
	assert.Empty(t, buf.String(), "nothing is flushed after the error")

	// ASCII escapes the same value
	buf.Reset()
	aw := NewASCIIWriter(&buf, testConfig())
	aw.Write(1, "a\x00b")
	require.NoError(t, aw.Close())
	assert.Equal(t, "  1\r\na^@b\r\n", buf.String())
}

func TestNewWriter(t *testing.T) {
	for _, tc := range []struct {
		format Format
		want   any
	}{
		{ASCII, &ASCIIWriter{}},
		{Binary, &BinaryWriter{}},
		{CBOR, &CBORWriter{}},
	} {
		cfg := testConfig()
		cfg.Format = tc.format
		w, err := NewWriter(&bytes.Buffer{}, cfg)
		require.NoError(t, err)
		assert.IsType(t, tc.want, w)
	}

	cfg := testConfig()
	cfg.Format = Format(42)
	_, err := NewWriter(&bytes.Buffer{}, cfg)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
