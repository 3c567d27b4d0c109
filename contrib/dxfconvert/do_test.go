package dxfconvert_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go"
	"github.com/cadgraph/cadgraph.go/contrib/dxfconvert"
	"github.com/cadgraph/cadgraph.go/dxf"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

func writeDrawing(t *testing.T, path string) *models.Document {
	t.Helper()
	doc := models.NewDocument()
	layer := models.NewLayer("WALLS")
	require.NoError(t, doc.Layers.Add(layer))
	line := models.NewLine(models.XYZ{}, models.XYZ{X: 10})
	line.SetLayer(layer)
	require.NoError(t, doc.AddEntity(line))
	require.NoError(t, cadgraph.WriteFile(context.Background(), path, doc, nil))
	return doc
}

func TestDo_convert(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	input := filepath.Join(dir, "plan.dxf")
	writeDrawing(t, input)

	for _, format := range []string{"binary", "cbor", "ascii"} {
		t.Run(format, func(t *testing.T) {
			config := dxfconvert.NewConfig()
			config.Input = input
			config.Output = filepath.Join(dir, "plan."+format)
			config.Format = format
			config.Version = "AC1027"
			config.LogFile = filepath.Join(dir, format+".log")
			require.NoError(t, dxfconvert.Do(ctx, config))

			data, err := os.ReadFile(config.Output)
			require.NoError(t, err)
			switch format {
			case "binary":
				assert.True(t, bytes.HasPrefix(data, []byte(dxf.BinarySentinel)))
			case "cbor":
				assert.True(t, bytes.HasPrefix(data, []byte(dxf.PairStreamMagic)))
			}

			doc, err := cadgraph.ReadFile(ctx, config.Output, nil)
			require.NoError(t, err)
			assert.Equal(t, models.AC1027, doc.Header.Version)
			require.Len(t, doc.Entities(), 1)
			assert.Equal(t, "WALLS", doc.Entities()[0].Layer().Name())

			log, err := os.ReadFile(config.LogFile)
			require.NoError(t, err)
			assert.Contains(t, string(log), "drawing written")
		})
	}
}

func TestDo_catalog(t *testing.T) {
	config := dxfconvert.NewConfig()
	config.Catalog = filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, dxfconvert.Do(context.Background(), config))

	data, err := os.ReadFile(config.Catalog)
	require.NoError(t, err)

	var catalog []struct {
		Type       string `json:"type"`
		ObjectName string `json:"objectName"`
	}
	require.NoError(t, json.Unmarshal(data, &catalog))

	names := map[string]bool{}
	for _, m := range catalog {
		names[m.ObjectName] = true
	}
	for _, name := range []string{"LINE", "LAYER", "DICTIONARY"} {
		assert.True(t, names[name], name)
	}
}

func TestDo_errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("InvalidConfig", func(t *testing.T) {
		err := dxfconvert.Do(ctx, dxfconvert.NewConfig())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("MissingInput", func(t *testing.T) {
		config := dxfconvert.NewConfig()
		config.Input = filepath.Join(dir, "nope.dxf")
		config.Output = filepath.Join(dir, "out.dxf")
		assert.ErrorIs(t, dxfconvert.Do(ctx, config), os.ErrNotExist)
	})

	t.Run("Malformed", func(t *testing.T) {
		config := dxfconvert.NewConfig()
		config.Input = filepath.Join(dir, "bad.dxf")
		config.Output = filepath.Join(dir, "out.dxf")
		require.NoError(t, os.WriteFile(config.Input, []byte("  0\r\nSECTION\r\n  2\r\n"), 0o600))
		assert.ErrorIs(t, dxfconvert.Do(ctx, config), dxf.ErrMalformed)
	})
}
