package dxfconvert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadgraph/cadgraph.go/contrib/dxfconvert"
	"github.com/cadgraph/cadgraph.go/dxf"
)

func TestNewConfig(t *testing.T) {
	config := dxfconvert.NewConfig()
	require.NotNil(t, config, "NewConfig should return non-nil config")
	assert.Equal(t, "ascii", config.Format)
}

func TestConfig_Validate(t *testing.T) {
	for _, tc := range []struct {
		name    string
		config  dxfconvert.Config
		wantErr string
	}{
		{
			name:   "ValidConversion",
			config: dxfconvert.Config{Input: "in.dxf", Output: "out.dxf", Format: "binary", Version: "ac1027"},
		},
		{
			name:   "CatalogOnly",
			config: dxfconvert.Config{Catalog: "catalog.json"},
		},
		{
			name:    "Empty",
			wantErr: "input path or catalog path is required",
		},
		{
			name:    "MissingOutput",
			config:  dxfconvert.Config{Input: "in.dxf"},
			wantErr: "output path is required",
		},
		{
			name:    "UnknownFormat",
			config:  dxfconvert.Config{Input: "in.dxf", Output: "out", Format: "svg"},
			wantErr: dxf.ErrUnknownFormat.Error(),
		},
		{
			name:    "OldVersion",
			config:  dxfconvert.Config{Input: "in.dxf", Output: "out", Version: "AC1009"},
			wantErr: "unsupported drawing version",
		},
		{
			name:    "UnknownCodePage",
			config:  dxfconvert.Config{Input: "in.dxf", Output: "out", CodePage: "EBCDIC"},
			wantErr: "EBCDIC",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfig_LoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Overlay", func(t *testing.T) {
		path := filepath.Join(dir, "convert.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
input = "plan.dxf"
output = "plan.cbor"
format = "cbor"
strict = true
`), 0o600))

		config := dxfconvert.NewConfig()
		config.Version = "AC1018"
		require.NoError(t, config.LoadFile(path))

		assert.Equal(t, "plan.dxf", config.Input)
		assert.Equal(t, "plan.cbor", config.Output)
		assert.Equal(t, "cbor", config.Format)
		assert.True(t, config.Strict)
		assert.Equal(t, "AC1018", config.Version, "keys missing from the file are kept")
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := filepath.Join(dir, "typo.toml")
		require.NoError(t, os.WriteFile(path, []byte(`ouput = "x"`), 0o600))

		err := dxfconvert.NewConfig().LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"ouput"`)
	})

	t.Run("Missing", func(t *testing.T) {
		err := dxfconvert.NewConfig().LoadFile(filepath.Join(dir, "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
