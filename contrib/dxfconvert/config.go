package dxfconvert

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cadgraph/cadgraph.go/dxf"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// Config holds all configuration options for a conversion
type Config struct {
	// Input drawing, in any format the reader detects
	Input string `toml:"input"`
	// Output drawing path
	Output string `toml:"output"`
	// Output format: ascii, binary or cbor
	Format string `toml:"format"`
	// Output version, e.g. AC1027. Empty keeps the version of the input.
	Version string `toml:"version"`
	// Code page used for versions before AC1021, e.g. ANSI_1252
	CodePage string `toml:"code_page"`

	// Fail on the first warning
	Strict bool `toml:"strict"`
	// Write optional fields holding their default value
	WriteOptionals bool `toml:"write_optionals"`

	// Path the mapping catalog is dumped to as JSON
	Catalog string `toml:"catalog"`

	// Enable verbose logging
	Verbose bool `toml:"verbose"`
	// Log file. Logs go to stderr when empty.
	LogFile string `toml:"log_file"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: dxf.ASCII.String(),
	}
}

// LoadFile overlays the settings of a TOML file on c. Keys missing from the
// file keep their current value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input == "" && c.Catalog == "" {
		return errors.New("input path or catalog path is required")
	}
	if c.Input != "" && c.Output == "" {
		return errors.New("output path is required")
	}
	if _, err := dxf.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Version != "" {
		if _, err := models.ParseVersion(c.Version); err != nil {
			return err
		}
	}
	return c.codecConfig().Validate()
}

// codecConfig maps c onto the codec options. The format and version were
// checked by Validate.
func (c *Config) codecConfig() *dxf.Config {
	cfg := dxf.NewConfig()
	cfg.Format, _ = dxf.ParseFormat(c.Format)
	if c.Version != "" {
		cfg.Version, _ = models.ParseVersion(c.Version)
	}
	cfg.CodePage = c.CodePage
	cfg.Strict = c.Strict
	cfg.WriteOptionals = c.WriteOptionals
	return cfg
}
