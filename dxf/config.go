package dxf

import (
	"fmt"

	"github.com/cadgraph/cadgraph.go/pkg/logger"
	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// Format selects the wire encoding of a stream.
type Format uint8

const (
	ASCII Format = iota
	Binary
	// CBOR is the compact pair stream: one CBOR array per group code/value
	// pair.
	CBOR
)

func (f Format) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case Binary:
		return "binary"
	case CBOR:
		return "cbor"
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

// ParseFormat accepts the names returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "ascii", "dxf", "":
		return ASCII, nil
	case "binary", "dxb", "bin":
		return Binary, nil
	case "cbor":
		return CBOR, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Config holds the options of a read or write.
type Config struct {
	// Format is the wire encoding used by writers. Readers detect it.
	Format Format
	// Version overrides the document $ACADVER when set.
	Version models.ACadVersion
	// CodePage overrides the document $DWGCODEPAGE when set. It only matters
	// for versions before AC1021.
	CodePage string

	// WriteOptionals writes optional fields even when they hold their
	// default value.
	WriteOptionals bool
	// Strict turns every warning into an error wrapping ErrStrict.
	Strict bool

	Notify  NotificationHandler
	Logger  logger.Logger
	Catalog *mapping.Catalog
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format:  ASCII,
		Logger:  logger.Nop(),
		Catalog: mapping.Default(),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Format {
	case ASCII, Binary, CBOR:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, c.Format)
	}
	if c.Version != "" && !c.Version.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, c.Version)
	}
	if c.CodePage != "" {
		if _, err := lookupCodePage(c.CodePage); err != nil {
			return err
		}
	}
	return nil
}

// forDocument returns a copy of c with the version and code page taken from
// doc where c leaves them empty, and the nil dependencies defaulted.
func (c *Config) forDocument(doc *models.Document) *Config {
	out := *c
	if out.Version == "" && doc != nil {
		out.Version = doc.Header.Version
	}
	if out.Version == "" {
		out.Version = models.AC1032
	}
	if out.CodePage == "" && doc != nil {
		out.CodePage = doc.Header.CodePage
	}
	if out.Logger == nil {
		out.Logger = logger.Nop()
	}
	if out.Catalog == nil {
		out.Catalog = mapping.Default()
	}
	return &out
}
