package dxf

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// Encode writes doc to w in the format of cfg. A nil cfg uses NewConfig. ctx
// is checked between sections.
func Encode(ctx context.Context, w io.Writer, doc *models.Document, cfg *Config) (err error) {
	if doc == nil {
		return errors.New("dxf: nil document")
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.forDocument(doc)
	if !cfg.Version.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, cfg.Version)
	}

	sw, err := NewWriter(w, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := sw.Close()
		if closeErr != nil && !errors.Is(err, closeErr) {
			err = multierr.Append(err, closeErr)
		}
	}()

	dw := newDocWriter(sw, doc, cfg)
	sections := []func() error{
		dw.writeHeader,
		dw.writeClasses,
		dw.writeTables,
		dw.writeBlocks,
		dw.writeEntitiesSection,
		dw.writeObjects,
	}
	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := section(); err != nil {
			return err
		}
	}
	sw.Write(groupcode.Start, "EOF")
	return sw.Err()
}

// Decode reads a document in any of the supported formats. A nil cfg uses
// NewConfig.
func Decode(ctx context.Context, r io.Reader, cfg *Config) (*models.Document, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	sr, format, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	cfg.forDocument(nil).Logger.Debug("decoding", "format", format.String())
	return NewDocumentReader(sr, cfg).Read(ctx)
}
