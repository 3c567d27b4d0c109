package cadgraph

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"

	"github.com/cadgraph/cadgraph.go/dxf"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// Encode writes doc to w. A nil cfg writes DXF ASCII in the document version.
func Encode(ctx context.Context, w io.Writer, doc *models.Document, cfg *dxf.Config) error {
	return dxf.Encode(ctx, w, doc, cfg)
}

// Decode reads a document from r in any supported format.
func Decode(ctx context.Context, r io.Reader, cfg *dxf.Config) (*models.Document, error) {
	return dxf.Decode(ctx, r, cfg)
}

// WriteFile writes doc to the named file, creating or truncating it. The file
// is closed on every path; a close error is reported with the write error.
func WriteFile(ctx context.Context, name string, doc *models.Document, cfg *dxf.Config) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return Encode(ctx, f, doc, cfg)
}

// ReadFile reads a document from the named file.
func ReadFile(ctx context.Context, name string, cfg *dxf.Config) (doc *models.Document, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return Decode(ctx, f, cfg)
}
