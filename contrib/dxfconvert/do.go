package dxfconvert

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/cadgraph/cadgraph.go"
	"github.com/cadgraph/cadgraph.go/dxf"
	"github.com/cadgraph/cadgraph.go/pkg/logger"
)

const catalogPermission = 0o644

// Do runs the conversion described by config. The catalog, when requested, is
// dumped before the drawing is read.
func Do(ctx context.Context, config *Config) (err error) {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closeLog, err := newLogger(config)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeLog())
	}()

	codec := config.codecConfig()
	codec.Logger = log

	if config.Catalog != "" {
		if err := dumpCatalog(codec, config.Catalog); err != nil {
			return err
		}
		log.Info("catalog written", "path", config.Catalog)
	}
	if config.Input == "" {
		return nil
	}

	warnings := 0
	codec.Notify = func(n dxf.Notification) {
		if n.Level >= dxf.LevelWarning {
			warnings++
		}
	}

	read := *codec
	read.Version = ""
	read.CodePage = ""
	doc, err := cadgraph.ReadFile(ctx, config.Input, &read)
	if err != nil {
		return fmt.Errorf("failed to read drawing: %w", err)
	}
	log.Info("drawing read",
		"path", config.Input,
		"version", string(doc.Header.Version),
		"entities", len(doc.Entities()),
		"warnings", warnings)

	warnings = 0
	if err := cadgraph.WriteFile(ctx, config.Output, doc, codec); err != nil {
		return fmt.Errorf("failed to write drawing: %w", err)
	}
	log.Info("drawing written",
		"path", config.Output,
		"format", codec.Format.String(),
		"warnings", warnings)
	return nil
}

func newLogger(config *Config) (logger.Logger, func() error, error) {
	if !config.Verbose && config.LogFile == "" {
		return logger.Nop(), func() error { return nil }, nil
	}
	build := logger.NewBuild().WithLevel("info")
	if config.Verbose {
		build = build.WithLevel("debug")
	}
	if config.LogFile != "" {
		build = build.FromPath(config.LogFile)
	}
	l, err := build.Make()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	return l, l.Close, nil
}

func dumpCatalog(codec *dxf.Config, path string) error {
	data, err := codec.Catalog.Describe()
	if err != nil {
		return fmt.Errorf("failed to describe catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), catalogPermission); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
