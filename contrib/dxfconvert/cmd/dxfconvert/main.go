package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cadgraph/cadgraph.go/contrib/dxfconvert"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	config := dxfconvert.NewConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:           "dxfconvert [input] [output]",
		Short:         "Convert drawings between DXF ASCII, DXF binary and CBOR",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				// the file is loaded first so that explicit flags win
				fileConfig := dxfconvert.NewConfig()
				if err := fileConfig.LoadFile(configPath); err != nil {
					return err
				}
				overlayFlags(cmd, fileConfig, config)
				config = fileConfig
			}
			if len(args) > 0 {
				config.Input = args[0]
			}
			if len(args) > 1 {
				config.Output = args[1]
			}
			if err := config.Validate(); err != nil {
				_ = cmd.Usage()
				return err
			}
			return dxfconvert.Do(cmd.Context(), config)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML config file")
	flags.StringVarP(&config.Input, "input", "i", "", "input drawing")
	flags.StringVarP(&config.Output, "output", "o", "", "output drawing")
	flags.StringVarP(&config.Format, "format", "f", config.Format, "output format: ascii, binary or cbor")
	flags.StringVar(&config.Version, "version", "", "output version, e.g. AC1027")
	flags.StringVar(&config.CodePage, "code-page", "", "code page for versions before AC1021")
	flags.BoolVar(&config.Strict, "strict", false, "fail on the first warning")
	flags.BoolVar(&config.WriteOptionals, "write-optionals", false, "write optional fields holding their default")
	flags.StringVar(&config.Catalog, "catalog", "", "dump the mapping catalog as JSON to this path")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&config.LogFile, "log-file", "", "write logs to this file")
	return cmd
}

// overlayFlags copies the flags set on the command line from src to dst.
func overlayFlags(cmd *cobra.Command, dst, src *dxfconvert.Config) {
	changed := cmd.Flags().Changed
	if changed("input") {
		dst.Input = src.Input
	}
	if changed("output") {
		dst.Output = src.Output
	}
	if changed("format") {
		dst.Format = src.Format
	}
	if changed("version") {
		dst.Version = src.Version
	}
	if changed("code-page") {
		dst.CodePage = src.CodePage
	}
	if changed("strict") {
		dst.Strict = src.Strict
	}
	if changed("write-optionals") {
		dst.WriteOptionals = src.WriteOptionals
	}
	if changed("catalog") {
		dst.Catalog = src.Catalog
	}
	if changed("verbose") {
		dst.Verbose = src.Verbose
	}
	if changed("log-file") {
		dst.LogFile = src.LogFile
	}
}
