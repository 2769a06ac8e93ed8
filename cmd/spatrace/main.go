// Command spatrace is the CLI wrapper around the SPA route/component/
// widget multigraph extraction pipeline (spec §6). It is a thin
// cobra.Command shell: the pipeline itself lives in internal/orchestrator.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/softscanner-sw/spa-multigraph/internal/config"
	"github.com/softscanner-sw/spa-multigraph/internal/orchestrator"
)

var (
	debugFlag      bool
	configPathFlag string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spatrace <projectRoot> <tsConfigPath> [outputDir]",
		Short: "Extract the route/component/widget multigraph from a single-page-application project",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runExtract,
	}
	cmd.Flags().BoolVar(&debugFlag, "debug", false, "also write the debug split-JSON directory")
	cmd.Flags().StringVar(&configPathFlag, "config", "", "path to an analyzer config YAML file")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	projectRoot := args[0]
	tsConfigPath := args[1]
	outputDir := ""
	if len(args) == 3 {
		outputDir = args[2]
	} else {
		outputDir = filepath.Join("output", filepath.Base(filepath.Clean(projectRoot)))
	}

	cfg, err := config.Load(configPathFlag)
	if err != nil {
		return fmt.Errorf("%w: %w", orchestrator.ErrConfiguration, err)
	}
	if debugFlag {
		cfg.Debug = true
	}

	shutdownTracing, err := setupTracing(cfg.Debug)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer shutdownTracing(cmd.Context())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundle, err := orchestrator.Run(ctx, projectRoot, tsConfigPath, outputDir, cfg)
	if err != nil {
		slog.Error("extraction failed", slog.Any("error", err))
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d nodes, %d edges to %s\n",
		bundle.Stats.NodeCount, bundle.Stats.EdgeCount, outputDir)
	return nil
}

// setupTracing installs a stdout-exporting span pipeline when debug is
// on, writing spans to stderr so they never interleave with the bundle
// written to stdout/outputDir. With debug off it leaves the global
// no-op TracerProvider in place: the pipeline has no network I/O, so
// there is nothing to export spans to outside of this debug path.
func setupTracing(debug bool) (func(context.Context), error) {
	if !debug {
		return func(context.Context) {}, nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}, nil
}
