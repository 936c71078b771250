package cmd

import (
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/vislog/internal/adapter"
	"github.com/mouse-blink/vislog/internal/domain"
	m "github.com/mouse-blink/vislog/internal/model"
)

const plotLongDescription = `Render payload files as images and plots. Each file holds one or more
YAML documents:

  kind: line            # image, value, bar, line, scatter, pie
  name: trend
  x: [0, 1, 2]
  y: [0.5, 0.7, 0.9]

Images go to the configured image directory and plots to the plot
directory, named <name><format>. Existing files are overwritten.

Value payloads sharing a name accumulate one history across all files, in
the order the files are given, regardless of --parallel.`

var plotParallelFlag int
var plotFormatFlag string
var plotUploadFlag string

// plotCmd represents the plot command.
var plotCmd = newPlotCmd()

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot FILE...",
		Short: "Render payload files as images and plots",
		Long:  plotLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := cfg.Format
			if plotFormatFlag != "" {
				format = plotFormatFlag
			}

			for _, dir := range []string{cfg.ImageDir, cfg.PlotDir} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
			}

			plotLogger := domain.NewPlotLogger(adapter.NewChartRenderer(cfg.Width, cfg.Height), cfg.ImageDir, cfg.PlotDir)

			saved, err := renderFiles(cmd, plotLogger, args, format)
			if err != nil {
				return err
			}

			if plotUploadFlag != "" {
				for _, p := range saved {
					if err := publish(cmd, p, uploadKey(plotUploadFlag, p)); err != nil {
						return err
					}
				}
			}

			return newUI(cmd).DisplaySaved(saved)
		},
	}
	cmd.Flags().IntVarP(&plotParallelFlag, "parallel", "p", 1, "number of files rendered in parallel")
	cmd.Flags().StringVarP(&plotFormatFlag, "format", "f", "", "file suffix such as .png or .svg (default from config)")
	cmd.Flags().StringVar(&plotUploadFlag, "upload", "", "upload saved figures to artifact storage under this key prefix")

	return cmd
}

// renderFiles loads and renders the files concurrently. Value payloads are
// replayed afterwards in argument order, so a history shared by several files
// is the same on every run.
func renderFiles(cmd *cobra.Command, plotLogger *domain.PlotLogger, files []string, format string) ([]m.Path, error) {
	var mu sync.Mutex

	var saved []m.Path

	loaded := make([][]m.Payload, len(files))

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, plotParallelFlag))

	for i, file := range files {
		g.Go(func() error {
			payloads, err := payloadStore.LoadPayloads(m.Path(file))
			if err != nil {
				return err
			}

			loaded[i] = payloads

			for _, p := range payloads {
				if p.Kind == m.PlotValue {
					continue
				}

				paths, err := plotLogger.Show(p, domain.WithFormat(format))
				if err != nil {
					return err
				}

				logger.Debug("payload rendered", "file", file, "name", p.Name, "kind", p.Kind)

				mu.Lock()
				saved = append(saved, paths...)
				mu.Unlock()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, payloads := range loaded {
		for _, p := range payloads {
			if p.Kind != m.PlotValue {
				continue
			}

			paths, err := plotLogger.Show(p, domain.WithFormat(format))
			if err != nil {
				return nil, err
			}

			logger.Debug("payload rendered", "file", files[i], "name", p.Name, "kind", p.Kind)

			saved = append(saved, paths...)
		}
	}

	// value payloads save the same file once per value
	slices.Sort(saved)

	return slices.Compact(saved), nil
}

func init() {
	rootCmd.AddCommand(plotCmd)
}
