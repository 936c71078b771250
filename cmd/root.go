// Package cmd provides the root command and CLI setup for vislog.
package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mouse-blink/vislog/internal/adapter"
	"github.com/mouse-blink/vislog/internal/config"
	"github.com/mouse-blink/vislog/internal/controller"
	"github.com/spf13/cobra"
)

var snapshotStore adapter.SnapshotStore
var archiveStore adapter.ArchiveStore
var payloadStore adapter.PayloadStore
var sourceFS adapter.SourceFSAdapter
var newUI func(cmd *cobra.Command) controller.UI
var newPublisher func(cfg config.ArtifactConfig) (adapter.Publisher, error)

var cfg = config.Default()
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func init() {
	snapshotStore = adapter.NewSnapshotStore()
	archiveStore = adapter.NewZipArchiveStore()
	payloadStore = adapter.NewPayloadStore()
	sourceFS = adapter.NewLocalSourceFSAdapter()
	newUI = func(cmd *cobra.Command) controller.UI {
		return controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))
	}
	newPublisher = defaultPublisher
}

var configFlag string
var logLevelFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vislog",
		Short: "Experiment visualization and source packing",
		Long: `vislog saves numeric experiment data as images and plots, and packs a
program's own source files, runtime version and dependency list into a zip
archive so a run can be reproduced later.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger = newLogger(logLevelFlag)

			loaded, err := config.Load(configFlag)
			if err != nil {
				return err
			}

			cfg = loaded
			logger.Debug("config loaded", "path", configFlag, "img_dir", cfg.ImageDir, "plot_dir", cfg.PlotDir)

			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "vislog.yaml", "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level

	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func defaultPublisher(artifact config.ArtifactConfig) (adapter.Publisher, error) {
	if !artifact.Enabled() {
		return adapter.NopPublisher{}, nil
	}

	return adapter.NewS3Publisher(adapter.S3Config{
		Endpoint:  artifact.Endpoint,
		Region:    artifact.Region,
		AccessKey: artifact.AccessKey,
		SecretKey: artifact.SecretKey,
		Bucket:    artifact.Bucket,
		Prefix:    artifact.Prefix,
		UseSSL:    artifact.UseSSL,
	})
}
