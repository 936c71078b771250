package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/vislog/internal/model"
)

const packLongDescription = `Pack the source files reachable from a namespace snapshot into a zip
archive together with the runtime version (python_version.txt) and the
dependency list (modules.txt). An existing archive is replaced.

The snapshot is a YAML or JSON document exported from the running program:

  file: /proj/train.py
  version: python 3.9.1          # optional, queried when missing
  dependencies: [numpy==1.21.0]  # optional, pip freeze when missing
  bindings:
    - {name: util, kind: module, module: mypkg.util}
    - {name: train, kind: defined, module: mypkg.train}
  modules:
    mypkg.util: /proj/mypkg/util.py

With --go-module the binding modules are Go import paths resolved inside the
Go module containing the given directory.`

var packOutputFlag string
var packGoModuleFlag string
var packUploadFlag string

// packCmd represents the pack command.
var packCmd = newPackCmd()

func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack SNAPSHOT",
		Short: "Pack sources and dependencies into a zip archive",
		Long:  packLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshotStore.LoadSnapshot(m.Path(args[0]))
			if err != nil {
				return err
			}

			packer, err := buildPacker(snap, packGoModuleFlag)
			if err != nil {
				return err
			}

			bundle, err := packer.Zip(cmd.Context(), snap.Namespace, m.Path(packOutputFlag))
			if err != nil {
				return err
			}

			logger.Info("archive written", "path", packOutputFlag, "sources", len(bundle.Sources), "dependencies", len(bundle.Dependencies))

			if packUploadFlag != "" {
				if err := publish(cmd, m.Path(packOutputFlag), packUploadFlag); err != nil {
					return err
				}
			}

			return newUI(cmd).DisplayBundle(bundle)
		},
	}
	cmd.Flags().StringVarP(&packOutputFlag, "output", "o", "sources.zip", "archive to write")
	cmd.Flags().StringVar(&packGoModuleFlag, "go-module", "", "resolve bindings as Go packages of the module containing this directory")
	cmd.Flags().StringVar(&packUploadFlag, "upload", "", "upload the archive to artifact storage under this key")

	return cmd
}

func publish(cmd *cobra.Command, local m.Path, key string) error {
	publisher, err := newPublisher(cfg.Artifact)
	if err != nil {
		return err
	}

	if err := publisher.Publish(cmd.Context(), local, key); err != nil {
		return err
	}

	logger.Info("artifact uploaded", "path", local, "key", key)

	return nil
}

func uploadKey(prefix string, path m.Path) string {
	if prefix == "" {
		return filepath.Base(string(path))
	}

	return prefix + "/" + filepath.Base(string(path))
}

func init() {
	rootCmd.AddCommand(packCmd)
}
