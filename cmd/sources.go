package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/vislog/internal/model"
)

var sourcesGoModuleFlag string

// sourcesCmd represents the sources command.
var sourcesCmd = newSourcesCmd()

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources SNAPSHOT",
		Short: "List the source files and dependencies a pack would include",
		Long:  "Gather sources and dependencies for a namespace snapshot without writing an archive.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshotStore.LoadSnapshot(m.Path(args[0]))
			if err != nil {
				return err
			}

			packer, err := buildPacker(snap, sourcesGoModuleFlag)
			if err != nil {
				return err
			}

			bundle, err := packer.Gather(cmd.Context(), snap.Namespace)
			if err != nil {
				return err
			}

			return newUI(cmd).DisplayBundle(bundle)
		},
	}
	cmd.Flags().StringVar(&sourcesGoModuleFlag, "go-module", "", "resolve bindings as Go packages of the module containing this directory")

	return cmd
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
