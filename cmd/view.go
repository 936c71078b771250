package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/vislog/internal/domain"
	m "github.com/mouse-blink/vislog/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view ARCHIVE",
		Short: "View a previously written source archive",
		Long:  "List the members of a source archive with its recorded runtime version and dependencies.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contents, err := archiveStore.Read(m.Path(args[0]), domain.DefaultVersionEntry, domain.DefaultModulesEntry)
			if err != nil {
				return err
			}

			return newUI(cmd).DisplayArchive(contents)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
