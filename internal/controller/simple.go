package controller

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/vislog/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using plain tables on the command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayBundle prints the source files, then the dependency list.
func (s *SimpleUI) DisplayBundle(bundle m.Bundle) error {
	s.printf("%s\n", bundle.Version)

	rows := make([][]string, 0, len(bundle.Sources))
	for _, src := range bundle.Sources {
		rows = append(rows, []string{string(src)})
	}

	s.printTable([]string{"Source"}, rows, []string{fmt.Sprintf("Total Files %d", len(bundle.Sources))})

	deps := make([][]string, 0, len(bundle.Dependencies))
	for _, dep := range bundle.Dependencies {
		deps = append(deps, []string{dep})
	}

	s.printTable([]string{"Dependency"}, deps, []string{fmt.Sprintf("Total Dependencies %d", len(bundle.Dependencies))})

	return nil
}

// DisplayArchive prints the archive members with their sizes.
func (s *SimpleUI) DisplayArchive(contents m.ArchiveContents) error {
	s.printf("%s: %s\n", contents.Path, contents.Version)

	var total uint64

	rows := make([][]string, 0, len(contents.Members))
	for _, member := range contents.Members {
		rows = append(rows, []string{member.Name, fmt.Sprintf("%d", member.Size)})
		total += member.Size
	}

	s.printTable([]string{"Member", "Size"}, rows, []string{
		fmt.Sprintf("Total Members %d", len(contents.Members)),
		fmt.Sprintf("%d", total),
	})

	s.printf("%d dependencies recorded\n", len(contents.Dependencies))

	return nil
}

// DisplaySaved prints one saved path per line.
func (s *SimpleUI) DisplaySaved(paths []m.Path) error {
	for _, p := range paths {
		s.printf("saved %s\n", p)
	}

	return nil
}

func (s *SimpleUI) printTable(header []string, rows [][]string, footer []string) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.SetFooter(footer)
	table.Render()

	s.printf("\n%s", tableBuffer.String())
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
