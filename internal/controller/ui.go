// Package controller provides output adapters for displaying packer and plot results.
package controller

import (
	"io"
	"os"

	m "github.com/mouse-blink/vislog/internal/model"
	"github.com/spf13/cobra"
)

// UI defines the interface for displaying results of the vislog commands.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayBundle shows the gathered sources and dependencies.
	DisplayBundle(bundle m.Bundle) error
	// DisplayArchive shows the contents of an existing archive.
	DisplayArchive(contents m.ArchiveContents) error
	// DisplaySaved lists files written by the plot logger.
	DisplaySaved(paths []m.Path) error
}

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout(), cmd.InOrStdin())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
