package controller

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	m "github.com/mouse-blink/vislog/internal/model"
)

// inlineLimit is the longest list printed directly instead of paged.
const inlineLimit = 20

// TUI implements UI using Bubble Tea for long listings.
type TUI struct {
	output io.Writer
	input  io.Reader
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, input io.Reader) *TUI {
	return &TUI{output: output, input: input}
}

// DisplayBundle lists the source files; dependencies are summarized.
func (t *TUI) DisplayBundle(bundle m.Bundle) error {
	items := make([]fileItem, 0, len(bundle.Sources))
	for _, src := range bundle.Sources {
		items = append(items, fileItem{path: string(src), detail: "source"})
	}

	return t.show(listingMsg{
		title:   "vislog sources",
		summary: fmt.Sprintf("%s   Files: %d   Dependencies: %d", bundle.Version, len(bundle.Sources), len(bundle.Dependencies)),
		items:   items,
	})
}

// DisplayArchive lists archive members with their sizes.
func (t *TUI) DisplayArchive(contents m.ArchiveContents) error {
	items := make([]fileItem, 0, len(contents.Members))
	for _, member := range contents.Members {
		items = append(items, fileItem{path: member.Name, detail: fmt.Sprintf("%d", member.Size)})
	}

	return t.show(listingMsg{
		title:   string(contents.Path),
		summary: fmt.Sprintf("%s   Members: %d   Dependencies: %d", contents.Version, len(contents.Members), len(contents.Dependencies)),
		items:   items,
	})
}

// DisplaySaved prints one saved path per line.
func (t *TUI) DisplaySaved(paths []m.Path) error {
	for _, p := range paths {
		if _, err := fmt.Fprintf(t.output, "saved %s\n", p); err != nil {
			return err
		}
	}

	return nil
}

func (t *TUI) show(msg listingMsg) error {
	if len(msg.items) <= inlineLimit {
		var b strings.Builder

		fmt.Fprintf(&b, "%s\n%s\n", msg.title, msg.summary)

		for _, item := range msg.items {
			fmt.Fprintf(&b, "  %10s  %s\n", item.detail, item.path)
		}

		_, err := io.WriteString(t.output, b.String())

		return err
	}

	model := newListingModel().handleListingMsg(msg)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithInput(t.input), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}
