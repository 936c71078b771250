package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const detailWidth = 10

// Single-line delegate for listing items.
type listingDelegate struct{}

func (d listingDelegate) Height() int  { return 1 }
func (d listingDelegate) Spacing() int { return 0 }
func (d listingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d listingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	file, ok := item.(fileItem)
	if !ok {
		return
	}

	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	detailStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Width(detailWidth).
		Align(lipgloss.Right)

	if index == m.Index() {
		pathStyle = pathStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
		detailStyle = detailStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	}

	width := m.Width() - detailWidth - 2

	_, _ = fmt.Fprintf(w, "%s  %s",
		detailStyle.Render(file.detail),
		pathStyle.Render(truncateToWidth(file.path, width)),
	)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// listingModel is a filterable, scrollable list of paths.
type listingModel struct {
	width    int
	height   int
	title    string
	summary  string
	fileList list.Model
	rendered bool
}

func newListingModel() listingModel {
	fileList := list.New([]list.Item{}, listingDelegate{}, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path…"

	return listingModel{width: 80, height: 24, fileList: fileList}
}

func (m listingModel) Init() tea.Cmd {
	return nil
}

func (m listingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetWidth(m.width)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.fileList.FilterState() != list.Filtering {
				return m, tea.Quit
			}
		}

		m.fileList, cmd = m.fileList.Update(msg)

	case listingMsg:
		m = m.handleListingMsg(msg)
	}

	return m, cmd
}

func (m listingModel) handleListingMsg(msg listingMsg) listingModel {
	m.title = msg.title
	m.summary = msg.summary

	items := make([]list.Item, 0, len(msg.items))
	for _, item := range msg.items {
		items = append(items, item)
	}

	m.fileList.SetItems(items)
	m.rendered = true

	return m
}

func (m listingModel) View() string {
	if !m.rendered {
		return "Loading…\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(m.width)

	// title, summary, footer, border and padding take 9 lines
	m.fileList.SetHeight(max(5, m.height-9))
	m.fileList.SetWidth(m.width - 6)

	table := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1).
		Render(m.fileList.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		summaryStyle.Render(m.summary),
		table,
		footerStyle.Render("↑/k up • ↓/j down • / filter • q quit"),
	)
}
