package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var browserStyle = lipgloss.NewStyle().Margin(1, 2)

// fileItem adapts a FileRow to the bubbles list item interface.
type fileItem struct {
	row FileRow
}

func (i fileItem) Title() string       { return i.row.Dest }
func (i fileItem) Description() string { return i.row.Origin }
func (i fileItem) FilterValue() string { return i.row.Dest }

// browseModel is the Bubble Tea model behind the interactive file-table
// browser.
type browseModel struct {
	list list.Model
}

// Init implements tea.Model.
func (b browseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// Don't quit while the user is typing a filter.
			if b.list.FilterState() != list.Filtering {
				return b, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		h, v := browserStyle.GetFrameSize()
		b.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)

	return b, cmd
}

// View implements tea.Model.
func (b browseModel) View() string {
	return browserStyle.Render(b.list.View())
}

// BrowseFileTable opens an interactive, filterable view of the resolved
// file table. It blocks until the user quits.
func BrowseFileTable(rows []FileRow) error {
	items := make([]list.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, fileItem{row: row})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Bundle contents (%d files)", len(rows))

	if _, err := tea.NewProgram(browseModel{list: l}, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("file table browser: %w", err)
	}

	return nil
}
