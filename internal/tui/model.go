// Package tui provides the Bubble Tea analysis interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/screenwatch/screenwatch/internal/model"
	"github.com/screenwatch/screenwatch/internal/view"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#C89A3A")).
				Bold(true)
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var tabTitles = []string{"Daily Analysis", "Weekly Analysis"}

// Model implements the Bubble Tea analysis UI. The summary slices are
// computed once before the program starts and are never mutated here.
type Model struct {
	daily  []model.DailyEntry
	weekly []model.WeeklyEntry

	state  view.State
	detail viewport.Model

	width  int
	height int
}

// NewModel constructs the analysis UI over precomputed summaries.
func NewModel(daily []model.DailyEntry, weekly []model.WeeklyEntry) *Model {
	m := &Model{
		daily:  daily,
		weekly: weekly,
		detail: viewport.New(0, 0),
	}
	m.refreshDetail()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		cmd := keyToCommand(msg)
		if cmd == view.CommandQuit {
			return m, tea.Quit
		}
		if cmd == view.CommandNone {
			// Unmapped keys scroll the detail pane.
			var vpCmd tea.Cmd
			m.detail, vpCmd = m.detail.Update(msg)
			return m, vpCmd
		}
		m.state = view.Apply(m.state, cmd, len(m.daily), len(m.weekly))
		m.refreshDetail()
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderTabs()
	footer := footerStyle.Render("Tabs: left/right  Select: up/down  Quit: q")
	bodyHeight := m.height - lipgloss.Height(header) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := m.renderBody(bodyHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func keyToCommand(msg tea.KeyMsg) view.Command {
	switch msg.Type {
	case tea.KeyLeft:
		return view.CommandSelectDaily
	case tea.KeyRight:
		return view.CommandSelectWeekly
	case tea.KeyUp:
		return view.CommandMoveUp
	case tea.KeyDown:
		return view.CommandMoveDown
	case tea.KeyEsc, tea.KeyCtrlC:
		return view.CommandQuit
	}
	if msg.String() == "q" {
		return view.CommandQuit
	}
	return view.CommandNone
}

func (m *Model) refreshDetail() {
	_, detail := view.Project(m.state, m.daily, m.weekly)
	m.detail.SetContent(detail)
	m.detail.GotoTop()
}

func (m *Model) updateLayout() {
	_, detailWidth, bodyHeight := m.paneSizes()
	m.detail.Width = detailWidth - paneStyle.GetHorizontalFrameSize()
	m.detail.Height = bodyHeight - paneStyle.GetVerticalFrameSize()
	if m.detail.Width < 1 {
		m.detail.Width = 1
	}
	if m.detail.Height < 1 {
		m.detail.Height = 1
	}
}

func (m *Model) paneSizes() (listWidth, detailWidth, bodyHeight int) {
	listWidth = m.width / 2
	detailWidth = m.width - listWidth
	header := m.renderTabs()
	bodyHeight = m.height - lipgloss.Height(header) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return listWidth, detailWidth, bodyHeight
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if view.Tab(i) == m.state.Tab {
			parts = append(parts, activeTabStyle.Render(title))
		} else {
			parts = append(parts, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody(height int) string {
	listWidth, detailWidth, _ := m.paneSizes()

	rows, _ := view.Project(m.state, m.daily, m.weekly)
	innerListWidth := listWidth - paneStyle.GetHorizontalFrameSize()
	if innerListWidth < 1 {
		innerListWidth = 1
	}
	innerHeight := height - paneStyle.GetVerticalFrameSize()
	if innerHeight < 1 {
		innerHeight = 1
	}

	list := paneStyle.Width(listWidth - paneStyle.GetHorizontalBorderSize()).
		Height(innerHeight).
		Render(renderRows(rows, innerListWidth, innerHeight))
	detail := paneStyle.Width(detailWidth - paneStyle.GetHorizontalBorderSize()).
		Height(innerHeight).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

// renderRows renders the visible window of list rows, keeping the selected
// row in view when the list is taller than the pane.
func renderRows(rows []view.Row, width, height int) string {
	if len(rows) == 0 {
		return view.Placeholder
	}
	offset := 0
	for i, row := range rows {
		if row.Selected {
			if i >= height {
				offset = i - height + 1
			}
			break
		}
	}
	end := offset + height
	if end > len(rows) {
		end = len(rows)
	}
	lines := make([]string, 0, end-offset)
	for _, row := range rows[offset:end] {
		label := runewidth.Truncate(row.Label, width, "…")
		if row.Selected {
			lines = append(lines, selectedRowStyle.Render(label))
		} else {
			lines = append(lines, rowStyle.Render(label))
		}
	}
	return strings.Join(lines, "\n")
}
