package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maja42/declrom"
)

const sidebarWidth = 24

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// browseModel shows the lists of a declaration on the left
// and the selected region in a scrollable viewport on the right.
type browseModel struct {
	decl     *declrom.Declaration
	regions  []region
	selected int
	view     viewport.Model
	ready    bool
}

func newBrowseModel(decl *declrom.Declaration) *browseModel {
	return &browseModel{
		decl:    decl,
		regions: layout(decl),
	}
}

// Browse runs the interactive browser until the user quits.
func Browse(decl *declrom.Declaration) error {
	_, err := tea.NewProgram(newBrowseModel(decl), tea.WithAltScreen()).Run()
	return err
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - sidebarWidth - 1
		height := msg.Height - 2
		if !m.ready {
			m.view = viewport.New(width, height)
			m.ready = true
		} else {
			m.view.Width = width
			m.view.Height = height
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refresh()
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.regions)-1 {
				m.selected++
				m.refresh()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// refresh loads the selected region into the viewport.
func (m *browseModel) refresh() {
	if !m.ready {
		return
	}
	m.view.SetContent(m.detail())
	m.view.GotoTop()
}

// detail renders the selected region: the record table of a list followed by its bytes.
func (m *browseModel) detail() string {
	r := m.regions[m.selected]
	p := painter(true)

	var sb strings.Builder
	if m.selected < m.decl.Count() {
		sb.WriteString(DescribeList(m.decl.Lists()[m.selected]))
	} else {
		fmt.Fprintf(&sb, "%s, 0x%06X - 0x%06X\n", r.label, r.start, r.end)
	}
	sb.WriteByte('\n')
	sb.WriteString(HexDump(p, m.decl.Bytes(), r.start, r.end, m.regions))
	return sb.String()
}

func (m *browseModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var side strings.Builder
	side.WriteString(titleStyle.Render("Declaration ROM"))
	side.WriteString("\n\n")
	for i, r := range m.regions {
		label := fmt.Sprintf(" %-*s", sidebarWidth-2, r.label)
		if i == m.selected {
			label = selectedStyle.Render(label)
		} else {
			label = r.style.Render(label)
		}
		side.WriteString(label)
		side.WriteByte('\n')
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(sidebarWidth).Render(side.String()),
		" ",
		m.view.View(),
	)
	help := helpStyle.Render("↑/↓ select • pgup/pgdn scroll • q quit")
	return body + "\n" + help
}
