// Package tui is an interactive browser for a content plan.
package tui

import (
	"fmt"
	"strings"

	"cadence/internal/core"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the state of the plan browser.
type Model struct {
	title       string
	plan        core.ContentPlan
	selectedIdx int
	offset      int // first visible row in the day list
	width       int
	height      int
	quitting    bool
}

// NewModel returns a browser positioned on the first day.
func NewModel(title string, plan core.ContentPlan) Model {
	return Model{
		title:  title,
		plan:   plan,
		width:  100,
		height: 30,
	}
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (core.DayEntry, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.plan) {
		return core.DayEntry{}, false
	}
	return m.plan[m.selectedIdx], true
}

// Init is the first command that will be run. We don't need any for now.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.plan)-1 {
				m.selectedIdx++
			}
		case "home", "g":
			m.selectedIdx = 0
		case "end", "G":
			if len(m.plan) > 0 {
				m.selectedIdx = len(m.plan) - 1
			}
		case "pgdown", "ctrl+d":
			m.selectedIdx = min(len(m.plan)-1, m.selectedIdx+m.visibleRows())
		case "pgup", "ctrl+u":
			m.selectedIdx = max(0, m.selectedIdx-m.visibleRows())
		}
	}

	m.scrollToSelection()
	return m, nil
}

func (m Model) visibleRows() int {
	return max(1, m.height-10)
}

func (m *Model) scrollToSelection() {
	rows := m.visibleRows()
	if m.selectedIdx < m.offset {
		m.offset = m.selectedIdx
	}
	if m.selectedIdx >= m.offset+rows {
		m.offset = m.selectedIdx - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	hashtagsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	paneWidth := max(20, m.width/2-5)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1).Width(paneWidth)
	detailStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1).Width(paneWidth)

	var list strings.Builder
	if len(m.plan) == 0 {
		list.WriteString("No days in this plan.")
	} else {
		end := min(len(m.plan), m.offset+m.visibleRows())
		for i := m.offset; i < end; i++ {
			entry := m.plan[i]
			line := fmt.Sprintf("Day %2d  %s", entry.Day, truncate(entry.Topic, paneWidth-12))
			if i == m.selectedIdx {
				list.WriteString(cursorStyle.Render("> " + line))
			} else {
				list.WriteString("  " + line)
			}
			list.WriteString("\n")
		}
	}

	var detail strings.Builder
	if entry, ok := m.Selected(); ok {
		detail.WriteString(labelStyle.Render(fmt.Sprintf("Day %d", entry.Day)) + "\n\n")
		detail.WriteString(labelStyle.Render("Topic") + "\n" + entry.Topic + "\n\n")
		detail.WriteString(labelStyle.Render("Caption") + "\n" + entry.Caption + "\n\n")
		detail.WriteString(labelStyle.Render("Hashtags") + "\n" + hashtagsStyle.Render(entry.Hashtags))
	}

	header := titleStyle.Render(m.title) + fmt.Sprintf("  (%d days)", len(m.plan))
	body := lipgloss.JoinHorizontal(lipgloss.Top, listStyle.Render(strings.TrimRight(list.String(), "\n")), detailStyle.Render(detail.String()))
	help := helpStyle.Render("[↑/k] Up | [↓/j] Down | [g/G] First/Last | [q] Quit")

	return docStyle.Render(header + "\n\n" + body + "\n\n" + help)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the browser in the alternate screen and blocks until it exits.
func Run(title string, plan core.ContentPlan) error {
	p := tea.NewProgram(NewModel(title, plan), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
