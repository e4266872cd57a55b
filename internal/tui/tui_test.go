package tui

import (
	"fmt"
	"strings"
	"testing"

	"cadence/internal/core"

	tea "github.com/charmbracelet/bubbletea"
)

func testPlan(n int) core.ContentPlan {
	plan := make(core.ContentPlan, n)
	for i := range plan {
		plan[i] = core.DayEntry{
			Day:      i + 1,
			Topic:    fmt.Sprintf("Topic %d", i+1),
			Caption:  fmt.Sprintf("Caption %d", i+1),
			Hashtags: "#A #B #C",
		}
	}
	return plan
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestNavigation(t *testing.T) {
	var m tea.Model = NewModel("Plan", testPlan(10))

	m = press(m, "down", "j", "j")
	if entry, _ := m.(Model).Selected(); entry.Day != 4 {
		t.Errorf("Expected day 4 after three moves down, got %d", entry.Day)
	}

	m = press(m, "up", "k", "k", "k", "k")
	if entry, _ := m.(Model).Selected(); entry.Day != 1 {
		t.Errorf("Expected cursor to stop at day 1, got %d", entry.Day)
	}

	m = press(m, "G")
	if entry, _ := m.(Model).Selected(); entry.Day != 10 {
		t.Errorf("Expected G to jump to the last day, got %d", entry.Day)
	}
	m = press(m, "j")
	if entry, _ := m.(Model).Selected(); entry.Day != 10 {
		t.Errorf("Expected cursor to stop at the last day, got %d", entry.Day)
	}

	m = press(m, "g")
	if entry, _ := m.(Model).Selected(); entry.Day != 1 {
		t.Errorf("Expected g to jump to the first day, got %d", entry.Day)
	}
}

func TestQuit(t *testing.T) {
	m := NewModel("Plan", testPlan(7))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if next.(Model).View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestViewShowsSelectedEntry(t *testing.T) {
	var m tea.Model = NewModel("Fitness plan", testPlan(30))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	m = press(m, "j", "j")

	view := m.View()
	for _, want := range []string{"Fitness plan", "(30 days)", "Caption 3", "#A #B #C"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestListScrollsWithSelection(t *testing.T) {
	var m tea.Model = NewModel("Plan", testPlan(40))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 15})
	m = press(m, "G")

	view := m.View()
	if !strings.Contains(view, "Day 40") {
		t.Error("Expected last day to be visible after jumping to the end")
	}
	if strings.Contains(view, "Day  1 ") {
		t.Error("Expected first day to be scrolled out of view")
	}
}

func TestEmptyPlan(t *testing.T) {
	m := NewModel("Empty", nil)
	if _, ok := m.Selected(); ok {
		t.Error("Expected no selection for an empty plan")
	}
	if !strings.Contains(m.View(), "No days in this plan.") {
		t.Error("Expected empty plan message")
	}
}
