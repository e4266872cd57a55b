package handlers

import (
	"fmt"
	"io"

	"cadence/internal/core"
	"cadence/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
)

const previewDays = 3

// maxWarningLines caps how many individual warnings are echoed to the terminal.
const maxWarningLines = 5

var (
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	topicStyle    = lipgloss.NewStyle().Bold(true)
	hashtagsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(76)
)

func printSummary(w io.Writer, result *pipeline.Result, path string) {
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✅ Generated %d-day content plan for %q", result.Days, result.BrandTheme)))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("🎯 Category:"), result.Category)
	fmt.Fprintf(w, "%s %s", labelStyle.Render("🛠️  Method:"), result.Method)
	if result.Method == pipeline.MethodLLM {
		fmt.Fprintf(w, " (%d enhanced, %d template)", result.Stats.Enhanced, result.Stats.Unchanged)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("📁 Saved to:"), path)
}

// printPreview renders the first n days as cards.
func printPreview(w io.Writer, plan core.ContentPlan, n int) {
	if len(plan) == 0 {
		return
	}
	n = min(n, len(plan))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("📅 Preview (first %d of %d days)", n, len(plan))))
	for _, entry := range plan[:n] {
		fmt.Fprintln(w, renderCard(entry))
	}
}

func renderCard(entry core.DayEntry) string {
	body := fmt.Sprintf("%s %s\n%s\n%s",
		labelStyle.Render(fmt.Sprintf("Day %d ·", entry.Day)),
		topicStyle.Render(entry.Topic),
		entry.Caption,
		hashtagsStyle.Render(entry.Hashtags),
	)
	return cardStyle.Render(body)
}

func printWarnings(w io.Writer, warnings []string) {
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("⚠️  %d warning(s); affected captions kept their template text", len(warnings))))
	for i, msg := range warnings {
		if i == maxWarningLines {
			fmt.Fprintf(w, "   … and %d more\n", len(warnings)-maxWarningLines)
			break
		}
		fmt.Fprintf(w, "   • %s\n", msg)
	}
}
