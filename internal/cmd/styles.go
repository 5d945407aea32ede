package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Interstellar-code/taskmaster/internal/domain"
	"github.com/Interstellar-code/taskmaster/internal/task"
)

// styles bundles the lipgloss styles used by command output. When --no-color
// is set every style degrades to plain text.
type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
}

func newStyles(cmd *cobra.Command) styles {
	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{title: plain, header: plain, label: plain, ok: plain, warn: plain, fail: plain}
	}
	return styles{
		title:  lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// statusStyle picks the style matching an item status.
func (s styles) statusStyle(status domain.Status) lipgloss.Style {
	switch {
	case status.IsDone():
		return s.ok
	case status == domain.StatusBlocked, status == domain.StatusCancelled:
		return s.fail
	case status == domain.StatusInProgress, status == domain.StatusReview:
		return s.warn
	default:
		return s.label
	}
}

// renderItem renders one work item as an indented detail block.
func renderItem(s styles, item *task.WorkItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", s.header.Render(fmt.Sprintf("[%s]", item.ID)), s.title.Render(item.Title))
	fmt.Fprintf(&b, "  %s %s\n", s.label.Render("status:"), s.statusStyle(item.Status).Render(item.Status.String()))
	if item.Priority != "" {
		fmt.Fprintf(&b, "  %s %s\n", s.label.Render("priority:"), string(item.Priority))
	}
	if len(item.Dependencies) > 0 {
		refs := make([]string, 0, len(item.Dependencies))
		for _, dep := range item.Dependencies {
			refs = append(refs, dep.Raw())
		}
		fmt.Fprintf(&b, "  %s %s\n", s.label.Render("dependencies:"), strings.Join(refs, ", "))
	}
	if item.Description != "" {
		fmt.Fprintf(&b, "  %s %s\n", s.label.Render("description:"), item.Description)
	}
	if item.ComplexityScore > 0 {
		fmt.Fprintf(&b, "  %s %.1f/10 (%d subtasks recommended)\n",
			s.label.Render("complexity:"), item.ComplexityScore, item.RecommendedSubtasks)
	}
	if item.ComplexityReasoning != "" {
		fmt.Fprintf(&b, "  %s %s\n", s.label.Render("reasoning:"), item.ComplexityReasoning)
	}
	return b.String()
}
