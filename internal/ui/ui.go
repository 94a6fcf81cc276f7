// Package ui renders organization plans for terminal review and reads
// the confirmation answer before anything moves.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
	"github.com/felixgeelhaar/shotsort/internal/executor"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sessionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))
)

// RenderPlan produces the full review listing: one block per session
// with its members, then the uncategorized tail.
func RenderPlan(plan *catalog.Plan) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Organization Plan"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s  (%d screenshots, %d sessions)",
		plan.Root, plan.TotalRecords(), len(plan.Sessions))))
	b.WriteString("\n\n")

	for _, s := range plan.Sessions {
		b.WriteString(sessionStyle.Render(fmt.Sprintf("%s/", s.Name)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d screenshots", s.Count())))
		b.WriteString("\n")
		for _, r := range s.Records {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
				dimStyle.Render(r.TimeString()),
				r.DisplayName(),
				dimStyle.Render(fmtSize(r.Size))))
		}
		b.WriteString("\n")
	}

	if len(plan.Uncategorized) > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%s/", executor.UncategorizedFolder)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d screenshots without a session", len(plan.Uncategorized))))
		b.WriteString("\n")
		for _, r := range plan.Uncategorized {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				dimStyle.Render(r.TimeString()),
				r.DisplayName()))
		}
		b.WriteString("\n")
	}

	if len(plan.Sessions) == 0 && len(plan.Uncategorized) == 0 {
		b.WriteString(dimStyle.Render("Nothing to organize."))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderResult summarizes an execution run, including any per-file
// failures.
func RenderResult(res *executor.Result, dryRun bool) string {
	var b strings.Builder

	if dryRun {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Dry run: %d moves planned, nothing touched.", len(res.Planned))))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(sessionStyle.Render(fmt.Sprintf("Moved %d of %d screenshots.", res.Moved, len(res.Planned))))
	b.WriteString("\n")
	for _, e := range res.Errors {
		b.WriteString(warnStyle.Render("  " + e.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// Confirm prints a y/N prompt and reads a single answer line. Anything
// other than y or yes declines, including EOF.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func fmtSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
