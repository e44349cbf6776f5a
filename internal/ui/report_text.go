package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/getlawrence/brkset/internal/traversal"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RenderReport returns a formatted summary of a breakpoint run. With detailed
// set every inserted breakpoint is listed.
func RenderReport(report *traversal.Report, detailed bool) string {
	if report == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render("🔴 Breakpoint Run Results"))
	b.WriteString(strings.Repeat("=", 25))
	b.WriteString("\n\n")

	summary := []string{
		fmt.Sprintf("🆔 Run: %s", report.RunID),
		fmt.Sprintf("📂 Projects: %s", strings.Join(report.Projects, ", ")),
		fmt.Sprintf("🔧 Functions Visited: %d", report.Functions),
		okStyle.Render(fmt.Sprintf("✅ Breakpoints Inserted: %d", report.Inserted)),
		fmt.Sprintf("⏳ Busy Retries: %d", report.Retries),
		fmt.Sprintf("⏱️  Duration: %s", report.Duration.Round(time.Millisecond)),
	}
	if report.Skipped > 0 {
		summary = append(summary, warnStyle.Render(fmt.Sprintf("⚠️  Skipped: %d", report.Skipped)))
	}
	if report.Exhausted > 0 {
		summary = append(summary, failStyle.Render(fmt.Sprintf("❌ Retries Exhausted: %d", report.Exhausted)))
	}
	b.WriteString(strings.Join(summary, "\n"))
	b.WriteString("\n\n")

	if len(report.NotFound) > 0 {
		b.WriteString("🔍 Projects Not Found:\n")
		b.WriteString(strings.Repeat("-", 22))
		b.WriteString("\n")
		for _, name := range report.NotFound {
			fmt.Fprintf(&b, "  • %s\n", name)
		}
		b.WriteString("\n")
	}

	if len(report.Problems) > 0 {
		b.WriteString("⚠️  Problems:\n")
		b.WriteString(strings.Repeat("-", 13))
		b.WriteString("\n")
		for _, p := range report.Problems {
			style := warnStyle
			if p.Status == traversal.StatusRetryExhausted {
				style = failStyle
			}
			fmt.Fprintf(&b, "  • %s %s\n", style.Render(string(p.Status)), p.Path)
			if p.Reason != "" {
				fmt.Fprintf(&b, "    %s %s (%s)\n", "📖", p.Reason, p.Scope)
			}
		}
		b.WriteString("\n")
	}

	if detailed && len(report.Breakpoints) > 0 {
		b.WriteString("📍 Breakpoints:\n")
		b.WriteString(strings.Repeat("-", 15))
		b.WriteString("\n")
		for _, bp := range report.Breakpoints {
			fmt.Fprintf(&b, "  • %s:%d\n", bp.File, bp.Line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderTree draws the project hierarchy of a solution
func RenderTree(nodes []traversal.TreeNode) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("📚 Projects"))
	b.WriteString("\n")
	renderNodes(&b, nodes, "")
	return b.String()
}

func renderNodes(b *strings.Builder, nodes []traversal.TreeNode, prefix string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		fmt.Fprintf(b, "%s%s%s\n", prefix, branch, n.Name)
		renderNodes(b, n.Children, prefix+next)
	}
}
