package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/camelgen/camelgen/internal/domain"
)

// ── Camel-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	infoStyle     = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderScaffold renders a completed scaffold run.
func RenderScaffold(result *domain.ScaffoldResult) string {
	var b strings.Builder
	req := result.Request

	// ── Header ──
	title := headerStyle.Render(req.Title())
	subtitle := dimStyle.Render(fmt.Sprintf("%s  ·  Camel %s  ·  %s DSL", req.Package, req.CamelVersion, req.DSL))
	status := passStyle.Bold(true).Render("project created")
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + status))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render("Destination"), fileStyle.Render(req.Destination))

	renderList(&b, "Files", result.Files, passStyle.Render("+"))
	renderList(&b, "Generated sources", result.GeneratedSources, infoStyle.Render("~"))

	if result.ConverterJar != "" {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render("Converter"), fileStyle.Render(shortenPath(result.ConverterJar)))
	}

	if m := result.Merge; m != nil {
		renderList(&b, "Merged properties", m.Properties, passStyle.Render("+"))
		renderList(&b, "Merged dependencies", m.Dependencies, passStyle.Render("+"))
		renderList(&b, "Merged plugins", m.Plugins, passStyle.Render("+"))
		renderList(&b, "Already present", m.Skipped, dimStyle.Render("="))
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	if result.CommitHash != "" {
		fmt.Fprintf(&b, "  %s %s\n", titleStyle.Render("Git commit"), warnStyle.Render(shortHash(result.CommitHash)))
	}
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render("Next: cd "+req.Destination+" && mvn clean install"))

	return b.String()
}

func renderList(b *strings.Builder, title string, items []string, bullet string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "  %s %s\n", titleStyle.Render(title), dimStyle.Render(fmt.Sprintf("(%d)", len(items))))
	for _, item := range items {
		fmt.Fprintf(b, "    %s %s\n", bullet, fileStyle.Render(item))
	}
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func shortenPath(p string) string {
	parts := strings.Split(p, "/")
	if len(parts) > 4 {
		return ".../" + strings.Join(parts[len(parts)-3:], "/")
	}
	return p
}
