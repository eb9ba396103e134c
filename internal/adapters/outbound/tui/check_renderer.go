package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderCheck renders the outcome of a single validation. message explains a
// failure and is ignored when ok is true.
func RenderCheck(subject, value string, ok bool, message string) string {
	var b strings.Builder

	icon := passStyle.Render("●")
	verdict := passStyle.Render("valid")
	if !ok {
		icon = failStyle.Render("●")
		verdict = failStyle.Render("invalid")
	}
	fmt.Fprintf(&b, "  %s %s %s  %s\n", icon, sectionHeaderStyle.Render(subject), titleStyle.Render(value), verdict)
	if !ok && message != "" {
		fmt.Fprintf(&b, "    %s\n", dimStyle.Render(message))
	}
	return b.String()
}

// RenderConverter renders the located converter jar.
func RenderConverter(searchRoot, jar string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", sectionHeaderStyle.Render("wsdl2rest"), fileStyle.Render(jar))
	fmt.Fprintf(&b, "  %s\n", hintStyle.Render("searched "+searchRoot))
	return b.String()
}
