package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/milesj/packager/internal/manifest"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// renderItems renders the catalog as aligned columns: name, type, category,
// then the item's dependencies
func renderItems(items []manifest.Item) string {
	if len(items) == 0 {
		return dimStyle.Render("No items declared") + "\n"
	}

	nameWidth, catWidth := len("NAME"), len("CATEGORY")
	for _, item := range items {
		nameWidth = max(nameWidth, len(item.Name))
		catWidth = max(catWidth, len(item.Category))
	}

	var b strings.Builder
	row := func(name, typ, category, deps string, header bool) {
		cells := []string{
			fmt.Sprintf("%-*s", nameWidth, name),
			fmt.Sprintf("%-4s", typ),
			fmt.Sprintf("%-*s", catWidth, category),
			deps,
		}
		if header {
			for i, c := range cells {
				cells[i] = headerStyle.Render(c)
			}
		} else {
			cells[0] = nameStyle.Render(cells[0])
			cells[1] = typeStyle.Render(cells[1])
			cells[3] = dimStyle.Render(cells[3])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteByte('\n')
	}

	row("NAME", "TYPE", "CATEGORY", "DEPENDENCIES", true)
	for _, item := range items {
		row(item.Name, item.Type, item.Category, dependencies(item), false)
	}
	return b.String()
}

func dependencies(item manifest.Item) string {
	var parts []string
	if len(item.Requires) > 0 {
		parts = append(parts, "requires "+strings.Join(item.Requires, ", "))
	}
	if len(item.Provides) > 0 {
		parts = append(parts, "provides "+strings.Join(item.Provides, ", "))
	}
	return strings.Join(parts, "; ")
}
