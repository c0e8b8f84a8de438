package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderCellGrid renders an 8x8 grid of fixed-width cell labels, row 0 at
// the top. The cursor cell gets the cursor style, everything else normal.
func RenderCellGrid(cells [8][8]string, cursorX, cursorY int, normal, cursor lipgloss.Style) string {
	var lines []string
	for row := 0; row < 8; row++ {
		var line strings.Builder
		for col := 0; col < 8; col++ {
			if col > 0 {
				line.WriteString(" ")
			}
			cell := fmt.Sprintf("%-3s", cells[row][col])
			if row == cursorY && col == cursorX {
				line.WriteString(cursor.Render(cell))
			} else {
				line.WriteString(normal.Render(cell))
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
