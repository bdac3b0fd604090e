package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-defense/internal/core"
)

// palette holds the ANSI 256 code for each core.Color; index is the color.
var palette = [...]string{
	core.ColorDefault:      "",
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightBlue:   "12",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
	core.ColorDarkGreen:    "22",
	core.ColorBrown:        "130",
	core.ColorDarkRed:      "88",
	core.ColorSteel:        "67",
}

var cellStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for i, code := range palette {
		styles[i] = lipgloss.NewStyle()
		if code != "" {
			styles[i] = styles[i].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen turns the cell buffer into terminal output. Each row is
// emitted as runs of same-colored cells so a color is escaped once per run.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	var out, run strings.Builder
	out.Grow(w*h*2 + h)

	for y := range h {
		if y > 0 {
			out.WriteByte('\n')
		}
		run.Reset()
		color := s.GetCell(0, y).Color
		for x := range w {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				out.WriteString(styleFor(color).Render(run.String()))
				run.Reset()
				color = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			out.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return out.String()
}
