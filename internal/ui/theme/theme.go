package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color
	Muted         lipgloss.Color
	Accent        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Table colors
	TableHeader      lipgloss.Color
	TableRowSelected lipgloss.Color

	// Raw record colors
	JSONKey    lipgloss.Color
	JSONString lipgloss.Color

	// chroma style for the highlighted raw record, empty for plain key coloring
	SyntaxStyle string

	// Chart bar colors, cycled per bar
	ChartPalette []lipgloss.Color

	// Brewery type badges; unknown types fall back to Muted
	TypeColors map[string]lipgloss.Color
}

// TypeColor returns the badge color for a brewery type
func (t Theme) TypeColor(breweryType string) lipgloss.Color {
	if c, ok := t.TypeColors[breweryType]; ok {
		return c
	}
	return t.Muted
}

// ChartColor returns the bar color for the i-th bar
func (t Theme) ChartColor(i int) lipgloss.Color {
	if len(t.ChartPalette) == 0 {
		return t.Accent
	}
	if i < 0 {
		i = -i
	}
	return t.ChartPalette[i%len(t.ChartPalette)]
}

// Names lists the available themes
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha", "catppuccin":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}
