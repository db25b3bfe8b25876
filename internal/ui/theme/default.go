package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("214"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),
		Muted:         lipgloss.Color("244"),
		Accent:        lipgloss.Color("214"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Table colors
		TableHeader:      lipgloss.Color("214"),
		TableRowSelected: lipgloss.Color("237"),

		// Raw record colors
		JSONKey:     lipgloss.Color("117"),
		JSONString:  lipgloss.Color("180"),
		SyntaxStyle: "monokai",

		ChartPalette: []lipgloss.Color{"214", "75", "42", "170", "220", "117", "203", "150"},

		TypeColors: map[string]lipgloss.Color{
			"micro":      lipgloss.Color("214"),
			"nano":       lipgloss.Color("220"),
			"regional":   lipgloss.Color("75"),
			"brewpub":    lipgloss.Color("42"),
			"large":      lipgloss.Color("33"),
			"planning":   lipgloss.Color("244"),
			"bar":        lipgloss.Color("170"),
			"contract":   lipgloss.Color("117"),
			"proprietor": lipgloss.Color("180"),
			"closed":     lipgloss.Color("196"),
			"taproom":    lipgloss.Color("150"),
			"beergarden": lipgloss.Color("112"),
		},
	}
}
