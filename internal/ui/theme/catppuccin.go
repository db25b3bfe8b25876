package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMochaTheme returns the Catppuccin Mocha theme
// A soothing pastel theme for cozy TUIs
// Based on: https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",

		// Background colors
		Background: lipgloss.Color("#1e1e2e"), // Base
		Foreground: lipgloss.Color("#cdd6f4"), // Text

		// UI elements
		Border:        lipgloss.Color("#45475a"), // Surface1
		BorderFocused: lipgloss.Color("#89b4fa"), // Blue
		Selection:     lipgloss.Color("#313244"), // Surface0
		Cursor:        lipgloss.Color("#f5e0dc"), // Rosewater
		Muted:         lipgloss.Color("#6c7086"), // Overlay0
		Accent:        lipgloss.Color("#fab387"), // Peach

		// Status colors
		Success: lipgloss.Color("#a6e3a1"), // Green
		Warning: lipgloss.Color("#f9e2af"), // Yellow
		Error:   lipgloss.Color("#f38ba8"), // Red
		Info:    lipgloss.Color("#89dceb"), // Sky

		// Table colors
		TableHeader:      lipgloss.Color("#fab387"), // Peach
		TableRowSelected: lipgloss.Color("#313244"), // Surface0

		// Raw record colors
		JSONKey:     lipgloss.Color("#89b4fa"), // Blue
		JSONString:  lipgloss.Color("#a6e3a1"), // Green
		SyntaxStyle: "catppuccin-mocha",

		ChartPalette: []lipgloss.Color{
			"#fab387", // Peach
			"#89b4fa", // Blue
			"#a6e3a1", // Green
			"#cba6f7", // Mauve
			"#f9e2af", // Yellow
			"#94e2d5", // Teal
			"#f38ba8", // Red
			"#74c7ec", // Sapphire
		},

		// Brewery type badges
		TypeColors: map[string]lipgloss.Color{
			"micro":      lipgloss.Color("#fab387"), // Peach
			"nano":       lipgloss.Color("#f9e2af"), // Yellow
			"regional":   lipgloss.Color("#89b4fa"), // Blue
			"brewpub":    lipgloss.Color("#a6e3a1"), // Green
			"large":      lipgloss.Color("#74c7ec"), // Sapphire
			"planning":   lipgloss.Color("#6c7086"), // Overlay0
			"bar":        lipgloss.Color("#cba6f7"), // Mauve
			"contract":   lipgloss.Color("#89dceb"), // Sky
			"proprietor": lipgloss.Color("#f2cdcd"), // Flamingo
			"closed":     lipgloss.Color("#f38ba8"), // Red
			"taproom":    lipgloss.Color("#94e2d5"), // Teal
			"beergarden": lipgloss.Color("#b4befe"), // Lavender
		},
	}
}
