package components

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rebeliceyang/lazybrew/internal/models"
	"github.com/rebeliceyang/lazybrew/internal/ui/theme"
)

// ZoneChartTabPrefix prefixes the clickable chart tab zones
const ZoneChartTabPrefix = "chart-tab-"

// topStatesLimit is how many states the state chart shows
const topStatesLimit = 10

// ChartTab selects which distribution is drawn
type ChartTab int

const (
	TypeChart ChartTab = iota
	StateChart
)

var chartTabs = []struct {
	tab   ChartTab
	label string
}{
	{TypeChart, "Types"},
	{StateChart, "Top States"},
}

// ChartBar is one bar of a distribution
type ChartBar struct {
	Label   string
	Count   int
	Percent float64
}

// TypeDistribution counts records per brewery type, largest first
func TypeDistribution(breweries []models.Brewery) []ChartBar {
	return distribution(breweries, func(b models.Brewery) string {
		return string(b.BreweryType)
	}, 0)
}

// TopStates counts records per state, largest first, keeping at most limit
// bars
func TopStates(breweries []models.Brewery, limit int) []ChartBar {
	return distribution(breweries, func(b models.Brewery) string {
		return b.Region()
	}, limit)
}

func distribution(breweries []models.Brewery, label func(models.Brewery) string, limit int) []ChartBar {
	counts := make(map[string]int)
	total := 0
	for _, b := range breweries {
		l := label(b)
		if l == "" {
			continue
		}
		counts[l]++
		total++
	}

	bars := make([]ChartBar, 0, len(counts))
	for l, n := range counts {
		bars = append(bars, ChartBar{
			Label:   l,
			Count:   n,
			Percent: float64(n) * 100 / float64(total),
		})
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Count != bars[j].Count {
			return bars[i].Count > bars[j].Count
		}
		return bars[i].Label < bars[j].Label
	})

	if limit > 0 && len(bars) > limit {
		bars = bars[:limit]
	}
	return bars
}

// Charts draws horizontal bar charts of the rendered result set
type Charts struct {
	Theme     theme.Theme
	Width     int
	activeTab ChartTab
	breweries []models.Brewery
}

// NewCharts creates the chart widget
func NewCharts(th theme.Theme) *Charts {
	return &Charts{Theme: th}
}

// SetData replaces the charted records
func (c *Charts) SetData(breweries []models.Brewery) {
	c.breweries = breweries
}

// ActiveTab returns the selected chart
func (c *Charts) ActiveTab() ChartTab {
	return c.activeTab
}

// SwitchTab selects a chart
func (c *Charts) SwitchTab(tab ChartTab) {
	if tab >= TypeChart && tab <= StateChart {
		c.activeTab = tab
	}
}

// NextTab cycles the selected chart
func (c *Charts) NextTab(delta int) {
	n := len(chartTabs)
	c.activeTab = ChartTab((int(c.activeTab) + delta%n + n) % n)
}

// HandleMouseClick handles mouse click events on the tab bar
// Returns (handled, tab)
func (c *Charts) HandleMouseClick(msg tea.MouseMsg) (bool, ChartTab) {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false, c.activeTab
	}

	for _, t := range chartTabs {
		if zone.Get(fmt.Sprintf("%s%d", ZoneChartTabPrefix, t.tab)).InBounds(msg) {
			c.SwitchTab(t.tab)
			return true, t.tab
		}
	}
	return false, c.activeTab
}

// Bars returns the bars of the active chart
func (c *Charts) Bars() []ChartBar {
	if c.activeTab == StateChart {
		return TopStates(c.breweries, topStatesLimit)
	}
	return TypeDistribution(c.breweries)
}

// View renders the tab bar and the active chart
func (c *Charts) View() string {
	lines := []string{c.renderTabs(), ""}

	bars := c.Bars()
	if len(bars) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(c.Theme.Muted).Italic(true).Render("No data to chart"))
		return strings.Join(lines, "\n")
	}

	labelWidth := 0
	for _, b := range bars {
		labelWidth = max(labelWidth, runewidth.StringWidth(b.Label))
	}
	labelWidth = min(labelWidth, 14)

	// label, space, bar, space, "123 (45.6%)"
	barWidth := c.Width - labelWidth - 14
	if barWidth < 4 {
		barWidth = 4
	}

	maxCount := bars[0].Count
	for i, b := range bars {
		n := b.Count * barWidth / maxCount
		if n == 0 {
			n = 1
		}

		color := c.Theme.ChartColor(i)
		if c.activeTab == TypeChart {
			color = c.Theme.TypeColor(b.Label)
		}

		label := pad(b.Label, labelWidth)
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n))
		value := lipgloss.NewStyle().Foreground(c.Theme.Muted).Render(fmt.Sprintf(" %d (%.1f%%)", b.Count, b.Percent))
		lines = append(lines, label+" "+bar+value)
	}

	return strings.Join(lines, "\n")
}

func (c *Charts) renderTabs() string {
	var parts []string
	for i, t := range chartTabs {
		var tabContent string
		if t.tab == c.activeTab {
			indicator := lipgloss.NewStyle().Foreground(c.Theme.Accent).Bold(true).Render("▌")
			tabContent = indicator + lipgloss.NewStyle().
				Bold(true).
				Foreground(c.Theme.Foreground).
				Background(c.Theme.Selection).
				Padding(0, 1).
				Render(t.label)
		} else {
			tabContent = lipgloss.NewStyle().
				Foreground(c.Theme.Muted).
				Padding(0, 1).
				Render(t.label)
		}

		parts = append(parts, zone.Mark(fmt.Sprintf("%s%d", ZoneChartTabPrefix, t.tab), tabContent))

		if i < len(chartTabs)-1 {
			parts = append(parts, lipgloss.NewStyle().Foreground(c.Theme.Border).Render(" │ "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
