// Package theme holds the active lipgloss palette. Use swaps every style at
// once so views never cache colours of their own.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"wikigo/internal/platform/prefs"
)

type Palette struct {
	Base    lipgloss.Color
	Mantle  lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Accent  lipgloss.Color
	Link    lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Glamour string
}

var palettes = map[prefs.Theme]Palette{
	prefs.ThemeDark: {
		Base:    "#1e1e2e",
		Mantle:  "#181825",
		Surface: "#45475a",
		Text:    "#cdd6f4",
		Subtext: "#a6adc8",
		Accent:  "#b4befe",
		Link:    "#74c7ec",
		Good:    "#a6e3a1",
		Warn:    "#fab387",
		Glamour: "dark",
	},
	prefs.ThemeLight: {
		Base:    "#eff1f5",
		Mantle:  "#e6e9ef",
		Surface: "#bcc0cc",
		Text:    "#4c4f69",
		Subtext: "#6c6f85",
		Accent:  "#7287fd",
		Link:    "#1e66f5",
		Good:    "#40a02b",
		Warn:    "#fe640b",
		Glamour: "light",
	},
	// classic mimics the encyclopedia's own white page and blue links.
	prefs.ThemeClassic: {
		Base:    "#ffffff",
		Mantle:  "#f8f9fa",
		Surface: "#a2a9b1",
		Text:    "#202122",
		Subtext: "#54595d",
		Accent:  "#202122",
		Link:    "#0645ad",
		Good:    "#14866d",
		Warn:    "#d33",
		Glamour: "notty",
	},
}

var (
	Current Palette
	Name    prefs.Theme

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Link       lipgloss.Style
	Good       lipgloss.Style
	Bar        lipgloss.Style
)

func init() {
	Use(prefs.ThemeLight)
}

// Use activates a palette. Unknown names fall back to light.
func Use(name prefs.Theme) {
	p, ok := palettes[name]
	if !ok {
		name, p = prefs.ThemeLight, palettes[prefs.ThemeLight]
	}
	Name, Current = name, p

	App = lipgloss.NewStyle().Background(p.Base).Foreground(p.Text).Padding(1, 2)
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface).
		Background(p.Mantle).
		Foreground(p.Text).
		Padding(1)
	PaneActive = Pane.BorderForeground(p.Accent)
	Title = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(p.Subtext)
	Hot = lipgloss.NewStyle().Foreground(p.Warn).Bold(true)
	Link = lipgloss.NewStyle().Foreground(p.Link).Underline(true)
	Good = lipgloss.NewStyle().Foreground(p.Good).Bold(true)
	Bar = lipgloss.NewStyle().Background(p.Mantle)
}
