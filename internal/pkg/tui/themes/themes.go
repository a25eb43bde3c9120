package themes

import "github.com/charmbracelet/lipgloss"

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// General UI colors
	Background         lipgloss.Color
	Foreground         lipgloss.Color
	HeaderBg           lipgloss.Color
	HeaderFg           lipgloss.Color
	StatusBarBg        lipgloss.Color
	StatusBarFg        lipgloss.Color
	SelectionBg        lipgloss.Color
	SelectionFg        lipgloss.Color
	BorderColor        lipgloss.Color
	FocusedBorderColor lipgloss.Color

	// Chart colors
	BarColor  lipgloss.Color
	AxisColor lipgloss.Color

	// Emphasis colors
	ErrorColor   lipgloss.Color
	WarningColor lipgloss.Color
	SuccessColor lipgloss.Color
	InfoColor    lipgloss.Color
}

// Solarized color palette
var (
	solarizedBase02 = lipgloss.Color("#073642") // background highlights
	solarizedBase01 = lipgloss.Color("#586e75") // comments / secondary content
	solarizedBase00 = lipgloss.Color("#657b83") // body text (light)
	solarizedBase0  = lipgloss.Color("#839496") // body text (dark)
	solarizedBase1  = lipgloss.Color("#93a1a1") // optional emphasized content
	solarizedBase2  = lipgloss.Color("#eee8d5") // background highlights (light)
	solarizedBase3  = lipgloss.Color("#fdf6e3") // background (light)

	solarizedYellow = lipgloss.Color("#b58900")
	solarizedOrange = lipgloss.Color("#cb4b16")
	solarizedRed    = lipgloss.Color("#dc322f")
	solarizedViolet = lipgloss.Color("#6c71c4")
	solarizedBlue   = lipgloss.Color("#268bd2")
	solarizedCyan   = lipgloss.Color("#2aa198")
	solarizedGreen  = lipgloss.Color("#859900")
)

// Solarized returns the Solarized dark theme (transparent background)
func Solarized() Theme {
	return Theme{
		Name: "Solarized",

		Background:         lipgloss.Color("0"),
		Foreground:         solarizedBase0,
		HeaderBg:           solarizedGreen,
		HeaderFg:           lipgloss.Color("0"),
		StatusBarBg:        solarizedBase02,
		StatusBarFg:        solarizedBase0,
		SelectionBg:        solarizedCyan,
		SelectionFg:        lipgloss.Color("0"),
		BorderColor:        solarizedBase01,
		FocusedBorderColor: solarizedRed,

		BarColor:  solarizedBlue,
		AxisColor: solarizedBase01,

		ErrorColor:   solarizedRed,
		WarningColor: solarizedOrange,
		SuccessColor: solarizedGreen,
		InfoColor:    solarizedBlue,
	}
}

// SolarizedLight returns the Solarized light theme
func SolarizedLight() Theme {
	return Theme{
		Name: "Solarized Light",

		Background:         solarizedBase3,
		Foreground:         solarizedBase00,
		HeaderBg:           solarizedBlue,
		HeaderFg:           solarizedBase3,
		StatusBarBg:        solarizedBase2,
		StatusBarFg:        solarizedBase01,
		SelectionBg:        solarizedViolet,
		SelectionFg:        solarizedBase3,
		BorderColor:        solarizedBase1,
		FocusedBorderColor: solarizedOrange,

		BarColor:  solarizedCyan,
		AxisColor: solarizedBase1,

		ErrorColor:   solarizedRed,
		WarningColor: solarizedYellow,
		SuccessColor: solarizedGreen,
		InfoColor:    solarizedBlue,
	}
}

// GetTheme returns a theme by its config name ("dark", "light")
func GetTheme(name string) Theme {
	switch name {
	case "light", "solarized-light":
		return SolarizedLight()
	default:
		return Solarized()
	}
}

// ConfigName is the inverse of GetTheme
func ConfigName(theme Theme) string {
	if theme.Name == "Solarized Light" {
		return "light"
	}
	return "dark"
}

// Toggle switches between the dark and light variants
func Toggle(theme Theme) Theme {
	if ConfigName(theme) == "light" {
		return Solarized()
	}
	return SolarizedLight()
}
