package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorAccent  = lipgloss.Color("#FF5722")
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	SplashTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Padding(1, 4).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent)

	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LabelActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	ImageStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray).
				Italic(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ToastStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorRed).
			Padding(0, 2)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)
)
