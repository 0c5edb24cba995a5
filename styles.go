package main

import (
	"github.com/charmbracelet/lipgloss"

	"qbloch/internal/edit"
)

// Layout constants
const (
	fieldW       = 16 // width of one matrix or state input
	infoPanelW   = 44 // width of the right-hand panel
	chartH       = 5  // rows of the component chart
	controlsH    = 4  // rows of the help bar, borders excluded
	sphereFront  = "#c0caf5"
	sphereBack   = "#414868"
	elevationInc = 5.0
	azimuthInc   = 10.0
)

// Lipgloss styles used across the TUI.
var (
	spherePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7aa2f7")).
				Padding(0, 1)

	fieldsPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#bb9af7")).
				Padding(0, 1)

	infoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e0af68")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9ece6a")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	menuBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff9e64")).
			Padding(0, 1)

	menuSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ff9e64"))

	menuNormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))
)

// Field text colours by validation result.
var (
	fieldValidStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	fieldInvalidStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000"))
	fieldCorrectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#add8e6"))
)

// fieldStyle returns the text style for a field group after a submit.
// Untouched keeps whatever the group showed before.
func fieldStyle(st edit.Status, prev lipgloss.Style) lipgloss.Style {
	switch st {
	case edit.Valid:
		return fieldValidStyle
	case edit.Invalid:
		return fieldInvalidStyle
	case edit.Corrected:
		return fieldCorrectedStyle
	default:
		return prev
	}
}
