package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the menu chrome.
type Styles struct {
	Bar          *lipgloss.Style
	BarSelected  *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	Border       *lipgloss.Style
	Feedback     *lipgloss.Style
	ErrorBanner  *lipgloss.Style
	PausePrompt  *lipgloss.Style
	Capture      *lipgloss.Style
	ArgPrompt    *lipgloss.Style
}

var defaultStyles = Styles{
	Bar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	),
	BarSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true).Reverse(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Background(lipgloss.Color("12")).Foreground(lipgloss.Color("0")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("4")).Reverse(true),
	),
	Border: ptr(
		lipgloss.NewStyle().Background(lipgloss.Color("12")).Foreground(lipgloss.Color("0")),
	),
	Feedback: ptr(
		lipgloss.NewStyle().Bold(true),
	),
	ErrorBanner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	PausePrompt: ptr(
		lipgloss.NewStyle().Background(lipgloss.Color("6")),
	),
	Capture: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	),
	ArgPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
