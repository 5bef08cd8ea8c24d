package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")
	colorSecondary = lipgloss.Color("241")
	colorHighlight = lipgloss.Color("212")
	colorSuccess   = lipgloss.Color("78")
	colorAlert     = lipgloss.Color("203")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight)
	taglineStyle = lipgloss.NewStyle().Foreground(colorSecondary).Italic(true)

	tabStyle       = lipgloss.NewStyle().Foreground(colorSecondary).Padding(0, 2)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).
			Background(colorPrimary).Padding(0, 2)

	labelStyle        = lipgloss.NewStyle().Foreground(colorSecondary).Width(28)
	focusedLabelStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true).Width(28)

	cardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSecondary).Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(colorHighlight)

	toastStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	busyStyle  = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	modalStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAlert).Padding(1, 2)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
