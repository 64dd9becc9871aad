package editor

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	gutterStyle   = lipgloss.NewStyle().Foreground(colorDim).Width(4).Align(lipgloss.Right).MarginRight(1)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	errStyle      = lipgloss.NewStyle().Foreground(colorRed)
	linkStyle     = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	optionStyle   = lipgloss.NewStyle().Foreground(colorGray)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)
