package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorAccent = lipgloss.Color("36")  // teal
	colorOK     = lipgloss.Color("35")  // green
	colorWarn   = lipgloss.Color("220") // amber
	colorFail   = lipgloss.Color("167") // soft red
	colorLink   = lipgloss.Color("75")  // light blue
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	styleLink    = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(10)
	styleTableHeader = lipgloss.NewStyle().Foreground(colorLabel).Bold(true).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// A status is the leading icon of a one-line message.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	statusInfo    = status{"›", lipgloss.NewStyle().Foreground(colorLabel)}
)

const iconArrow = "→"

func (s status) print(format string, args ...any) {
	fmt.Println(s.style.Render(s.icon) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { statusSuccess.print(format, args...) }
func printError(format string, args ...any)   { statusError.print(format, args...) }
func printInfo(format string, args ...any)    { statusInfo.print(format, args...) }

func printWarning(format string, args ...any) {
	statusWarning.print("%s", styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile and printURL print an arrow line pointing at an output.
func printFile(path string) { fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path)) }
func printURL(url string)   { fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleLink.Render(url)) }

func printKeyValue(key, value string) {
	fmt.Println("  " + styleLabel.Render(key) + styleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// renderTable formats rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			return styleTableCell
		}).
		Render()
}
