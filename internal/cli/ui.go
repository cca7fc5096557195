package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// stdout receives all printed output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleNumber    = StyleHighlight
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = StyleHighlight
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// status line prefixes
var (
	markSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	markWarning = lipgloss.NewStyle().Foreground(colorYellow).Render("!")
	markInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
)

func printStatus(mark, msg string) {
	fmt.Fprintf(stdout, "%s %s\n", mark, msg)
}

func printSuccess(format string, args ...any) {
	printStatus(markSuccess, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line below a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintf(stdout, "  %s\n", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a file the command wrote.
func printFile(path string) {
	fmt.Fprintf(stdout, "  %s %s\n", StyleDim.Render("→"), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintf(stdout, "%s %s\n", styleLabel.Render(key), StyleValue.Render(value))
}

// printStats prints a one-line summary of the election. The cache state is
// shown only when cached is non-nil, i.e. for materialized order sets.
func printStats(ballots, candidates int, orderSet string, cached *bool) {
	var parts []string
	if ballots > 0 {
		parts = append(parts, fmt.Sprintf("%d ballots", ballots))
	}
	if candidates > 0 {
		parts = append(parts, fmt.Sprintf("%d candidates", candidates))
	}
	if orderSet != "" {
		parts = append(parts, orderSet)
	}
	if cached != nil {
		if *cached {
			parts = append(parts, "cached")
		} else {
			parts = append(parts, "fresh")
		}
	}
	fmt.Fprintf(stdout, "  %s\n", StyleDim.Render(strings.Join(parts, " · ")))
}

// printTable prints rows under a header in a rounded table. Cells for which
// highlight returns true are rendered bold green.
func printTable(header []string, rows [][]string, highlight func(row, col int) bool) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case highlight != nil && highlight(row, col):
				return cell.Foreground(colorGreen).Bold(true)
			}
			return cell.Foreground(colorWhite)
		})
	fmt.Fprintln(stdout, t.Render())
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintf(stdout, "%s %s\n", StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
