// Package output provides terminal output formatting utilities for the commitwit CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintWarning prints a yellow "warning:" line.
func PrintWarning(out io.Writer, format string, args ...any) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("warning:"), fmt.Sprintf(format, args...))
}

// PrintInfo prints a cyan arrow followed by the message.
func PrintInfo(out io.Writer, format string, args ...any) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan("→"), fmt.Sprintf(format, args...))
}

// PrintSuccess prints a green checkmark and the message, with the path
// argument highlighted when given.
func PrintSuccess(out io.Writer, message string, path ...string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	line := green("✓") + " " + message
	if len(path) > 0 && path[0] != "" {
		line += " " + cyan(path[0])
	}
	fmt.Fprintln(out, line)
}

// PrintViolations prints a lint report header, indented, in red.
func PrintViolations(out io.Writer, report string) {
	red := color.New(color.FgRed).SprintFunc()
	for _, line := range strings.Split(strings.TrimRight(report, "\n"), "\n") {
		fmt.Fprintln(out, red(line))
	}
}

// PrintRule prints a dim horizontal rule with a centered label, sized to
// the terminal.
func PrintRule(out io.Writer, label string) {
	dim := color.New(color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (GetTerminalWidth() - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", dim(line), dim(label), dim(line))
}
