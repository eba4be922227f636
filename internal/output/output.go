// Package output provides styled terminal output for the FastMVP CLI.
//
// Functions use lipgloss for styling but abstract away the details from
// callers.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Verbose reports whether verbose mode is enabled.
func Verbose() bool {
	return verboseMode
}

// Success prints a success message in bold green.
//
// Example:
//
//	output.Success("Created demo-api.zip")
func Success(msg string) {
	fmt.Println(successStyle.Render("🚀 " + msg))
}

// Error prints an error message in bold red.
func Error(msg string) {
	fmt.Println(errorStyle.Render("✗ " + msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	fmt.Println(infoStyle.Render("→ " + msg))
}

// Step prints an indented step message in gray. Use this for actionable
// next steps or sub-items.
//
// Example:
//
//	output.Step("unzip demo-api.zip")
//	output.Step("npm install")
func Step(msg string) {
	fmt.Println(stepStyle.Render("   " + msg))
}

// Debug prints a message only when verbose mode is enabled.
func Debug(msg string) {
	if verboseMode {
		fmt.Println(stepStyle.Render("· " + msg))
	}
}
