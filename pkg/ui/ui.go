// Package ui holds terminal styles shared by the prepush commands.
package ui

import (
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
)

// GetFangScheme returns the same light/dark-aware color scheme fang uses.
func GetFangScheme() fang.ColorScheme {
	// This mirrors fang.mustColorscheme(DefaultColorScheme)
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
	return fang.DefaultColorScheme(lipgloss.LightDark(isDark))
}

// UI layout constants.
const (
	defaultMargin  = 2
	defaultPadding = 2
)

// GetBlockStyles generates reusable styles for titles and code block elements.
// Returns two lipgloss.Style objects: one for titles and one for blocks.
func GetBlockStyles() (lipgloss.Style, lipgloss.Style) {
	colorScheme := GetFangScheme()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorScheme.QuotedString).
		Transform(strings.ToUpper).
		Padding(1, 0).
		Margin(0, defaultMargin)

	blockStyle := lipgloss.NewStyle().
		Background(colorScheme.Codeblock).
		Foreground(colorScheme.Base).
		MarginLeft(defaultMargin).
		Padding(1, defaultPadding)
	return titleStyle, blockStyle
}

// StatusStyles holds the styles for one-line command results.
type StatusStyles struct {
	OK   lipgloss.Style
	Skip lipgloss.Style
	Fail lipgloss.Style
}

// GetStatusStyles returns status line styles from the fang color scheme.
func GetStatusStyles() StatusStyles {
	colorScheme := GetFangScheme()

	return StatusStyles{
		OK:   lipgloss.NewStyle().Bold(true).Foreground(colorScheme.QuotedString),
		Skip: lipgloss.NewStyle().Foreground(colorScheme.Comment),
		Fail: lipgloss.NewStyle().Bold(true).Foreground(colorScheme.ErrorDetails),
	}
}
