// Package ui holds the terminal widgets used outside the dashboard: colors
// and symbols for CLI output, the interfaces table and the interactive
// pickers.
package ui
