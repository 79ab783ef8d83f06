package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "⚠"
	SymbolUp      = "●" // interface is up
	SymbolDown    = "○" // interface is down or unknown
)
