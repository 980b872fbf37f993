package ui

// Unicode symbols for status indicators.
const (
	SymbolOnline  = "✓" // Host reachable, mandatory metrics collected
	SymbolOffline = "✗" // Host unreachable or a mandatory metric failed
	SymbolWarning = "!" // Host online but with a GPU-stage error
)
