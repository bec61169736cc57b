// Package ui is the user facing output of deploy scripts and commands.
package ui

import (
	"io"
)

// UI prints progress lines such as "Funding contract..." and asks the few
// questions a command needs. TerminalUI is the real one, RecordingUI
// captures calls in tests.
type UI interface {
	Info(format string, args ...any)
	// Success is green.
	Success(format string, args ...any)
	// Warn is yellow and never stops anything, e.g. a failed verification.
	Warn(format string, args ...any)
	Error(format string, args ...any)
	// Critical is bold: contract addresses, tx hashes.
	Critical(format string, args ...any)

	KeyValue(rows [][2]string)
	Table(headers []string, rows [][]string)

	// Spinner shows msg until the returned func is called. Outside a
	// terminal msg is printed once.
	Spinner(msg string) func()

	// Ask reads a line, asking again until validate accepts it.
	Ask(validate func(string) error) string
	Confirm(prompt string, defaultYes bool) bool

	// Indent returns a UI one level deeper on the same streams.
	Indent() UI
	// Writer prefixes every line written to it with the indentation.
	Writer() io.Writer
}
