package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry is one recorded UI call.
type Entry struct {
	Method string
	Value  string
}

// sharedState is shared by a RecordingUI and every child made by Indent so
// scripted inputs are consumed in order across nesting levels.
type sharedState struct {
	entries []Entry
	inputs  []string
	nextIdx int
	buf     *bytes.Buffer
}

// RecordingUI implements UI for tests. Output is captured as entries and
// Ask/Confirm are answered from the scripted inputs; running out of inputs
// panics so a wrong test script fails loudly.
type RecordingUI struct {
	shared      *sharedState
	indentLevel int
}

func NewRecordingUI(scriptedInputs ...string) *RecordingUI {
	return &RecordingUI{
		shared: &sharedState{
			inputs: scriptedInputs,
			buf:    &bytes.Buffer{},
		},
	}
}

func (r *RecordingUI) record(method, value string) {
	r.shared.entries = append(r.shared.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) nextInput(caller string) string {
	if r.shared.nextIdx >= len(r.shared.inputs) {
		panic(fmt.Sprintf(
			"RecordingUI: no scripted input left for %s (consumed %d so far)",
			caller, r.shared.nextIdx,
		))
	}
	input := r.shared.inputs[r.shared.nextIdx]
	r.shared.nextIdx++
	return input
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

// Table records one entry per row with the cells joined by " | ".
func (r *RecordingUI) Table(headers []string, rows [][]string) {
	if len(headers) > 0 {
		r.record("TableHeader", strings.Join(headers, " | "))
	}
	for _, row := range rows {
		r.record("TableRow", strings.Join(row, " | "))
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

// Ask returns the next scripted input. Input failing validate panics: there
// is nobody to correct it.
func (r *RecordingUI) Ask(validate func(string) error) string {
	input := r.nextInput("Ask")
	r.record("Ask", input)
	if validate != nil {
		if err := validate(input); err != nil {
			panic(fmt.Sprintf(
				"RecordingUI: scripted input %q failed validation in Ask: %s",
				input, err,
			))
		}
	}
	return input
}

// Confirm maps "y"/"yes" to true, "n"/"no" to false and "" to defaultYes.
func (r *RecordingUI) Confirm(prompt string, defaultYes bool) bool {
	r.record("Confirm", prompt)
	input := strings.ToLower(strings.TrimSpace(r.nextInput("Confirm")))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{
		shared:      r.shared,
		indentLevel: r.indentLevel + 1,
	}
}

func (r *RecordingUI) Writer() io.Writer {
	return r.shared.buf
}

// Entries returns all recorded calls in order.
func (r *RecordingUI) Entries() []Entry {
	return r.shared.entries
}

func (r *RecordingUI) InfoMessages() []string {
	return r.methodValues("Info")
}

func (r *RecordingUI) WarnMessages() []string {
	return r.methodValues("Warn")
}

func (r *RecordingUI) ErrorMessages() []string {
	return r.methodValues("Error")
}

func (r *RecordingUI) CriticalMessages() []string {
	return r.methodValues("Critical")
}

// HasMessage reports whether any entry contains substr, ignoring case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.shared.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output returns everything written to Writer.
func (r *RecordingUI) Output() string {
	return r.shared.buf.String()
}

func (r *RecordingUI) methodValues(method string) []string {
	var out []string
	for _, e := range r.shared.entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}
