// Package tui renders command results for a terminal or as JSON.
//
// Commands write through the Output interface and never check the output
// format themselves; NewOutput picks the renderer once per invocation.
package tui

import "io"

// Output is the sink every command writes its results to.
type Output interface {
	Success(msg string)
	Error(err error)
	Warning(msg string)
	Info(msg string)
	// Value prints a primary result such as a signature or ciphertext. JSON
	// output base64-encodes values that are not valid UTF-8.
	Value(v string)
	Table(headers []string, rows [][]string)
	JSON(v any) error
}

// FormatJSON selects the JSON renderer in NewOutput.
const FormatJSON = "json"

// NewOutput returns a JSONOutput for FormatJSON and a TTYOutput for anything else.
func NewOutput(w io.Writer, format string) Output {
	if format == FormatJSON {
		return NewJSONOutput(w)
	}
	return NewTTYOutput(w)
}
