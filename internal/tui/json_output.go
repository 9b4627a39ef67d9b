package tui

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"unicode/utf8"
)

// JSONOutput writes one JSON document per call, for scripts and pipelines.
type JSONOutput struct {
	enc *json.Encoder
}

// NewJSONOutput returns a JSONOutput writing to w.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{enc: json.NewEncoder(w)}
}

// record is the shape of every status, value and error document.
type record struct {
	Type       string `json:"type"`
	Message    string `json:"message,omitempty"`
	Value      string `json:"value,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Context    string `json:"context,omitempty"`
}

// emit ignores encoder errors: the Output methods have no error return.
func (o *JSONOutput) emit(v any) {
	_ = o.enc.Encode(v) //nolint:errchkjson // see emit
}

// Success writes {"type":"success","message":msg}.
func (o *JSONOutput) Success(msg string) { o.emit(record{Type: "success", Message: msg}) }

// Warning writes {"type":"warning","message":msg}.
func (o *JSONOutput) Warning(msg string) { o.emit(record{Type: "warning", Message: msg}) }

// Info writes {"type":"info","message":msg}.
func (o *JSONOutput) Info(msg string) { o.emit(record{Type: "info", Message: msg}) }

// Value writes {"type":"value","value":v}. JSON strings cannot carry
// arbitrary bytes, so v that is not valid UTF-8 (binary plaintext or decoded
// base64) is written as standard base64 with "encoding":"base64".
func (o *JSONOutput) Value(v string) {
	if !utf8.ValidString(v) {
		o.emit(record{Type: "value", Value: base64.StdEncoding.EncodeToString([]byte(v)), Encoding: "base64"})
		return
	}
	o.emit(record{Type: "value", Value: v})
}

// Error writes an error record. The wrapped cause goes in details, and an
// ActionableError contributes its friendly message, suggestion and context.
func (o *JSONOutput) Error(err error) {
	r := record{Type: "error", Message: err.Error()}

	var ae *ActionableError
	if errors.As(err, &ae) {
		r.Message, r.Suggestion, r.Context = ae.Message, ae.Suggestion, ae.Context
	}
	if cause := errors.Unwrap(err); cause != nil {
		r.Details = cause.Error()
	}
	o.emit(r)
}

// Table writes the rows as an array of objects keyed by header. Missing
// cells become empty strings.
func (o *JSONOutput) Table(headers []string, rows [][]string) {
	objs := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		if len(headers) == 0 {
			break
		}
		obj := make(map[string]string, len(headers))
		for i, h := range headers {
			obj[h] = ""
			if i < len(row) {
				obj[h] = row[i]
			}
		}
		objs = append(objs, obj)
	}
	o.emit(objs)
}

// JSON writes v as a single JSON document.
func (o *JSONOutput) JSON(v any) error {
	return o.enc.Encode(v)
}
