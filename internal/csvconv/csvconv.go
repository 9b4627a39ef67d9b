// Package csvconv converts CSV files with a header row into JSON or YAML
// arrays of objects. Column order is preserved in both formats.
package csvconv

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/rcli/internal/ctxutil"
	"github.com/mrz1836/rcli/internal/errors"
	"github.com/mrz1836/rcli/internal/source"
)

// OutputFormat selects the serialization written by Convert.
type OutputFormat string

const (
	// FormatJSON writes a pretty-printed JSON array.
	FormatJSON OutputFormat = "json"
	// FormatYAML writes a YAML sequence of mappings.
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat maps "json" or "yaml" to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatJSON, FormatYAML:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("%w: %q (valid: json, yaml)", errors.ErrUnsupportedFormat, s)
}

// DefaultOutput returns the output path used when none is given.
func DefaultOutput(f OutputFormat) string {
	return "output." + string(f)
}

// Record is one CSV row keyed by header, in column order.
type Record struct {
	Keys   []string
	Values []string
}

// Read parses CSV from r using delimiter. The first row is the header.
// A row whose width differs from the header is ErrCSVInvalid.
func Read(r io.Reader, delimiter rune) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter

	header, err := cr.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", errors.ErrCSVInvalid)
		}
		return nil, errors.Tag(errors.ErrCSVInvalid, err, "reading header")
	}

	var records []Record
	for {
		row, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Tag(errors.ErrCSVInvalid, err, "reading record")
		}
		records = append(records, Record{Keys: header, Values: row})
	}
	return records, nil
}

// Marshal serializes records in format.
func Marshal(records []Record, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(records)
	case FormatYAML:
		return marshalYAML(records)
	}
	return nil, fmt.Errorf("%w: %q", errors.ErrUnsupportedFormat, format)
}

func marshalJSON(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, key := range rec.Keys {
			if j > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			v, err := json.Marshal(rec.Values[j])
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func marshalYAML(records []Record) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, rec := range records {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for j, key := range rec.Keys {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rec.Values[j]},
			)
		}
		seq.Content = append(seq.Content, m)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Convert reads the CSV at input ("-" for stdin) and writes it to output
// in format.
func Convert(ctx context.Context, input, output string, format OutputFormat, delimiter rune) error {
	if err := ctxutil.Canceled(ctx, "csv convert"); err != nil {
		return err
	}

	r, err := source.Open(input)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	records, err := Read(r, delimiter)
	if err != nil {
		return err
	}

	data, err := Marshal(records, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil { //nolint:gosec // Converted output is not sensitive
		return errors.Tag(errors.ErrIO, err, "writing "+output)
	}

	zerolog.Ctx(ctx).Debug().
		Str("input", input).
		Str("output", output).
		Str("format", string(format)).
		Int("records", len(records)).
		Msg("converted csv")
	return nil
}
