// Package codec implements the text boundary encoding used by rcli.
//
// Binary values leaving the process (signatures, ciphertexts) are base64url
// encoded without padding. Text coming back in is trimmed before decoding.
package codec

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mrz1836/rcli/internal/errors"
)

// Format selects a base64 alphabet for the base64 subcommand.
type Format int

const (
	// FormatStandard is RFC 4648 standard base64 with padding.
	FormatStandard Format = iota
	// FormatURLSafe is base64url without padding.
	FormatURLSafe
)

// String returns the flag value for the format.
func (f Format) String() string {
	switch f {
	case FormatStandard:
		return "standard"
	case FormatURLSafe:
		return "urlsafe"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses "standard" or "urlsafe".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "standard":
		return FormatStandard, nil
	case "urlsafe":
		return FormatURLSafe, nil
	}
	return 0, fmt.Errorf("%w: %q (valid: standard, urlsafe)", errors.ErrUnsupportedFormat, s)
}

func (f Format) encoding() *base64.Encoding {
	if f == FormatURLSafe {
		return base64.RawURLEncoding
	}
	return base64.StdEncoding
}

// EncodeURL encodes data as base64url without padding.
func EncodeURL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeURL trims s and decodes it as base64url without padding.
func DecodeURL(s string) ([]byte, error) {
	return Decode(FormatURLSafe, s)
}

// Encode encodes data using the given format.
func Encode(f Format, data []byte) string {
	return f.encoding().EncodeToString(data)
}

// Decode trims s and decodes it using the given format.
func Decode(f Format, s string) ([]byte, error) {
	data, err := f.encoding().DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Tag(errors.ErrEncoding, err, "decoding "+f.String()+" base64")
	}
	return data, nil
}
