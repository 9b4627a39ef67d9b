package crypto

import (
	"fmt"
	"strings"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/errors"
)

// Format selects a signing algorithm family.
// The set is closed: every entry point switches over it explicitly.
type Format int

const (
	// FormatUnknown is the zero value and never valid.
	FormatUnknown Format = iota
	// FormatBlake3 selects the BLAKE3 keyed hash.
	FormatBlake3
	// FormatEd25519 selects Ed25519 signatures.
	FormatEd25519
)

// Formats returns the recognized formats in display order.
func Formats() []Format {
	return []Format{FormatBlake3, FormatEd25519}
}

// ParseFormat maps a tag to a Format. Unknown tags are an error, never a fallback.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "blake3":
		return FormatBlake3, nil
	case "ed25519":
		return FormatEd25519, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q (valid: %s)", errors.ErrUnsupportedFormat, s, formatList())
}

func formatList() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// String returns the tag for f.
func (f Format) String() string {
	switch f {
	case FormatBlake3:
		return "blake3"
	case FormatEd25519:
		return "ed25519"
	case FormatUnknown:
	}
	return "unknown"
}

// Set implements pflag.Value so a Format can be bound directly to a flag.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "format"
}

// KeyFileNames returns the file names GenerateKey writes for f, in the
// order the key material is produced.
func (f Format) KeyFileNames() []string {
	switch f {
	case FormatBlake3:
		return []string{constants.Blake3KeyFileName}
	case FormatEd25519:
		return []string{constants.Ed25519SigningKeyFileName, constants.Ed25519VerifyingKeyFileName}
	case FormatUnknown:
	}
	return nil
}
