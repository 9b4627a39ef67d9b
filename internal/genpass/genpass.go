// Package genpass generates random passwords from unambiguous character sets.
// It is also the source of keyed-hash key material.
package genpass

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"unicode"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/errors"
)

// Character sets. Glyphs that are easy to confuse (I, O, l, 0) are left out.
const (
	UpperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	LowerChars  = "abcdefghijkmnopqrstuvwxyz"
	NumberChars = "123456789"
	SymbolChars = "!@#$%^&*_"
)

// Options selects the password length and character classes.
type Options struct {
	Length int
	Upper  bool
	Lower  bool
	Number bool
	Symbol bool
}

// DefaultOptions returns every class enabled at the default length.
func DefaultOptions() Options {
	return Options{
		Length: constants.DefaultPasswordLength,
		Upper:  true,
		Lower:  true,
		Number: true,
		Symbol: true,
	}
}

func (o Options) sets() []string {
	var sets []string
	if o.Upper {
		sets = append(sets, UpperChars)
	}
	if o.Lower {
		sets = append(sets, LowerChars)
	}
	if o.Number {
		sets = append(sets, NumberChars)
	}
	if o.Symbol {
		sets = append(sets, SymbolChars)
	}
	return sets
}

// Generate returns a password containing at least one character from every
// selected class. All randomness comes from crypto/rand.
func Generate(opts Options) (string, error) {
	sets := opts.sets()
	if len(sets) == 0 {
		return "", errors.ErrNoCharacterSet
	}
	if opts.Length < len(sets) || opts.Length > constants.MaxPasswordLength {
		return "", fmt.Errorf("%w: length must be between %d and %d, got %d",
			errors.ErrValueOutOfRange, len(sets), constants.MaxPasswordLength, opts.Length)
	}

	var all []byte
	password := make([]byte, 0, opts.Length)
	for _, set := range sets {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		password = append(password, c)
		all = append(all, set...)
	}

	for len(password) < opts.Length {
		c, err := pick(string(all))
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

func pick(set string) (byte, error) {
	i, err := randIntn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// shuffle is a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randIntn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func randIntn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

// Strength returns a coarse 0-4 score for a password based on its length
// and the number of character classes it uses.
func Strength(password string) int {
	var upper, lower, digit, other bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}

	classes := 0
	for _, b := range []bool{upper, lower, digit, other} {
		if b {
			classes++
		}
	}

	score := 0
	switch n := len(password); {
	case n >= 16:
		score = 2
	case n >= 12:
		score = 1
	}
	if classes >= 3 {
		score++
	}
	if classes == 4 && len(password) >= 12 {
		score++
	}
	return min(score, 4)
}
