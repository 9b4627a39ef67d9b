package crypto

import (
	"fmt"
	"os"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/errors"
)

// KeySize is the length of every key rcli uses.
const KeySize = constants.KeySize

// NormalizeKey validates raw key material and returns a copy of the first
// size bytes. Shorter input is always rejected. Longer input is truncated
// unless exact is set, in which case it is rejected too.
func NormalizeKey(key []byte, size int, exact bool) ([]byte, error) {
	if len(key) < size || (exact && len(key) != size) {
		want := fmt.Sprintf("at least %d", size)
		if exact {
			want = fmt.Sprintf("exactly %d", size)
		}
		return nil, fmt.Errorf("%w: need %s bytes, got %d", errors.ErrKeyFormat, want, len(key))
	}
	out := make([]byte, size)
	copy(out, key[:size])
	return out, nil
}

// ReadKeyFile reads key material from path and normalizes it with NormalizeKey.
// A missing or unreadable file is ErrIO; bad length is ErrKeyFormat.
func ReadKeyFile(path string, size int, exact bool) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Key paths are user supplied
	if err != nil {
		return nil, errors.Tag(errors.ErrIO, err, "reading key file")
	}
	defer Zero(data)

	key, err := NormalizeKey(data, size, exact)
	if err != nil {
		return nil, errors.Wrapf(err, "key file %s", path)
	}
	return key, nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
