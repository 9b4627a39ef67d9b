package flock

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mrz1836/rcli/internal/errors"
)

// retryInterval is how long Acquire waits between lock attempts.
const retryInterval = 50 * time.Millisecond

// File is an open lock file holding an exclusive lock.
type File struct {
	f *os.File
}

// Acquire opens (creating if needed) the lock file at path and takes an
// exclusive lock, retrying until timeout elapses or ctx is canceled.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //#nosec G304 -- lock path is derived from the output directory
	if err != nil {
		return nil, errors.Tag(errors.ErrIO, err, "opening lock file")
	}

	deadline := time.Now().Add(timeout)
	for {
		if err := tryLock(f); err == nil {
			return &File{f: f}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("%w after %v: %s", errors.ErrLockTimeout, timeout, path)
		}

		timer := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			_ = f.Close()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// Release unlocks and closes the lock file. The file itself is left in place.
func (l *File) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	if err := unlock(l.f); err != nil {
		_ = l.f.Close()
		return fmt.Errorf("releasing lock: %w", err)
	}
	return l.f.Close()
}
