// Package flock serializes writers of a directory across processes.
//
// Acquire takes an exclusive advisory lock on a file, retrying until a
// timeout or context cancellation. Key generation holds one while it writes
// key files so two rcli processes never interleave writes to the same
// directory.
//
//	l, err := flock.Acquire(ctx, filepath.Join(dir, ".rcli-keygen.lock"), 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	defer l.Release()
package flock
