package errors

import "fmt"

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage:
//
//	if err := load(path); err != nil {
//	    return errors.Wrap(err, "failed to load signing key")
//	}
//
// The wrapped error preserves the original chain, so callers can still
// check for sentinels with errors.Is(err, errors.ErrKeyFormat).
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context to errors at package boundaries.
// It returns nil if err is nil.
//
//	return errors.Wrapf(err, "reading key file %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Tag attaches a sentinel to a lower-level cause so both stay reachable
// through errors.Is. The message reads "msg: cause".
//
//	return errors.Tag(errors.ErrIO, err, "opening input")
func Tag(sentinel, cause error, msg string) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", msg, sentinel)
	}
	return fmt.Errorf("%s: %w: %w", msg, sentinel, cause)
}
