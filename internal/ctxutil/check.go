// Package ctxutil provides context helpers shared by the processing packages.
package ctxutil

import (
	"context"
	"fmt"
)

// Canceled returns nil while ctx is live. Once ctx is done it returns the
// context error prefixed with op, so "sign: context canceled" still matches
// context.Canceled through errors.Is.
func Canceled(ctx context.Context, op string) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if op == "" {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
