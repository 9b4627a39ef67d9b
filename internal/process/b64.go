package process

import (
	"context"

	"github.com/mrz1836/rcli/internal/codec"
	"github.com/mrz1836/rcli/internal/ctxutil"
	"github.com/mrz1836/rcli/internal/source"
)

// Base64Encode reads input fully and encodes it with format.
func Base64Encode(ctx context.Context, input string, format codec.Format) (string, error) {
	if err := ctxutil.Canceled(ctx, "base64 encode"); err != nil {
		return "", err
	}
	data, err := source.ReadAll(input)
	if err != nil {
		return "", err
	}
	return codec.Encode(format, data), nil
}

// Base64Decode reads input as text and decodes it with format.
func Base64Decode(ctx context.Context, input string, format codec.Format) ([]byte, error) {
	if err := ctxutil.Canceled(ctx, "base64 decode"); err != nil {
		return nil, err
	}
	text, err := source.ReadText(input)
	if err != nil {
		return nil, err
	}
	return codec.Decode(format, text)
}
