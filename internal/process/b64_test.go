package process

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rcli/internal/codec"
	"github.com/mrz1836/rcli/internal/errors"
	"github.com/mrz1836/rcli/internal/testutil"
)

func TestBase64(t *testing.T) {
	ctx := context.Background()
	payload := "hello?>world~~"

	tests := []struct {
		format  codec.Format
		encoded string
	}{
		{codec.FormatStandard, "aGVsbG8/Pndvcmxkfn4="},
		{codec.FormatURLSafe, "aGVsbG8_Pndvcmxkfn4"},
	}

	for _, tc := range tests {
		t.Run(tc.format.String(), func(t *testing.T) {
			got, err := Base64Encode(ctx, testutil.WriteInput(t, payload), tc.format)
			require.NoError(t, err)
			assert.Equal(t, tc.encoded, got)

			decoded, err := Base64Decode(ctx, testutil.WriteInput(t, tc.encoded+"\n"), tc.format)
			require.NoError(t, err)
			assert.Equal(t, payload, string(decoded))
		})
	}

	t.Run("stdin", func(t *testing.T) {
		withStdin(t, "aGk")
		decoded, err := Base64Decode(ctx, "-", codec.FormatURLSafe)
		require.NoError(t, err)
		assert.Equal(t, "hi", string(decoded))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Base64Decode(ctx, testutil.WriteInput(t, "!!"), codec.FormatStandard)
		require.ErrorIs(t, err, errors.ErrEncoding)
	})
}
