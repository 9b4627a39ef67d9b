package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rcli/internal/codec"
	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/process"
	"github.com/mrz1836/rcli/internal/tui"
)

// base64Flags holds flags for the base64 subcommands.
type base64Flags struct {
	input  string
	format string
}

// AddBase64Command adds the base64 command group to the root command.
func AddBase64Command(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "base64",
		Short: "Encode or decode base64",
	}

	encodeFlags := &base64Flags{}
	encode := &cobra.Command{
		Use:   "encode",
		Short: "Encode input as base64",
		Long: `Encode the input as base64.

The standard format is padded; urlsafe is unpadded.

Examples:
  rcli base64 encode -i photo.png
  echo -n hello | rcli base64 encode --format urlsafe`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBase64(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), encodeFlags, false)
		},
	}
	addBase64Flags(encode, encodeFlags)

	decodeFlags := &base64Flags{}
	decode := &cobra.Command{
		Use:   "decode",
		Short: "Decode base64 input",
		Long: `Decode base64 input. Surrounding whitespace is ignored.

Examples:
  rcli base64 decode -i encoded.txt
  echo aGVsbG8 | rcli base64 decode --format urlsafe`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBase64(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), decodeFlags, true)
		},
	}
	addBase64Flags(decode, decodeFlags)

	cmd.AddCommand(encode, decode)
	root.AddCommand(cmd)
}

func addBase64Flags(cmd *cobra.Command, flags *base64Flags) {
	cmd.Flags().StringVarP(&flags.input, "input", "i", constants.StdinMarker, "input file, or '-' for stdin")
	cmd.Flags().StringVar(&flags.format, "format", codec.FormatStandard.String(), "base64 alphabet (standard|urlsafe)")
}

func runBase64(ctx context.Context, w io.Writer, outFmt string, flags *base64Flags, decode bool) error {
	format, err := codec.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	if err = checkInput(flags.input); err != nil {
		return err
	}

	if !decode {
		encoded, err := process.Base64Encode(ctx, flags.input, format)
		if err != nil {
			return err
		}
		tui.NewOutput(w, outFmt).Value(encoded)
		return nil
	}

	decoded, err := process.Base64Decode(ctx, flags.input, format)
	if err != nil {
		return err
	}
	if outFmt == OutputJSON {
		tui.NewOutput(w, outFmt).Value(string(decoded))
		return nil
	}
	// Decoded bytes may be binary; write them untouched.
	_, err = w.Write(decoded)
	return err
}
