package cli

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rcli/internal/csvconv"
	"github.com/mrz1836/rcli/internal/errors"
	"github.com/mrz1836/rcli/internal/tui"
)

// CSVFlags holds flags for the csv command.
type CSVFlags struct {
	Input     string
	Out       string
	Format    string
	Delimiter string
}

// AddCSVCommand adds the csv command to the root command.
func AddCSVCommand(root *cobra.Command) {
	flags := &CSVFlags{}
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Convert CSV to JSON or YAML",
		Long: `Convert a CSV file with a header row into a list of records.

Each record keeps the header's column order. The result is written to
--out, or to output.json / output.yaml when --out is not given.

Examples:
  rcli csv -i players.csv
  rcli csv -i players.csv --format yaml --out players.yaml
  rcli csv -i data.tsv -d $'\t'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCSV(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "CSV file to convert, or '-' for stdin")
	cmd.Flags().StringVar(&flags.Out, "out", "", "output file (default output.<format>)")
	cmd.Flags().StringVar(&flags.Format, "format", string(csvconv.FormatJSON), "output format (json|yaml)")
	cmd.Flags().StringVarP(&flags.Delimiter, "delimiter", "d", ",", "field delimiter (a single character)")
	_ = cmd.MarkFlagRequired("input")

	root.AddCommand(cmd)
}

// parseDelimiter accepts exactly one character.
func parseDelimiter(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if s == "" || r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: delimiter must be a single character, got %q", errors.ErrInvalidArgument, s)
	}
	return r, nil
}

func runCSV(ctx context.Context, w io.Writer, outFmt string, flags *CSVFlags) error {
	format, err := csvconv.ParseOutputFormat(flags.Format)
	if err != nil {
		return err
	}
	delimiter, err := parseDelimiter(flags.Delimiter)
	if err != nil {
		return err
	}
	if err = checkInput(flags.Input); err != nil {
		return err
	}

	out := flags.Out
	if out == "" {
		out = csvconv.DefaultOutput(format)
	}

	if err = csvconv.Convert(ctx, flags.Input, out, format, delimiter); err != nil {
		return err
	}

	tui.NewOutput(w, outFmt).Success(fmt.Sprintf("Converted %s to %s", flags.Input, out))
	return nil
}
