package cli

import (
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/rcli/internal/constants"
)

// Values accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	Output  string // text or json
	Verbose bool   // debug logging
	Quiet   bool   // warn-level logging only
}

// globalFlagNames are the persistent flags that viper also resolves from
// RCLI_* environment variables.
//
//nolint:gochecknoglobals // Fixed flag list
var globalFlagNames = []string{"output", "verbose", "quiet"}

// AddGlobalFlags registers --output, --verbose and --quiet on cmd.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags lets RCLI_OUTPUT, RCLI_VERBOSE and RCLI_QUIET stand in
// for flags that were not given on the command line.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	for _, name := range globalFlagNames {
		if err := v.BindPFlag(name, pf.Lookup(name)); err != nil {
			return err
		}
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	return nil
}

func applyBoundFlags(v *viper.Viper, flags *GlobalFlags) {
	flags.Output = v.GetString("output")
	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet")
}

// ValidOutputFormats lists the values --output accepts.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat reports whether format is accepted by --output.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}
