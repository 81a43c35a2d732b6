package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig      = "config"
	FlagDebug       = "debug"
	FlagNoColor     = "no-color"
	FlagQuiet       = "quiet"
	FlagDryRun      = "dry-run"
	FlagInteractive = "interactive"

	FlagSigVersion                = "sig-version"
	FlagDate                      = "date"
	FlagGitHubID                  = "github-id"
	FlagCLA                       = "cla"
	FlagName                      = "name"
	FlagAttestation               = "attestation"
	FlagSigDir                    = "sig-dir"
	FlagCompany                   = "company"
	FlagRepresentativeName        = "representative-name"
	FlagRepresentativeAttestation = "representative-attestation"

	FlagIntSigDir        = "int-sig-dir"
	FlagIndSigDir        = "ind-sig-dir"
	FlagComSigDir        = "com-sig-dir"
	FlagConfDir          = "conf-dir"
	FlagContributorsFile = "contributors-file"

	// Flag descriptions
	DescConfig      = "Path to YAML config file (default .cla-tool.yaml if present)"
	DescDebug       = "Enable debug logging"
	DescNoColor     = "Disable colored output"
	DescQuiet       = "Suppress informational output"
	DescDryRun      = "Print the signature without writing it"
	DescInteractive = "Prompt for missing required values"
)

// stringFlag returns the flag value if it was set on the command line and
// fallback otherwise, so config file values sit between flags and built-in defaults.
func stringFlag(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}

// checkRequired reports required flags that were neither set nor will be prompted for.
func checkRequired(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &usageError{fmt.Errorf(`required flag(s) "%s" not set`, strings.Join(missing, `", "`))}
}
