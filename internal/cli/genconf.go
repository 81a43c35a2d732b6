package cli

import (
	"github.com/spf13/cobra"

	"github.com/opendp/cla-tool/internal/app"
	"github.com/opendp/cla-tool/internal/config"
)

// genConfFlags holds the gen-conf flag values.
type genConfFlags struct {
	intSigDir        string
	indSigDir        string
	comSigDir        string
	confDir          string
	contributorsFile string
}

// newGenConfCmd creates the gen-conf command.
func newGenConfCmd(e *env) *cobra.Command {
	f := &genConfFlags{}
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "gen-conf",
		Short: "Generate cla-bot config",
		Long: `Collect the GitHub IDs of all signatures into the CLA bot contributors file.

The IDs are taken from the *.json file names in the internal, individual and
company signature directories, sorted, and followed by github-actions[bot].
Every signature directory must exist.

Examples:
  cla-tool gen-conf
  cla-tool gen-conf -c .github -f cla-contributors`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenConf(cmd, e, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.intSigDir, FlagIntSigDir, defaults.Signatures.Internal, "Internal signature directory")
	flags.StringVar(&f.indSigDir, FlagIndSigDir, defaults.Signatures.Individual, "Individual signature directory")
	flags.StringVar(&f.comSigDir, FlagComSigDir, defaults.Signatures.Company, "Company signature directory")
	flags.StringVarP(&f.confDir, FlagConfDir, "c", defaults.Output.ConfDir, "Directory to write the contributors file to")
	flags.StringVarP(&f.contributorsFile, FlagContributorsFile, "f", defaults.Output.ContributorsFile, "Contributors file name without .json")

	return cmd
}

func runGenConf(cmd *cobra.Command, e *env, f *genConfFlags) error {
	_, err := app.GenerateConfig(app.GenerateOptions{
		InternalDir:      stringFlag(cmd, FlagIntSigDir, f.intSigDir, e.cfg.Signatures.Internal),
		IndividualDir:    stringFlag(cmd, FlagIndSigDir, f.indSigDir, e.cfg.Signatures.Individual),
		CompanyDir:       stringFlag(cmd, FlagComSigDir, f.comSigDir, e.cfg.Signatures.Company),
		ConfDir:          stringFlag(cmd, FlagConfDir, f.confDir, e.cfg.Output.ConfDir),
		ContributorsFile: stringFlag(cmd, FlagContributorsFile, f.contributorsFile, e.cfg.Output.ContributorsFile),
		Logger:           e.log,
	})
	return err
}
