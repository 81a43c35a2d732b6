package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opendp/cla-tool/internal/app"
	"github.com/opendp/cla-tool/internal/config"
	"github.com/opendp/cla-tool/internal/signature"
)

// signFlags holds the flag values of one sign command.
type signFlags struct {
	sigVersion  string
	date        string
	githubID    string
	cla         string
	name        string
	attestation string
	sigDir      string

	company                   string
	representativeName        string
	representativeAttestation string

	dryRun      bool
	interactive bool
}

var signCommands = map[signature.Category]struct {
	use   string
	short string
}{
	signature.CategoryInternal:   {"sign-int", "Sign CLA for internal contributor"},
	signature.CategoryIndividual: {"sign-ind", "Sign CLA for individual contributor"},
	signature.CategoryCompany:    {"sign-com", "Sign CLA for company contributor"},
}

// newSignCmd creates the sign command for category.
func newSignCmd(e *env, category signature.Category) *cobra.Command {
	f := &signFlags{}
	meta := signCommands[category]
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   meta.use,
		Short: meta.short,
		Long:  signLong(meta.short, meta.use, category),
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, e, f, category)
		},
	}

	attestationDesc := "Attestation text"
	if category != signature.CategoryInternal {
		attestationDesc = fmt.Sprintf("Attestation, must be %q", signature.RequiredPhrase)
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.sigVersion, FlagSigVersion, "V", defaults.SigVersion, "Signature schema version")
	flags.StringVarP(&f.date, FlagDate, "d", "", "Signing date (default: current UTC time)")
	flags.StringVarP(&f.githubID, FlagGitHubID, "g", "", "GitHub ID of the signer (required)")
	flags.StringVarP(&f.cla, FlagCLA, "u", defaults.CLA, "URL of the agreement being signed")
	flags.StringVarP(&f.name, FlagName, "n", "", "Name of the signer (required)")
	flags.StringVarP(&f.attestation, FlagAttestation, "a", "", attestationDesc+" (required)")
	flags.StringVarP(&f.sigDir, FlagSigDir, "s", defaults.SigDir(string(category)), "Signature directory")
	if category == signature.CategoryCompany {
		flags.StringVarP(&f.company, FlagCompany, "X", "", "Company name (required)")
		flags.StringVarP(&f.representativeName, FlagRepresentativeName, "N", "", "Name of the company representative (required)")
		flags.StringVarP(&f.representativeAttestation, FlagRepresentativeAttestation, "A", "",
			fmt.Sprintf("Representative attestation, must be %q (required)", signature.RequiredPhrase))
	}
	flags.BoolVar(&f.dryRun, FlagDryRun, false, DescDryRun)
	flags.BoolVarP(&f.interactive, FlagInteractive, "i", false, DescInteractive)

	return cmd
}

func signLong(short, use string, category signature.Category) string {
	example := fmt.Sprintf(`  cla-tool %s -g octocat -n "Mona Lisa" -a "I AGREE"`, use)
	if category == signature.CategoryCompany {
		example += ` \
      -X "Acme Inc." -N "Wile E. Coyote" -A "I AGREE"`
	}
	return fmt.Sprintf(`%s.

Writes <sig-dir>/<github-id>.json, replacing an earlier signature by the
same GitHub ID.

Examples:
%s
  cla-tool %s -g octocat --dry-run -i`, short, example, use)
}

// requiredFlags lists the flags a category cannot be signed without.
func requiredFlags(category signature.Category) []string {
	names := []string{FlagGitHubID, FlagName, FlagAttestation}
	if category == signature.CategoryCompany {
		names = append(names, FlagCompany, FlagRepresentativeName, FlagRepresentativeAttestation)
	}
	return names
}

func runSign(cmd *cobra.Command, e *env, f *signFlags, category signature.Category) error {
	if !f.interactive {
		if err := checkRequired(cmd, requiredFlags(category)...); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed(FlagDate) && strings.TrimSpace(f.date) == "" {
		return &signature.ValidationError{Field: FlagDate, Message: "empty string"}
	}

	opts := app.SignOptions{
		Category:                  category,
		GitHubID:                  f.githubID,
		Name:                      f.name,
		Attestation:               f.attestation,
		Company:                   f.company,
		RepresentativeName:        f.representativeName,
		RepresentativeAttestation: f.representativeAttestation,
		Date:                      f.date,
		SigVersion:                stringFlag(cmd, FlagSigVersion, f.sigVersion, e.cfg.SigVersion),
		CLA:                       stringFlag(cmd, FlagCLA, f.cla, e.cfg.CLA),
		SigDir:                    stringFlag(cmd, FlagSigDir, f.sigDir, e.cfg.SigDir(string(category))),
		DryRun:                    f.dryRun,
		Out:                       cmd.OutOrStdout(),
		Logger:                    e.log,
	}

	if f.interactive {
		if err := promptMissing(e.prompt, &opts); err != nil {
			return err
		}
	}

	_, err := app.Sign(opts)
	return err
}
