package cli

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/opendp/cla-tool/internal/app"
	"github.com/opendp/cla-tool/internal/signature"
)

// fieldPrompt describes one value asked for in interactive mode.
type fieldPrompt struct {
	// Flag is the flag the value would otherwise come from.
	Flag string
	// Message is shown to the user.
	Message string
	// Help is shown when the user types '?'.
	Help string
	// Check validates and normalizes the answer.
	Check func(field, value string) (string, error)
}

// fieldPrompter asks for a single value.
type fieldPrompter func(p fieldPrompt) (string, error)

// promptMissing asks for every required value of opts that is still blank.
func promptMissing(ask fieldPrompter, opts *app.SignOptions) error {
	for _, f := range missingFields(opts) {
		value, err := ask(f.prompt)
		if err != nil {
			return err
		}
		*f.target = value
	}
	return nil
}

type missingField struct {
	prompt fieldPrompt
	target *string
}

// missingFields lists the blank required values of opts in flag order.
func missingFields(opts *app.SignOptions) []missingField {
	attest := signature.Attestation
	attestHelp := `Type "I AGREE" to accept the agreement at ` + opts.CLA
	if opts.Category == signature.CategoryInternal {
		attest = signature.NonEmpty
		attestHelp = "Free-form attestation for internal contributors"
	}

	all := []missingField{
		{fieldPrompt{FlagGitHubID, "GitHub ID", "Your GitHub login, used as the file name", signature.NonEmpty}, &opts.GitHubID},
		{fieldPrompt{FlagName, "Full name", "Your name as it should appear on the agreement", signature.NonEmpty}, &opts.Name},
		{fieldPrompt{FlagAttestation, "Attestation", attestHelp, attest}, &opts.Attestation},
	}
	if opts.Category == signature.CategoryCompany {
		all = append(all,
			missingField{fieldPrompt{FlagCompany, "Company", "Legal name of the company", signature.NonEmpty}, &opts.Company},
			missingField{fieldPrompt{FlagRepresentativeName, "Representative name", "Person signing on behalf of the company", signature.NonEmpty}, &opts.RepresentativeName},
			missingField{fieldPrompt{FlagRepresentativeAttestation, "Representative attestation", `Type "I AGREE" to accept on behalf of the company`, signature.Attestation}, &opts.RepresentativeAttestation},
		)
	}

	var missing []missingField
	for _, f := range all {
		if strings.TrimSpace(*f.target) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// surveyValidator adapts a field check to survey.
func surveyValidator(p fieldPrompt) survey.Validator {
	return func(ans interface{}) error {
		s, _ := ans.(string)
		_, err := p.Check(p.Flag, s)
		return err
	}
}

// surveyPrompt asks on the terminal.
func surveyPrompt(p fieldPrompt) (string, error) {
	var result string
	prompt := &survey.Input{
		Message: p.Message,
		Help:    p.Help,
	}
	if err := survey.AskOne(prompt, &result, survey.WithValidator(surveyValidator(p))); err != nil {
		return "", err
	}
	return result, nil
}
