package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendp/cla-tool/internal/contributors"
	"github.com/opendp/cla-tool/internal/logging"
	"github.com/opendp/cla-tool/internal/signature"
)

var fixedNow = func() time.Time {
	return time.Date(2021, 6, 1, 12, 30, 0, 0, time.UTC)
}

func individualOptions(dir string) SignOptions {
	return SignOptions{
		Category:    signature.CategoryIndividual,
		GitHubID:    " octocat ",
		Name:        "Mona Lisa",
		Attestation: "i agree",
		SigVersion:  "1.0.0",
		CLA:         "https://example.org/cla.pdf",
		SigDir:      dir,
		Now:         fixedNow,
	}
}

func TestSignRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "signatures", "individual")

	result, err := Sign(individualOptions(dir))
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, filepath.Join(dir, "octocat.json"), result.Path)

	got, err := signature.Load(result.Path)
	require.NoError(t, err)
	want := map[string]interface{}{
		"version":     "1.0.0",
		"date":        "2021-06-01T12:30:00+00:00",
		"github_id":   "octocat",
		"cla":         "https://example.org/cla.pdf",
		"name":        "Mona Lisa",
		"attestation": "i agree",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestSignExplicitDate(t *testing.T) {
	opts := individualOptions(t.TempDir())
	opts.Date = " 2020-01-01T00:00:00+00:00 "

	result, err := Sign(opts)
	require.NoError(t, err)

	got, err := signature.Load(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01T00:00:00+00:00", got["date"])
}

func TestSignValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignOptions)
		field  string
	}{
		{"blank github id", func(o *SignOptions) { o.GitHubID = "\t" }, "github-id"},
		{"github id with separator", func(o *SignOptions) { o.GitHubID = "org/octocat" }, "github-id"},
		{"github id leaving the directory", func(o *SignOptions) { o.GitHubID = "../../escaped" }, "github-id"},
		{"blank name", func(o *SignOptions) { o.Name = "" }, "name"},
		{"wrong attestation", func(o *SignOptions) { o.Attestation = "yes" }, "attestation"},
		{"blank date", func(o *SignOptions) { o.Date = "  " }, "date"},
		{"blank sig dir", func(o *SignOptions) { o.SigDir = " " }, "sig-dir"},
		{"company without company", func(o *SignOptions) {
			o.Category = signature.CategoryCompany
			o.RepresentativeName = "Rep"
			o.RepresentativeAttestation = "I AGREE"
		}, "company"},
		{"company without representative attestation", func(o *SignOptions) {
			o.Category = signature.CategoryCompany
			o.Company = "Acme"
			o.RepresentativeName = "Rep"
			o.RepresentativeAttestation = "no"
		}, "representative-attestation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "sigs")
			opts := individualOptions(dir)
			tt.mutate(&opts)

			_, err := Sign(opts)
			require.Error(t, err)

			var appErr *AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, ValidationFailed, appErr.Type)

			var vErr *signature.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)

			_, statErr := os.Stat(dir)
			assert.True(t, os.IsNotExist(statErr), "nothing should be written")
		})
	}
}

func TestSignInternalFreeFormAttestation(t *testing.T) {
	opts := individualOptions(t.TempDir())
	opts.Category = signature.CategoryInternal
	opts.Attestation = "signed as employee"

	result, err := Sign(opts)
	require.NoError(t, err)
	_, ok := result.Record.(signature.InternalSignature)
	assert.True(t, ok, "expected an internal record, got %T", result.Record)
}

func TestSignCompany(t *testing.T) {
	opts := individualOptions(t.TempDir())
	opts.Category = signature.CategoryCompany
	opts.Company = " Acme "
	opts.RepresentativeName = "Wile E. Coyote"
	opts.RepresentativeAttestation = "I Agree"

	result, err := Sign(opts)
	require.NoError(t, err)

	got, err := signature.Load(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got["company"])
	assert.Equal(t, "Wile E. Coyote", got["representative_name"])
	assert.Equal(t, "I Agree", got["representative_attestation"])
}

func TestSignDryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sigs")
	var out bytes.Buffer
	opts := individualOptions(dir)
	opts.DryRun = true
	opts.Out = &out

	result, err := Sign(opts)
	require.NoError(t, err)
	assert.False(t, result.Written)
	assert.Contains(t, out.String(), `    "github_id": "octocat",`)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSignDryRunDiffsExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sigs")
	_, err := Sign(individualOptions(dir))
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(dir, "octocat.json"))
	require.NoError(t, err)

	var logs bytes.Buffer
	opts := individualOptions(dir)
	opts.Name = "Mona Lisa Octocat"
	opts.DryRun = true
	opts.Logger = logging.New(logging.Options{Out: &logs, NoColor: true})

	result, err := Sign(opts)
	require.NoError(t, err)
	assert.Contains(t, result.Diff, `"Mona Lisa"`)
	assert.Contains(t, result.Diff, `"Mona Lisa Octocat"`)
	assert.Contains(t, logs.String(), "# replaces "+filepath.Join(dir, "octocat.json"))

	after, err := os.ReadFile(filepath.Join(dir, "octocat.json"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSignDryRunUnchanged(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sigs")
	_, err := Sign(individualOptions(dir))
	require.NoError(t, err)

	opts := individualOptions(dir)
	opts.DryRun = true
	result, err := Sign(opts)
	require.NoError(t, err)
	assert.Empty(t, result.Diff)
}

func TestSignLogs(t *testing.T) {
	var logs bytes.Buffer
	opts := individualOptions(t.TempDir())
	opts.Logger = logging.New(logging.Options{Out: &logs, NoColor: true})

	_, err := Sign(opts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "# *** SIGNING FOR INDIVIDUAL ***", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `# signature = {"version":"1.0.0"`), lines[1])
}

func TestGenerateConfig(t *testing.T) {
	root := t.TempDir()
	dirs := map[signature.Category]string{}
	for _, c := range signature.Categories() {
		dirs[c] = filepath.Join(root, "signatures", string(c))
	}

	sign := func(c signature.Category, id string) {
		opts := individualOptions(dirs[c])
		opts.Category = c
		opts.GitHubID = id
		opts.Company = "Acme"
		opts.RepresentativeName = "Rep"
		opts.RepresentativeAttestation = "I AGREE"
		_, err := Sign(opts)
		require.NoError(t, err)
	}
	sign(signature.CategoryInternal, "b")
	sign(signature.CategoryInternal, "a")
	sign(signature.CategoryIndividual, "c")
	sign(signature.CategoryCompany, "a")

	var logs bytes.Buffer
	result, err := GenerateConfig(GenerateOptions{
		InternalDir:      dirs[signature.CategoryInternal],
		IndividualDir:    dirs[signature.CategoryIndividual],
		CompanyDir:       dirs[signature.CategoryCompany],
		ConfDir:          root,
		ContributorsFile: "contributors",
		Logger:           logging.New(logging.Options{Out: &logs, NoColor: true}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a", "b", "c", contributors.BotIdentity}, result.Contributors)
	assert.Contains(t, logs.String(), "# *** GENERATING CLA-BOT CONFIG ***")
	assert.Contains(t, logs.String(), "# warning: signed in more than one category: a")
}

func TestGenerateConfigMissingDir(t *testing.T) {
	root := t.TempDir()

	_, err := GenerateConfig(GenerateOptions{
		InternalDir:      filepath.Join(root, "nope"),
		IndividualDir:    root,
		CompanyDir:       root,
		ConfDir:          root,
		ContributorsFile: "contributors",
	})
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, GenerateFailed, appErr.Type)
}
