package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/opendp/cla-tool/internal/fsutil"
	"github.com/opendp/cla-tool/internal/logging"
	"github.com/opendp/cla-tool/internal/signature"
)

// SignOptions contains options for recording a signature.
type SignOptions struct {
	// Category selects the record type and its validation rules.
	Category signature.Category
	// GitHubID identifies the signer and names the file.
	GitHubID string
	// Name is the signer's display name.
	Name string
	// Attestation is the signer's attestation text.
	Attestation string
	// Company, RepresentativeName and RepresentativeAttestation are
	// required for company signatures and ignored otherwise.
	Company                   string
	RepresentativeName        string
	RepresentativeAttestation string
	// Date overrides the signing time. Empty means now.
	Date string
	// SigVersion is the schema version written into the record.
	SigVersion string
	// CLA is the URL of the agreement being signed.
	CLA string
	// SigDir is the directory the record is written to.
	SigDir string
	// DryRun renders the record to Out without writing it.
	DryRun bool
	// Out receives the rendered record in dry-run mode.
	Out io.Writer
	// Logger receives progress lines. Nil discards them.
	Logger *logrus.Logger
	// Now returns the signing time. Defaults to time.Now.
	Now func() time.Time
}

// SignResult contains the outcome of a signing.
type SignResult struct {
	// Record is the validated signature.
	Record signature.Record
	// Path is where the record is (or, in dry-run mode, would be) stored.
	Path string
	// Written reports whether the file was written.
	Written bool
	// Diff compares an existing signature at Path with Record in dry-run
	// mode (-existing +new). Empty when there is nothing to replace or no change.
	Diff string
}

// Sign validates the options, builds the signature record for the
// requested category and writes it to <SigDir>/<github_id>.json.
func Sign(opts SignOptions) (*SignResult, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	rec, err := BuildRecord(opts)
	if err == nil {
		err = rec.Validate()
	}
	if err != nil {
		return nil, NewValidationError("invalid signature", err)
	}
	sigDir, err := signature.NonEmpty("sig-dir", opts.SigDir)
	if err != nil {
		return nil, NewValidationError("invalid signature", err)
	}

	log.Infof("*** SIGNING FOR %s ***", strings.ToUpper(string(rec.Category())))
	compact, err := json.Marshal(rec)
	if err != nil {
		return nil, NewSignError("failed to encode signature", err)
	}
	log.Infof("signature = %s", compact)

	path := signature.Path(sigDir, rec.ID())
	if opts.DryRun {
		data, err := fsutil.EncodeJSON(rec)
		if err != nil {
			return nil, NewSignError("failed to encode signature", err)
		}
		if opts.Out != nil {
			if _, err := opts.Out.Write(data); err != nil {
				return nil, NewSignError("failed to print signature", err)
			}
		}
		diff, err := diffExisting(path, rec)
		if err != nil {
			log.Warnf("cannot compare with %s: %v", path, err)
		} else if diff != "" {
			log.Infof("replaces %s (-existing +new):\n%s", path, diff)
		}
		log.Infof("dry run: %s not written", path)
		return &SignResult{Record: rec, Path: path, Diff: diff}, nil
	}

	recorder := signature.NewRecorder(fsutil.NewFileWriter(log))
	path, err = recorder.Record(rec, sigDir)
	if err != nil {
		return nil, NewSignError(fmt.Sprintf("failed to sign for %s", rec.ID()), err)
	}
	log.Infof("wrote %s", path)

	return &SignResult{Record: rec, Path: path, Written: true}, nil
}

// diffExisting compares the signature stored at path with rec.
// A missing file yields no diff.
func diffExisting(path string, rec signature.Record) (string, error) {
	existing, err := signature.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	var updated map[string]interface{}
	if err := json.Unmarshal(data, &updated); err != nil {
		return "", err
	}
	return cmp.Diff(existing, updated), nil
}

// BuildRecord turns the options into a typed signature record, trimming
// every field and resolving the date.
func BuildRecord(opts SignOptions) (signature.Record, error) {
	category, err := signature.ParseCategory(string(opts.Category))
	if err != nil {
		return nil, err
	}

	base := signature.Signature{
		Version: opts.SigVersion,
		CLA:     opts.CLA,
	}
	if base.GitHubID, err = signature.NonEmpty("github-id", opts.GitHubID); err != nil {
		return nil, err
	}
	if base.Name, err = signature.NonEmpty("name", opts.Name); err != nil {
		return nil, err
	}
	if base.Date, err = resolveDate(opts); err != nil {
		return nil, err
	}

	switch category {
	case signature.CategoryInternal:
		if base.Attestation, err = signature.NonEmpty("attestation", opts.Attestation); err != nil {
			return nil, err
		}
		return signature.InternalSignature{Signature: base}, nil

	case signature.CategoryIndividual:
		if base.Attestation, err = signature.Attestation("attestation", opts.Attestation); err != nil {
			return nil, err
		}
		return signature.IndividualSignature{Signature: base}, nil

	default:
		if base.Attestation, err = signature.Attestation("attestation", opts.Attestation); err != nil {
			return nil, err
		}
		rec := signature.CompanySignature{Signature: base}
		if rec.Company, err = signature.NonEmpty("company", opts.Company); err != nil {
			return nil, err
		}
		if rec.RepresentativeName, err = signature.NonEmpty("representative-name", opts.RepresentativeName); err != nil {
			return nil, err
		}
		if rec.RepresentativeAttestation, err = signature.Attestation("representative-attestation", opts.RepresentativeAttestation); err != nil {
			return nil, err
		}
		return rec, nil
	}
}

func resolveDate(opts SignOptions) (string, error) {
	if opts.Date != "" {
		return signature.NonEmpty("date", opts.Date)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return signature.FormatDate(now()), nil
}
