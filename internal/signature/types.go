package signature

import (
	"fmt"
	"path/filepath"
)

// Category identifies which signature directory a record belongs to.
type Category string

const (
	// CategoryInternal is a signature from a project-internal contributor.
	CategoryInternal Category = "internal"
	// CategoryIndividual is a signature from an individual contributor.
	CategoryIndividual Category = "individual"
	// CategoryCompany is a signature made on behalf of a company.
	CategoryCompany Category = "company"
)

// Categories lists every category in the order the contributors config is assembled.
func Categories() []Category {
	return []Category{CategoryInternal, CategoryIndividual, CategoryCompany}
}

// ParseCategory converts a name into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryInternal, CategoryIndividual, CategoryCompany:
		return c, nil
	}
	return "", fmt.Errorf("unknown signature category: %q", s)
}

// RequiredPhrase is the attestation text individual and company signers must give.
const RequiredPhrase = "I AGREE"

// Record is a signature that can be written to disk.
type Record interface {
	// Category returns the category directory the record belongs to.
	Category() Category
	// ID returns the github identifier used as the file name.
	ID() string
	// Validate checks the fields required by the record's category.
	Validate() error
}

// Signature holds the fields common to every category.
// Field order is the key order of the written JSON.
type Signature struct {
	Version     string `json:"version"`
	Date        string `json:"date"`
	GitHubID    string `json:"github_id"`
	CLA         string `json:"cla"`
	Name        string `json:"name"`
	Attestation string `json:"attestation"`
}

// ID returns the github identifier.
func (s Signature) ID() string { return s.GitHubID }

func (s Signature) validateCommon() error {
	if err := fileID(s.GitHubID); err != nil {
		return err
	}
	if _, err := NonEmpty("name", s.Name); err != nil {
		return err
	}
	if _, err := NonEmpty("date", s.Date); err != nil {
		return err
	}
	return nil
}

// fileID checks that id names exactly one file inside a signature directory,
// so it can be read back from the file name.
func fileID(id string) error {
	id, err := NonEmpty("github-id", id)
	if err != nil {
		return err
	}
	if id == "." || id == ".." || filepath.Base(id) != id {
		return &ValidationError{Field: "github-id", Message: fmt.Sprintf("%q is not a valid file name", id)}
	}
	return nil
}

// InternalSignature is signed by project members. The attestation is free-form.
type InternalSignature struct {
	Signature
}

// Category implements Record.
func (InternalSignature) Category() Category { return CategoryInternal }

// Validate implements Record.
func (s InternalSignature) Validate() error {
	if err := s.validateCommon(); err != nil {
		return err
	}
	_, err := NonEmpty("attestation", s.Attestation)
	return err
}

// IndividualSignature is signed by an outside contributor on their own behalf.
type IndividualSignature struct {
	Signature
}

// Category implements Record.
func (IndividualSignature) Category() Category { return CategoryIndividual }

// Validate implements Record.
func (s IndividualSignature) Validate() error {
	if err := s.validateCommon(); err != nil {
		return err
	}
	_, err := Attestation("attestation", s.Attestation)
	return err
}

// CompanySignature is signed by a contributor and countersigned by a company representative.
type CompanySignature struct {
	Signature
	Company                   string `json:"company"`
	RepresentativeName        string `json:"representative_name"`
	RepresentativeAttestation string `json:"representative_attestation"`
}

// Category implements Record.
func (CompanySignature) Category() Category { return CategoryCompany }

// Validate implements Record.
func (s CompanySignature) Validate() error {
	if err := s.validateCommon(); err != nil {
		return err
	}
	if _, err := Attestation("attestation", s.Attestation); err != nil {
		return err
	}
	if _, err := NonEmpty("company", s.Company); err != nil {
		return err
	}
	if _, err := NonEmpty("representative-name", s.RepresentativeName); err != nil {
		return err
	}
	_, err := Attestation("representative-attestation", s.RepresentativeAttestation)
	return err
}
