package config

// Config represents the cla-tool configuration.
// Every field has a built-in default; a config file only needs the values it changes.
type Config struct {
	// SigVersion is the schema version written into new signatures.
	SigVersion string `yaml:"sig_version"`
	// CLA is the URL of the agreement text being signed.
	CLA string `yaml:"cla"`
	// Signatures configures the per-category signature directories.
	Signatures SignaturesConfig `yaml:"signatures"`
	// Output configures where the contributors config is written.
	Output OutputConfig `yaml:"output"`
}

// SignaturesConfig holds one directory per signature category.
type SignaturesConfig struct {
	// Internal is the directory for internal contributor signatures.
	Internal string `yaml:"internal"`
	// Individual is the directory for individual contributor signatures.
	Individual string `yaml:"individual"`
	// Company is the directory for company signatures.
	Company string `yaml:"company"`
}

// OutputConfig represents contributors config output settings.
type OutputConfig struct {
	// ConfDir is the directory the contributors config is written to.
	ConfDir string `yaml:"conf_dir"`
	// ContributorsFile is the config file name without the .json extension.
	ContributorsFile string `yaml:"contributors_file"`
}
