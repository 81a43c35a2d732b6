package config

import "path/filepath"

const (
	// DefaultSigVersion is the signature schema version.
	DefaultSigVersion = "1.0.0"
	// DefaultCLA is the agreement signed when no --cla is given.
	DefaultCLA = "https://opendp.org/files/opendifferentialprivacy/files/cla_opendp_project_2021.pdf"
	// DefaultConfigFile is read from the working directory when present.
	DefaultConfigFile = ".cla-tool.yaml"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SigVersion: DefaultSigVersion,
		CLA:        DefaultCLA,
		Signatures: SignaturesConfig{
			Internal:   filepath.Join("signatures", "internal"),
			Individual: filepath.Join("signatures", "individual"),
			Company:    filepath.Join("signatures", "company"),
		},
		Output: OutputConfig{
			ConfDir:          ".",
			ContributorsFile: "contributors",
		},
	}
}
