package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for YAML configuration files.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
// Missing keys are filled from DefaultConfig and the result is validated.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML", err)
	}

	mergeConfig(&cfg, DefaultConfig())

	if err := l.Validate(&cfg); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.File = path
		}
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	required := []struct {
		field string
		value string
	}{
		{"sig_version", config.SigVersion},
		{"cla", config.CLA},
		{"signatures.internal", config.Signatures.Internal},
		{"signatures.individual", config.Signatures.Individual},
		{"signatures.company", config.Signatures.Company},
		{"output.conf_dir", config.Output.ConfDir},
		{"output.contributors_file", config.Output.ContributorsFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", r.field, "value cannot be blank")
		}
	}

	if strings.HasSuffix(config.Output.ContributorsFile, ".json") {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "output.contributors_file",
			"give the file name without the .json extension")
	}
	return nil
}

// mergeConfig merges missing fields from defaults into cfg.
func mergeConfig(cfg, defaults *Config) {
	if cfg.SigVersion == "" {
		cfg.SigVersion = defaults.SigVersion
	}
	if cfg.CLA == "" {
		cfg.CLA = defaults.CLA
	}

	// Signatures
	if cfg.Signatures.Internal == "" {
		cfg.Signatures.Internal = defaults.Signatures.Internal
	}
	if cfg.Signatures.Individual == "" {
		cfg.Signatures.Individual = defaults.Signatures.Individual
	}
	if cfg.Signatures.Company == "" {
		cfg.Signatures.Company = defaults.Signatures.Company
	}

	// Output
	if cfg.Output.ConfDir == "" {
		cfg.Output.ConfDir = defaults.Output.ConfDir
	}
	if cfg.Output.ContributorsFile == "" {
		cfg.Output.ContributorsFile = defaults.Output.ContributorsFile
	}
}

// SigDir returns the configured directory for a signature category name.
func (c *Config) SigDir(category string) string {
	switch category {
	case "internal":
		return c.Signatures.Internal
	case "individual":
		return c.Signatures.Individual
	case "company":
		return c.Signatures.Company
	}
	return ""
}
