package app

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opendp/cla-tool/internal/contributors"
	"github.com/opendp/cla-tool/internal/fsutil"
	"github.com/opendp/cla-tool/internal/logging"
)

// GenerateOptions contains options for generating the contributors config.
type GenerateOptions struct {
	// InternalDir, IndividualDir and CompanyDir are the signature directories.
	InternalDir   string
	IndividualDir string
	CompanyDir    string
	// ConfDir is the directory the config is written to.
	ConfDir string
	// ContributorsFile is the config file name without extension.
	ContributorsFile string
	// Logger receives progress lines. Nil discards them.
	Logger *logrus.Logger
}

// GenerateConfig writes the contributors config from the signatures on disk.
func GenerateConfig(opts GenerateOptions) (*contributors.Result, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	log.Info("*** GENERATING CLA-BOT CONFIG ***")

	gen := contributors.NewGenerator(fsutil.NewFileWriter(log))
	result, err := gen.Generate(contributors.Options{
		InternalDir:   opts.InternalDir,
		IndividualDir: opts.IndividualDir,
		CompanyDir:    opts.CompanyDir,
		OutDir:        opts.ConfDir,
		OutName:       opts.ContributorsFile,
	})
	if err != nil {
		return nil, NewGenerateError("failed to generate contributors config", err)
	}

	if len(result.Duplicates) > 0 {
		log.Warnf("signed in more than one category: %s", strings.Join(result.Duplicates, ", "))
	}
	logging.DebugJSON(log, "contributors", result.Contributors)
	log.Infof("wrote %d contributors to %s", len(result.Contributors), result.Path)

	return result, nil
}
