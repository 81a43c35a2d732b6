// Package contributors builds the contributors config consumed by the CLA bot
// from the signature files recorded on disk.
package contributors

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/opendp/cla-tool/internal/fsutil"
	"github.com/opendp/cla-tool/internal/signature"
)

// BotIdentity is always appended to the generated list so automated pull
// requests pass the CLA check.
const BotIdentity = "github-actions[bot]"

// Options configures a Generate run.
type Options struct {
	// InternalDir holds internal contributor signatures.
	InternalDir string
	// IndividualDir holds individual contributor signatures.
	IndividualDir string
	// CompanyDir holds company signatures.
	CompanyDir string
	// OutDir is the directory the config file is written to.
	OutDir string
	// OutName is the config file name without extension.
	OutName string
}

// Result describes a generated contributors config.
type Result struct {
	// Path is the written config file.
	Path string
	// Contributors is the list as written, bot identity last.
	Contributors []string
	// Duplicates lists ids that signed in more than one category.
	// They are kept in Contributors.
	Duplicates []string
}

// Generator produces the contributors config.
type Generator struct {
	writer fsutil.Writer
}

// NewGenerator creates a Generator writing through w.
func NewGenerator(w fsutil.Writer) *Generator {
	return &Generator{writer: w}
}

// Generate lists the three signature directories and writes the sorted
// contributor list, followed by BotIdentity, to <OutDir>/<OutName>.json.
// Nothing is written if any directory cannot be listed.
func (g *Generator) Generate(opts Options) (*Result, error) {
	if opts.OutName == "" {
		return nil, fmt.Errorf("contributors file name cannot be empty")
	}

	dirs := []string{opts.InternalDir, opts.IndividualDir, opts.CompanyDir}
	ids, dups, err := collect(dirs)
	if err != nil {
		return nil, err
	}

	sort.Strings(ids)
	ids = append(ids, BotIdentity)

	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}
	path := filepath.Join(outDir, opts.OutName+signature.FileExt)
	if err := g.writer.WriteJSON(path, ids); err != nil {
		return nil, fmt.Errorf("failed to write contributors config: %w", err)
	}

	return &Result{
		Path:         path,
		Contributors: ids,
		Duplicates:   dups,
	}, nil
}

// collect concatenates the ids of every directory and reports the ids seen
// in more than one of them.
func collect(dirs []string) ([]string, []string, error) {
	var all []string
	seen := sets.NewString()
	dups := sets.NewString()
	for _, dir := range dirs {
		ids, err := List(dir)
		if err != nil {
			return nil, nil, err
		}
		for _, id := range ids {
			if seen.Has(id) {
				dups.Insert(id)
			}
		}
		seen.Insert(ids...)
		all = append(all, ids...)
	}
	return all, dups.List(), nil
}

// List returns the github ids of the signature files in dir, i.e. the names
// of its *.json entries with the extension stripped. Hidden files and
// subdirectories are ignored.
func List(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("signature directory cannot be empty")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list signature directory %s: %w", dir, err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if filepath.Ext(name) != signature.FileExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, signature.FileExt))
	}
	return ids, nil
}
