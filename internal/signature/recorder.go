package signature

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opendp/cla-tool/internal/fsutil"
)

// FileExt is the extension of every signature file.
const FileExt = ".json"

// DateLayout renders UTC timestamps with microseconds and an explicit offset,
// e.g. 2021-06-01T12:00:00.250000+00:00.
const DateLayout = "2006-01-02T15:04:05.000000-07:00"

// DateLayoutSeconds is used instead of DateLayout when the microsecond is zero.
const DateLayoutSeconds = "2006-01-02T15:04:05-07:00"

// FormatDate returns t in UTC. The fraction is omitted when t falls on a
// whole second at microsecond precision.
func FormatDate(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(DateLayoutSeconds)
	}
	return t.Format(DateLayout)
}

// Path returns the file a record with the given id is stored at inside dir.
func Path(dir, githubID string) string {
	return filepath.Join(dir, githubID+FileExt)
}

// Recorder writes signature records to their category directory.
type Recorder struct {
	writer fsutil.Writer
}

// NewRecorder creates a Recorder on top of w.
func NewRecorder(w fsutil.Writer) *Recorder {
	return &Recorder{writer: w}
}

// Record validates rec and writes it to <dir>/<github_id>.json, replacing any
// previous signature for the same id. It returns the written path.
func (r *Recorder) Record(rec Record, dir string) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	if dir == "" {
		return "", &ValidationError{Field: "sig-dir", Message: "empty string"}
	}
	if err := r.writer.CreateDir(dir); err != nil {
		return "", fmt.Errorf("failed to record %s signature for %s: %w", rec.Category(), rec.ID(), err)
	}

	path := Path(dir, rec.ID())
	if err := r.writer.WriteJSON(path, rec); err != nil {
		return "", fmt.Errorf("failed to record %s signature for %s: %w", rec.Category(), rec.ID(), err)
	}
	return path, nil
}

// Load reads a signature file back as a generic JSON object.
func Load(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return out, nil
}
