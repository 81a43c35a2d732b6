package fsutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// JSONIndent is the indentation used for every JSON file the tool writes.
const JSONIndent = "    "

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile atomically replaces path with content.
	WriteFile(path string, content []byte) error

	// WriteJSON encodes v as indented JSON with a trailing newline and writes it to path.
	WriteJSON(path string, v interface{}) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct {
	log logrus.FieldLogger
}

// NewFileWriter creates a new FileWriter. A nil logger discards debug output.
func NewFileWriter(log logrus.FieldLogger) *FileWriter {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &FileWriter{log: log}
}

// EncodeJSON renders v the way every output file is laid out: four-space
// indent, no HTML escaping, trailing newline.
func EncodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", JSONIndent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes v and writes it atomically to path.
func (w *FileWriter) WriteJSON(path string, v interface{}) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return newWriteError("failed to encode JSON", path, err)
	}
	return w.WriteFile(path, data)
}

// WriteFile writes content to path.
// Creates parent directories if they don't exist.
// The content goes to a temporary file in the same directory which is synced
// and then renamed over path, so readers never see a partial file.
func (w *FileWriter) WriteFile(path string, content []byte) error {
	w.log.Debugf("[fsutil] Writing file: %s (size: %d bytes)", path, len(content))

	dir := filepath.Dir(path)
	if err := w.CreateDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return newWriteError("failed to create temporary file", path, err)
	}
	tmpName := tmp.Name()
	w.log.Debugf("[fsutil] Created temporary file: %s", tmpName)

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return newWriteError("failed to write file content", path, err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return newWriteError("failed to sync file", path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return newWriteError("failed to close file", path, err)
	}

	// CreateTemp uses 0600
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return newWriteError("failed to set file mode", path, err)
	}

	w.log.Debugf("[fsutil] Renaming temporary file: %s -> %s", tmpName, path)
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return newWriteError("failed to rename temporary file", path, err)
	}

	return nil
}

// CreateDir creates a directory and any necessary parent directories.
// Uses 0755 permissions for created directories.
func (w *FileWriter) CreateDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	w.log.Debugf("[fsutil] Creating directory: %s", path)
	if err := os.MkdirAll(path, 0755); err != nil {
		return newWriteError("failed to create directory", path, err)
	}
	return nil
}
