package core

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// RenderJSON renders records as a compact JSON array.
func RenderJSON(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Op: "render", Message: "encode records", Err: err}
	}
	return string(b), nil
}

// WriteJSONFile writes records to path, replacing any existing file.
// The file is written beside its destination and renamed into place so a
// reader never observes a partial export.
func WriteJSONFile(path string, records []Record, pretty bool) error {
	if records == nil {
		records = []Record{}
	}
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(records, "", "  ")
	} else {
		b, err = json.Marshal(records)
	}
	if err != nil {
		return &Error{Kind: KindUnknown, Op: "export", Path: path, Message: "encode records", Err: err}
	}
	b = append(b, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileAccess("export", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fileAccess("export", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fileAccess("export", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fileAccess("export", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fileAccess("export", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fileAccess("export", path, err)
	}
	return nil
}
