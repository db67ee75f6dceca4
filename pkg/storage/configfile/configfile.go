// Package configfile implements storage.ConfigFileReader: a JSON
// settings file discovered by walking from the working directory
// upward until found or the filesystem root is reached.
package configfile

import (
	"os"
	"path/filepath"
)

// FileName is the settings file the engine looks for in every
// ancestor directory.
const FileName = "market-sim-settings.json"

// Reader walks upward from Start looking for FileName.
type Reader struct {
	Start string
}

// New builds a Reader rooted at the given starting directory. An empty
// start defaults to the process's working directory.
func New(start string) *Reader {
	if start == "" {
		if wd, err := os.Getwd(); err == nil {
			start = wd
		}
	}
	return &Reader{Start: start}
}

// ReadConfigFile walks from Start upward until FileName is found or the
// root is reached. Not finding a file is not an error — callers fall
// back to defaults.
func (r *Reader) ReadConfigFile() (string, bool, error) {
	dir := r.Start
	for {
		candidate := filepath.Join(dir, FileName)
		data, err := os.ReadFile(candidate)
		if err == nil {
			return string(data), true, nil
		}
		if !os.IsNotExist(err) {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
