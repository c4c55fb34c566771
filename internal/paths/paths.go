// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve resolves a user-supplied path against the data directory.
//
//   - "skins/steve.png" with dataDir "/srv" -> "/srv/skins/steve.png"
//   - "/abs/steve.png" -> "/abs/steve.png"
//   - "~/steve.png" -> "$HOME/steve.png"
//   - dataDir "" -> relative to the working directory
func Resolve(dataDir, p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, p)
}

// StorePath returns the location of the registry store file.
func StorePath(dataDir, storeFile string) string {
	return Resolve(dataDir, storeFile)
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
