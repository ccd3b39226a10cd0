package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// EnsureWritableDir prepares the parent directory of path for writing. A missing
// directory is created; an existing one without owner write permission is
// chmod'ed to 0755.
func EnsureWritableDir(path string) error {
	dir := filepath.Dir(path)

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	if err != nil {
		return err
	}

	if info.Mode().Perm()&0200 == 0 {
		return os.Chmod(dir, 0755)
	}
	return nil
}

// HasPathPrefix reports whether path lies within base
func HasPathPrefix(path, base string) bool {
	path = filepath.Clean(path)
	base = filepath.Clean(base)
	if path == base {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(base, string(filepath.Separator))+string(filepath.Separator))
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
