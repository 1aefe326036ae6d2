package utils

import (
	"os"
	"path/filepath"
)

// GetAbsolutePath returns path if it was absolute, otherwise joins it with baseDir
func GetAbsolutePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(baseDir, path))
}

// ResolvePath makes path absolute relative to the working directory.
func ResolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return GetAbsolutePath(path, wd), nil
}

// EnsureParentDir creates the directory holding path.
func EnsureParentDir(path string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(path), perm)
}
