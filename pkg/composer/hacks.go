package composer

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// HackMounts walks the tree under root and returns one bind mount per
// regular file, mapping the absolute file path to the same path relative
// to root but rooted at /. Directories and symlinks are not mounted.
// The walk is lexical, so the result is stable for a given tree.
func HackMounts(root string) ([]string, error) {
	var mounts []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		mounts = append(mounts, abs+":/"+filepath.ToSlash(rel))
		return nil
	})
	return mounts, err
}

// hackMountsFor resolves a role's hack directory key into bind mounts. An
// unset key yields nothing.
func hackMountsFor(cfg *Config, key string) ([]string, error) {
	dir := cfg.String(key)
	if dir == "" {
		return nil, nil
	}
	expanded, err := absPath(dir)
	if err != nil {
		return nil, err
	}
	return HackMounts(expanded)
}

// absPath expands a leading ~ and makes the path absolute.
func absPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}
