package composer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workdir is the per-cluster working directory. It owns the generated
// manifest, the per-role log and persistent-state directories and a
// scratch directory.
type Workdir struct {
	Path string
}

// NewWorkdir derives the cluster identity from the configuration file
// name and the resolved mesos and marathon versions, so distinct version
// combinations never share state.
func NewWorkdir(configPath string, cfg *Config) Workdir {
	base := filepath.Base(configPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return Workdir{Path: fmt.Sprintf("%s-s%s-m%s", base, cfg.String("mesos_version"), cfg.String("marathon_version"))}
}

// ManifestPath is where the assembled manifest lives.
func (w Workdir) ManifestPath() string {
	return filepath.Join(w.Path, "docker-compose.yml")
}

// Create makes the directory skeleton. Safe to call on an existing tree.
func (w Workdir) Create() error {
	dirs := []string{filepath.Join(w.Path, "devel")}
	for _, role := range Roles {
		dirs = append(dirs,
			filepath.Join(w.Path, "log", role),
			filepath.Join(w.Path, "var", role),
		)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// Reset wipes the persistent-state subtree and recreates it empty. Logs
// and the manifest stay untouched.
func (w Workdir) Reset() error {
	if err := os.RemoveAll(filepath.Join(w.Path, "var")); err != nil {
		return err
	}
	for _, role := range Roles {
		if err := os.MkdirAll(filepath.Join(w.Path, "var", role), 0755); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the whole working directory. A missing directory is not
// an error.
func (w Workdir) Remove() error {
	return os.RemoveAll(w.Path)
}
