// Package discovery locates the Cargo manifest the manage actions operate on.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file name of a Cargo manifest
const ManifestName = "Cargo.toml"

// ErrNotFound is returned when no manifest exists in start or any parent directory
var ErrNotFound = errors.New("no " + ManifestName + " found")

// FindManifest walks from start up to the filesystem root and returns the
// path of the first Cargo.toml it finds.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		candidate := filepath.Join(dir, ManifestName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or its parents", ErrNotFound, start)
		}
		dir = parent
	}
}

// ResolveManifest returns explicit when set (after checking it exists),
// otherwise the result of FindManifest from the working directory.
func ResolveManifest(explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", explicit, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
			}
			return "", fmt.Errorf("failed to stat %s: %w", abs, err)
		}
		if info.IsDir() {
			return FindManifest(abs)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return FindManifest(wd)
}
