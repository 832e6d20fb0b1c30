package sorter

import (
	"fmt"
	"path/filepath"
)

// Config captures the runtime options for one sorting pass. It is constructed
// once per invocation and never mutated afterwards.
type Config struct {
	// Root is the directory to scan.
	Root string
	// DestDir is the destination folder, either absolute or relative to Root.
	// "." selects in-place mode where buckets are created beside the sources.
	DestDir string

	IncludeDotfiles bool
	IncludeCode     bool
	DryRun          bool
	Interactive     bool
}

// RootPath returns the absolute, cleaned source root.
func (c Config) RootPath() (string, error) {
	abs, err := filepath.Abs(filepath.Clean(c.Root))
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", c.Root, err)
	}
	return abs, nil
}

// DestinationRoot returns the absolute destination root. Relative values are
// resolved against the source root, matching the CLI contract where
// --dest-dir names a folder inside the root.
func (c Config) DestinationRoot() (string, error) {
	root, err := c.RootPath()
	if err != nil {
		return "", err
	}
	dest := c.DestDir
	if dest == "" {
		dest = "."
	}
	if filepath.IsAbs(dest) {
		return filepath.Clean(dest), nil
	}
	return filepath.Join(root, dest), nil
}

// InPlace reports whether the destination root equals the source root.
func (c Config) InPlace() (bool, error) {
	root, err := c.RootPath()
	if err != nil {
		return false, err
	}
	dest, err := c.DestinationRoot()
	if err != nil {
		return false, err
	}
	return root == dest, nil
}
