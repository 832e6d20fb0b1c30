package testsupport

import (
	"testing"

	"sortify/internal/sorter"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*sorter.Config)

// NewConfig produces a sorter config rooted in a unique temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) sorter.Config {
	t.Helper()

	cfg := sorter.Config{
		Root:    t.TempDir(),
		DestDir: "sorted_by_extension",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithDestDir overrides the destination directory.
func WithDestDir(dest string) ConfigOption {
	return func(c *sorter.Config) { c.DestDir = dest }
}

// WithDryRun enables simulation mode.
func WithDryRun() ConfigOption {
	return func(c *sorter.Config) { c.DryRun = true }
}

// WithDotfiles includes hidden files.
func WithDotfiles() ConfigOption {
	return func(c *sorter.Config) { c.IncludeDotfiles = true }
}

// WithCode includes code-like extensions.
func WithCode() ConfigOption {
	return func(c *sorter.Config) { c.IncludeCode = true }
}
