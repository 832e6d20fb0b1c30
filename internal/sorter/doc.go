// Package sorter implements the core of sortify: discovering candidate files
// under a source root and relocating them into extension-named buckets below a
// destination root.
//
// Scan walks the tree top-down, prunes the destination subtree so the walk
// never recurses into its own output, and applies the inclusion filters
// (dotfiles, code-like extensions, the protected root README, already-grouped
// files). Mover consumes the resulting list one file at a time, creating
// bucket directories lazily and resolving name collisions with numeric
// suffixes; dry-run mode reports the planned pairs without touching the
// filesystem. Runner ties both together for a single sequential pass.
//
// Errors are tagged with the package sentinels (ErrInvalidRoot, ErrFilesystem,
// ErrCancelled) so the CLI can map them onto exit behavior uniformly.
package sorter
