package sorter

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"sortify/internal/logging"
)

// rootReadmeName is the protected documentation file directly inside the
// source root, compared case-insensitively.
const rootReadmeName = "readme.md"

var foldCaser = cases.Fold()

// ScanOptions holds the inclusion filters applied during traversal.
type ScanOptions struct {
	IncludeDotfiles bool
	IncludeCode     bool
}

// Scan walks the source root top-down and returns the ordered list of absolute
// file paths that should be moved. The destination subtree is pruned from
// traversal when it differs from the root; in-place mode instead skips files
// already resting inside their own extension bucket. Unreadable subtrees are
// logged and skipped rather than failing the whole scan.
func Scan(root, destRoot string, opts ScanOptions, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	rootPath := canonicalize(root)
	destPath := canonicalize(destRoot)
	destIsRoot := rootPath == destPath

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn("skipping unreadable path",
				logging.String(logging.FieldPath, path),
				logging.Error(walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == rootPath {
				return nil
			}
			// Prune the destination subtree so the walk never recurses into
			// its own output. Containment is decided on canonical paths and
			// segment boundaries, not raw string prefixes.
			if !destIsRoot && isWithin(destPath, canonicalize(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		name := d.Name()
		if !opts.IncludeDotfiles && strings.HasPrefix(name, ".") {
			return nil
		}
		key := ExtensionKey(name)
		if !opts.IncludeCode && IsCodeExtension(key) {
			return nil
		}

		parent := filepath.Dir(path)
		if parent == rootPath && foldCaser.String(name) == rootReadmeName {
			// Preserve the root README for repo documentation.
			return nil
		}

		if destIsRoot {
			if parent == filepath.Join(destPath, key) {
				// Already resting inside its extension bucket.
				return nil
			}
		} else if isWithin(destPath, canonicalize(path)) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, Wrap(ErrFilesystem, "scanning", "walk source tree", err)
	}
	return files, nil
}

// canonicalize resolves symlinks when the path exists and falls back to a
// cleaned absolute path otherwise, so freshly named destinations that do not
// exist yet still compare correctly.
func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// isWithin reports whether child equals base or lies underneath it, judged on
// path-segment boundaries.
func isWithin(base, child string) bool {
	rel, err := filepath.Rel(base, child)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
