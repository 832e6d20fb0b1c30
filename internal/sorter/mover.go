package sorter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sortify/internal/fileutil"
	"sortify/internal/logging"
)

// NoExtBucket is the reserved bucket name for extensionless files.
const NoExtBucket = "no_ext"

// maxCollisionAttempts bounds the numeric-suffix search inside a bucket.
const maxCollisionAttempts = 10000

// ExtensionKey returns the lower-cased extension of name without the leading
// dot, or NoExtBucket when the file has none. Dotfiles such as ".secret"
// count as extensionless.
func ExtensionKey(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	key := strings.TrimPrefix(strings.ToLower(ext), ".")
	if key == "" {
		return NoExtBucket
	}
	return key
}

// splitStem splits a filename into stem and extension using the same
// dotfile rule as ExtensionKey.
func splitStem(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// SafeDestination returns a non-colliding path for filename inside bucketDir,
// appending " (n)" before the extension until an unused name is found. It
// never selects an existing path, so no file is silently overwritten.
func SafeDestination(bucketDir, filename string) (string, error) {
	candidate := filepath.Join(bucketDir, filename)
	free, err := pathFree(candidate)
	if err != nil {
		return "", err
	}
	if free {
		return candidate, nil
	}

	stem, ext := splitStem(filename)
	for counter := 1; counter <= maxCollisionAttempts; counter++ {
		bumped := filepath.Join(bucketDir, fmt.Sprintf("%s (%d)%s", stem, counter, ext))
		free, err := pathFree(bumped)
		if err != nil {
			return "", err
		}
		if free {
			return bumped, nil
		}
	}
	return "", fmt.Errorf("exhausted collision suffixes for %s in %s", filename, bucketDir)
}

func pathFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Disposition describes what happened to a single candidate file.
type Disposition int

const (
	// DispositionMoved means the file now rests at Target.
	DispositionMoved Disposition = iota
	// DispositionPlanned means a dry-run reported the pair without touching the filesystem.
	DispositionPlanned
	// DispositionAlreadyGrouped means the file already sat inside its bucket.
	DispositionAlreadyGrouped
	// DispositionVanished means the source disappeared between scan and move.
	DispositionVanished
	// DispositionFailed means the move errored; Err carries the cause.
	DispositionFailed
)

// MoveResult records the outcome of one candidate.
type MoveResult struct {
	Source      string
	Target      string
	Bucket      string
	Disposition Disposition
	Err         error
}

// Mover relocates candidate files into extension buckets under a destination
// root, or simulates the moves in dry-run mode.
type Mover struct {
	destRoot string
	dryRun   bool
	logger   *slog.Logger
	out      io.Writer
}

// NewMover constructs a mover writing user-facing lines to out.
func NewMover(destRoot string, dryRun bool, logger *slog.Logger, out io.Writer) *Mover {
	if out == nil {
		out = io.Discard
	}
	return &Mover{
		destRoot: destRoot,
		dryRun:   dryRun,
		logger:   logging.NewComponentLogger(logger, "mover"),
		out:      out,
	}
}

// Move processes a single candidate. Failures are reported in the result
// rather than aborting the batch; the file is never left half-moved.
func (m *Mover) Move(src string) MoveResult {
	key := ExtensionKey(filepath.Base(src))
	bucketDir := filepath.Join(m.destRoot, key)
	result := MoveResult{Source: src, Bucket: key}

	if _, err := os.Lstat(src); errors.Is(err, fs.ErrNotExist) {
		m.logger.Warn("source vanished before move", logging.String(logging.FieldPath, src))
		fmt.Fprintf(m.out, "Skipping (vanished): %s\n", src)
		result.Disposition = DispositionVanished
		return result
	}

	if filepath.Dir(src) == bucketDir {
		fmt.Fprintf(m.out, "Skipping (already grouped): %s\n", src)
		result.Target = src
		result.Disposition = DispositionAlreadyGrouped
		return result
	}

	if m.dryRun {
		target, err := SafeDestination(bucketDir, filepath.Base(src))
		if err != nil {
			result.Disposition = DispositionFailed
			result.Err = Wrap(ErrFilesystem, "planning move", src, err)
			return result
		}
		fmt.Fprintf(m.out, "DRY-RUN: %s -> %s\n", src, target)
		result.Target = target
		result.Disposition = DispositionPlanned
		return result
	}

	if err := os.MkdirAll(bucketDir, 0o755); err != nil {
		result.Disposition = DispositionFailed
		result.Err = Wrap(ErrFilesystem, "creating bucket", bucketDir, err)
		return result
	}

	target, err := SafeDestination(bucketDir, filepath.Base(src))
	if err != nil {
		result.Disposition = DispositionFailed
		result.Err = Wrap(ErrFilesystem, "resolving target", src, err)
		return result
	}

	if err := fileutil.MoveFile(src, target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("source vanished during move", logging.String(logging.FieldPath, src))
			fmt.Fprintf(m.out, "Skipping (vanished): %s\n", src)
			result.Disposition = DispositionVanished
			return result
		}
		result.Disposition = DispositionFailed
		result.Err = Wrap(ErrFilesystem, "moving file", src, err)
		return result
	}

	m.logger.Debug("file moved",
		logging.String(logging.FieldPath, src),
		logging.String(logging.FieldBucket, key))
	fmt.Fprintf(m.out, "Moving: %s -> %s\n", src, target)
	result.Target = target
	result.Disposition = DispositionMoved
	return result
}
