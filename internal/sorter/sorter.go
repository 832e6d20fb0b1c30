package sorter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"sortify/internal/logging"
)

// Summary aggregates the outcome of a sorting pass.
type Summary struct {
	Destination string
	DryRun      bool
	Results     []MoveResult
}

// Count returns how many results ended with the given disposition.
func (s *Summary) Count(d Disposition) int {
	n := 0
	for _, r := range s.Results {
		if r.Disposition == d {
			n++
		}
	}
	return n
}

// Failures returns the results that errored.
func (s *Summary) Failures() []MoveResult {
	var failed []MoveResult
	for _, r := range s.Results {
		if r.Disposition == DispositionFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Runner executes one complete sorting pass: validate the root, discover
// candidates, then move (or simulate) them sequentially.
type Runner struct {
	cfg    Config
	logger *slog.Logger
	out    io.Writer
}

// NewRunner constructs a runner writing user-facing output to out.
func NewRunner(cfg Config, logger *slog.Logger, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "sorter"),
		out:    out,
	}
}

// Run performs the pass. The returned summary is valid even on cancellation;
// an ErrInvalidRoot failure is reported before any filesystem mutation.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	root, err := r.cfg.RootPath()
	if err != nil {
		return nil, Wrap(ErrInvalidRoot, "resolving root", r.cfg.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, Wrap(ErrInvalidRoot, "validating root",
			fmt.Sprintf("%s does not exist or is not a directory", root), err)
	}

	dest, err := r.cfg.DestinationRoot()
	if err != nil {
		return nil, Wrap(ErrInvalidRoot, "resolving destination", r.cfg.DestDir, err)
	}

	summary := &Summary{Destination: dest, DryRun: r.cfg.DryRun}

	files, err := Scan(root, dest, ScanOptions{
		IncludeDotfiles: r.cfg.IncludeDotfiles,
		IncludeCode:     r.cfg.IncludeCode,
	}, r.logger)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		fmt.Fprintln(r.out, "No files to process with the current filters.")
		return summary, nil
	}

	if !r.cfg.DryRun {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return nil, Wrap(ErrFilesystem, "ensuring destination", dest, err)
		}
		if !r.cfg.Interactive {
			fmt.Fprintf(r.out, "About to move %d file(s). "+
				"Use --dry-run to preview without changes, or --interactive for guided setup.\n",
				len(files))
		}
	}

	r.logger.Info("starting sorting pass",
		logging.String("root", root),
		logging.String("destination", dest),
		logging.Int("candidates", len(files)),
		logging.Bool("dry_run", r.cfg.DryRun))

	mover := NewMover(dest, r.cfg.DryRun, r.logger, r.out)
	for _, path := range files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, Wrap(ErrCancelled, "sorting", "interrupted", ctxErr)
		}
		result := mover.Move(path)
		if result.Err != nil {
			r.logger.Warn("move failed",
				logging.String(logging.FieldPath, path),
				logging.Error(result.Err))
			fmt.Fprintf(r.out, "Failed: %s (%v)\n", path, result.Err)
		}
		summary.Results = append(summary.Results, result)
	}

	suffix := ""
	if r.cfg.DryRun {
		suffix = " (dry-run)"
	}
	fmt.Fprintf(r.out, "\nDone.%s\n", suffix)
	fmt.Fprintf(r.out, "Destination: %s\n", dest)

	r.logger.Info("sorting pass finished",
		logging.Int("moved", summary.Count(DispositionMoved)),
		logging.Int("planned", summary.Count(DispositionPlanned)),
		logging.Int("already_grouped", summary.Count(DispositionAlreadyGrouped)),
		logging.Int("failed", summary.Count(DispositionFailed)))

	return summary, nil
}
