package sorter_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sortify/internal/logging"
	"sortify/internal/sorter"
	"sortify/internal/testsupport"
)

func TestRunWorkedExample(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MakeTree(t, cfg.Root, map[string]string{
		"a.txt":     "a",
		"b.TXT":     "b",
		".secret":   "s",
		"notes.py":  "n",
		"README.md": "r",
	})

	var out bytes.Buffer
	summary, err := sorter.NewRunner(cfg, logging.NewNop(), &out).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := summary.Count(sorter.DispositionMoved); got != 2 {
		t.Fatalf("expected 2 moves, got %d", got)
	}

	bucket := filepath.Join(cfg.Root, "sorted_by_extension", "txt")
	for _, name := range []string{"a.txt", "b.TXT"} {
		if _, err := os.Lstat(filepath.Join(bucket, name)); err != nil {
			t.Errorf("expected %s in txt bucket: %v", name, err)
		}
	}
	for _, name := range []string{".secret", "notes.py", "README.md"} {
		if _, err := os.Lstat(filepath.Join(cfg.Root, name)); err != nil {
			t.Errorf("filtered file %s must stay put: %v", name, err)
		}
	}
	if !strings.Contains(out.String(), "Done.") {
		t.Fatalf("expected completion banner, got %q", out.String())
	}
}

func TestRunNoDataLoss(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDotfiles(), testsupport.WithCode())
	testsupport.MakeTree(t, cfg.Root, map[string]string{
		"a.txt":         "a",
		"sub/b.pdf":     "b",
		"sub/deep/c":    "c",
		".hidden":       "h",
		"script.sh":     "s",
		"sub/README.md": "r",
	})
	before := testsupport.CountFiles(t, cfg.Root)

	_, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if after := testsupport.CountFiles(t, cfg.Root); after != before {
		t.Fatalf("file count changed: %d before, %d after", before, after)
	}
}

func TestRunIdempotentInPlace(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDestDir("."))
	testsupport.MakeTree(t, cfg.Root, map[string]string{
		"a.txt":     "a",
		"b.pdf":     "b",
		"sub/c.txt": "c",
	})

	first, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if got := first.Count(sorter.DispositionMoved); got != 3 {
		t.Fatalf("expected 3 moves on first pass, got %d", got)
	}

	var out bytes.Buffer
	second, err := sorter.NewRunner(cfg, logging.NewNop(), &out).Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := second.Count(sorter.DispositionMoved); got != 0 {
		t.Fatalf("second pass moved %d file(s); expected none", got)
	}
	if !strings.Contains(out.String(), "No files to process with the current filters.") {
		t.Fatalf("expected idle message, got %q", out.String())
	}
}

func TestRunSkipsDestinationSubtree(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MakeTree(t, cfg.Root, map[string]string{"a.txt": "a"})

	if _, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// A second pass must not reprocess files already inside the destination.
	summary, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(summary.Results) != 0 {
		t.Fatalf("destination contents were reprocessed: %+v", summary.Results)
	}
	if _, err := os.Lstat(filepath.Join(cfg.Root, "sorted_by_extension", "txt", "a.txt")); err != nil {
		t.Fatalf("sorted file missing: %v", err)
	}
}

func TestRunCollisionKeepsBothFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MakeTree(t, cfg.Root, map[string]string{
		"one/x.txt": "first",
		"two/x.txt": "second",
	})

	summary, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := summary.Count(sorter.DispositionMoved); got != 2 {
		t.Fatalf("expected 2 moves, got %d", got)
	}

	bucket := filepath.Join(cfg.Root, "sorted_by_extension", "txt")
	entries, err := os.ReadDir(bucket)
	if err != nil {
		t.Fatalf("read bucket: %v", err)
	}
	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	if !names["x.txt"] || !names["x (1).txt"] {
		t.Fatalf("expected x.txt and x (1).txt, got %v", names)
	}
}

func TestRunDryRunLeavesTreeUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDryRun())
	testsupport.MakeTree(t, cfg.Root, map[string]string{
		"a.txt":     "a",
		"sub/b.pdf": "b",
	})
	before := testsupport.CountFiles(t, cfg.Root)

	var out bytes.Buffer
	summary, err := sorter.NewRunner(cfg, logging.NewNop(), &out).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := summary.Count(sorter.DispositionPlanned); got != 2 {
		t.Fatalf("expected 2 planned, got %d", got)
	}
	if summary.Count(sorter.DispositionMoved) != 0 {
		t.Fatal("dry-run must not move files")
	}
	if _, err := os.Lstat(filepath.Join(cfg.Root, "sorted_by_extension")); !os.IsNotExist(err) {
		t.Fatal("dry-run must not create the destination")
	}
	if after := testsupport.CountFiles(t, cfg.Root); after != before {
		t.Fatalf("dry-run changed the tree: %d before, %d after", before, after)
	}
	if !strings.Contains(out.String(), "Done. (dry-run)") {
		t.Fatalf("expected dry-run banner, got %q", out.String())
	}
}

func TestRunDestinationOutsideRoot(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sorted")
	cfg := testsupport.NewConfig(t, testsupport.WithDestDir(dest))
	testsupport.MakeTree(t, cfg.Root, map[string]string{"a.txt": "a"})

	summary, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := summary.Count(sorter.DispositionMoved); got != 1 {
		t.Fatalf("expected 1 move, got %d", got)
	}
	if _, err := os.Lstat(filepath.Join(dest, "txt", "a.txt")); err != nil {
		t.Fatalf("expected file in external destination: %v", err)
	}
	if n := testsupport.CountFiles(t, cfg.Root); n != 0 {
		t.Fatalf("expected empty root after move, got %d file(s)", n)
	}
}

func TestRunInvalidRoot(t *testing.T) {
	cfg := sorter.Config{Root: filepath.Join(t.TempDir(), "missing"), DestDir: "sorted"}

	_, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(context.Background())
	if !errors.Is(err, sorter.ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot, got %v", err)
	}
}

func TestRunRootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	testsupport.WriteFile(t, file, "x")

	cfg := sorter.Config{Root: file, DestDir: "sorted"}
	_, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(context.Background())
	if !errors.Is(err, sorter.ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot for file root, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MakeTree(t, cfg.Root, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := sorter.NewRunner(cfg, logging.NewNop(), nil).Run(ctx)
	if !errors.Is(err, sorter.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if summary == nil {
		t.Fatal("summary must be returned even on cancellation")
	}
	if summary.Count(sorter.DispositionMoved) != 0 {
		t.Fatal("no file should move after cancellation")
	}
}
