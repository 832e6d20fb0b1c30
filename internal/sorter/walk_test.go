package sorter_test

import (
	"path/filepath"
	"sort"
	"testing"

	"sortify/internal/logging"
	"sortify/internal/sorter"
	"sortify/internal/testsupport"
)

func scan(t *testing.T, root, dest string, opts sorter.ScanOptions) []string {
	t.Helper()
	files, err := sorter.Scan(root, dest, opts, logging.NewNop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return files
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	sort.Strings(names)
	return names
}

func TestScanEmptyTree(t *testing.T) {
	root := t.TempDir()
	files := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{})
	if len(files) != 0 {
		t.Fatalf("expected empty scan, got %v", files)
	}
}

func TestScanDefaultFilters(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeTree(t, root, map[string]string{
		"a.txt":     "a",
		"b.TXT":     "b",
		".secret":   "s",
		"notes.py":  "n",
		"README.md": "r",
	})

	files := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{})
	got := baseNames(files)
	want := []string{"a.txt", "b.TXT"}
	if len(got) != len(want) || got[0] != "a.txt" || got[1] != "b.TXT" {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScanIncludeDotfiles(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeTree(t, root, map[string]string{".secret": "s", "a.txt": "a"})

	files := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{IncludeDotfiles: true})
	if len(files) != 2 {
		t.Fatalf("expected dotfile included, got %v", files)
	}
}

func TestScanIncludeCode(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeTree(t, root, map[string]string{"notes.py": "n", "conf.yaml": "y", "a.txt": "a"})

	defaultFiles := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{})
	if len(defaultFiles) != 1 {
		t.Fatalf("expected code filtered by default, got %v", defaultFiles)
	}

	files := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{IncludeCode: true})
	if len(files) != 3 {
		t.Fatalf("expected code included, got %v", files)
	}
}

func TestScanReadmeProtectedAtRootOnly(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeTree(t, root, map[string]string{
		"ReadMe.MD":      "root readme",
		"docs/README.md": "nested readme",
	})

	files := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{IncludeDotfiles: true, IncludeCode: true})
	if len(files) != 1 {
		t.Fatalf("expected only nested readme, got %v", files)
	}
	if filepath.Base(filepath.Dir(files[0])) != "docs" {
		t.Fatalf("expected docs/README.md, got %s", files[0])
	}
}

func TestScanPrunesDestinationSubtree(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeTree(t, root, map[string]string{
		"a.txt":                          "a",
		"sorted/txt/old.txt":             "already sorted",
		"sorted_backup/keep.txt":         "similar sibling name",
		"nested/deep/b.pdf":              "b",
		"sorted/no_ext/previously_moved": "x",
	})

	files := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{})
	got := baseNames(files)
	for _, name := range got {
		if name == "old.txt" || name == "previously_moved" {
			t.Fatalf("destination subtree leaked into scan: %v", got)
		}
	}
	// The similarly named sibling must not be mistaken for the destination.
	found := false
	for _, name := range got {
		if name == "keep.txt" {
			found = true
		}
	}
	if !found {
		t.Fatalf("sibling with destination-like prefix was wrongly pruned: %v", got)
	}
	if len(got) != 3 {
		t.Fatalf("expected a.txt, b.pdf, keep.txt, got %v", got)
	}
}

func TestScanInPlaceSkipsAlreadyGrouped(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeTree(t, root, map[string]string{
		"txt/a.txt": "already grouped",
		"b.txt":     "needs a move",
		"txt/c.pdf": "wrong bucket for pdf",
	})

	files := scan(t, root, root, sorter.ScanOptions{})
	got := baseNames(files)
	if len(got) != 2 || got[0] != "b.txt" || got[1] != "c.pdf" {
		t.Fatalf("expected b.txt and c.pdf, got %v", got)
	}
}

func TestScanDestinationDisjointFromRoot(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	testsupport.MakeTree(t, root, map[string]string{"a.txt": "a", "sub/b.pdf": "b"})

	files := scan(t, root, filepath.Join(elsewhere, "sorted"), sorter.ScanOptions{})
	if len(files) != 2 {
		t.Fatalf("expected both files with disjoint destination, got %v", files)
	}
}

func TestScanOrderIsDeterministic(t *testing.T) {
	root := t.TempDir()
	testsupport.MakeTree(t, root, map[string]string{
		"z.txt":     "z",
		"a.txt":     "a",
		"mid/m.txt": "m",
	})

	first := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{})
	second := scan(t, root, filepath.Join(root, "sorted"), sorter.ScanOptions{})
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 files, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("scan order not reproducible: %v vs %v", first, second)
		}
	}
	// Lexical walk order: a.txt, then the mid subtree, then z.txt.
	if filepath.Base(first[0]) != "a.txt" || filepath.Base(first[2]) != "z.txt" {
		t.Fatalf("unexpected walk order: %v", first)
	}
}
