package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is an advisory file lock scoped to one destination root. It keeps a
// second live sortify run from interleaving moves into the same tree; it is
// best-effort, not a correctness guarantee.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes the lock for the given destination root, failing immediately
// when another process already holds it. The lock file lives in the system
// temp directory so it never appears among the files being sorted.
func Acquire(destRoot string) (*Lock, error) {
	path := lockPath(destRoot)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another sortify run is already active for %s", destRoot)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Release drops the lock and removes the lock file best-effort.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	err := l.fl.Unlock()
	_ = os.Remove(l.path)
	return err
}

// Path returns the lock file location, mainly for diagnostics.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

func lockPath(destRoot string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(destRoot)))
	name := fmt.Sprintf("sortify-%s.lock", hex.EncodeToString(sum[:8]))
	return filepath.Join(os.TempDir(), name)
}
