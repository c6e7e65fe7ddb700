package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// acquireLock takes the run lock without blocking. ok is false when another
// process holds it. An empty path disables locking.
func acquireLock(path string) (release func(), ok bool, err error) {
	if path == "" {
		return func() {}, true, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, false, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, false, nil
	}
	return func() { _ = lock.Unlock() }, true, nil
}
