package skin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/zjrosen/skinstore/internal/fsutil"
	"github.com/zjrosen/skinstore/internal/log"
)

// lockRetryDelay is the polling interval while another process holds the
// store lock.
const lockRetryDelay = 25 * time.Millisecond

// lockPath returns the lock file guarding the store at path.
func lockPath(path string) string {
	return path + ".lock"
}

// Lock takes an exclusive lock on the store at path, waiting until ctx is
// done. Hold it from Open through Flush so concurrent writers do not drop
// each other's records. The returned function releases the lock.
func Lock(ctx context.Context, path string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	fl := flock.New(lockPath(path))
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("locking %s: lock held by another process", path)
	}
	log.Debug(log.CatStore, "Locked store", "lock", fl.Path())
	return fl.Unlock, nil
}

// ReadStoreFile reads the persisted store at path. A missing file is not an
// error and returns nil data.
func ReadStoreFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: store path comes from config
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(log.CatStore, "No store file yet", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Open reads the store at path and returns an initialized registry.
func Open(path string) (*Registry, error) {
	data, err := ReadStoreFile(path)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	if err := reg.Initialize(data); err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	log.Info(log.CatStore, "Opened store", "path", path, "records", reg.Len())
	return reg, nil
}

// Flush serializes reg and atomically replaces the store at path.
func Flush(reg *Registry, path string) error {
	data, err := reg.Serialize()
	if err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		log.ErrorErr(log.CatStore, "Failed to write store", err, "path", path)
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	log.Info(log.CatStore, "Flushed store", "path", path, "records", reg.Len(), "bytes", len(data))
	return nil
}
