package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/skinstore/internal/command"
	"github.com/zjrosen/skinstore/internal/config"
	"github.com/zjrosen/skinstore/internal/log"
	"github.com/zjrosen/skinstore/internal/paths"
	"github.com/zjrosen/skinstore/internal/skin"
	"github.com/zjrosen/skinstore/internal/tagtree"
)

// storeLockTimeout bounds how long a command waits for another process to
// release the store.
const storeLockTimeout = 10 * time.Second

// openRegistry loads the store, applying the corrupt_store policy when the
// file cannot be decoded.
func openRegistry(storePath string) (*skin.Registry, error) {
	reg, err := skin.Open(storePath)
	if err == nil {
		return reg, nil
	}

	var decErr *tagtree.DecodingError
	if !errors.As(err, &decErr) || cfg.CorruptStore != config.CorruptReset {
		return nil, err
	}

	log.Warn(log.CatStore, "Store is corrupt, starting empty", "path", storePath, "error", err)
	reg = skin.NewRegistry()
	if err := reg.Initialize(nil); err != nil {
		return nil, err
	}
	return reg, nil
}

func newSession(reg *skin.Registry) *command.Session {
	return command.NewSession(reg,
		command.WithLiveSlot(cfg.LiveSlot),
		command.WithDataDir(cfg.DataDir),
		command.WithGeometryPrefix(cfg.GeometryPrefix),
	)
}

// withSession runs fn between opening the store and flushing it back, all
// under the store lock. The store is flushed even when fn fails, mirroring
// an orderly shutdown.
func withSession(ctx context.Context, fn func(*command.Session) error) error {
	storePath := paths.StorePath(cfg.DataDir, cfg.StoreFile)

	lockCtx, cancel := context.WithTimeout(ctx, storeLockTimeout)
	defer cancel()
	unlock, err := skin.Lock(lockCtx, storePath)
	if err != nil {
		return fmt.Errorf("opening skin store: %w", err)
	}
	defer func() {
		if err := unlock(); err != nil {
			log.ErrorErr(log.CatStore, "Failed to release store lock", err, "path", storePath)
		}
	}()

	reg, err := openRegistry(storePath)
	if err != nil {
		return fmt.Errorf("opening skin store: %w", err)
	}

	runErr := fn(newSession(reg))
	if err := skin.Flush(reg, storePath); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// withReadOnlySession runs fn against the store without flushing it. The
// store is replaced by rename, so no lock is needed to read a consistent
// snapshot.
func withReadOnlySession(fn func(*command.Session) error) error {
	storePath := paths.StorePath(cfg.DataDir, cfg.StoreFile)

	reg, err := openRegistry(storePath)
	if err != nil {
		return fmt.Errorf("reading skin store: %w", err)
	}
	return fn(newSession(reg))
}
