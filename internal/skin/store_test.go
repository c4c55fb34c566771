package skin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/skinstore/internal/tagtree"
)

func TestReadStoreFile_Missing(t *testing.T) {
	data, err := ReadStoreFile(filepath.Join(t.TempDir(), "skinList.dat"))
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestReadStoreFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skinList.dat")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	data, err := ReadStoreFile(path)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Empty(t, data)
}

func TestOpen_MissingFileGivesEmptyRegistry(t *testing.T) {
	reg, err := Open(filepath.Join(t.TempDir(), "skinList.dat"))
	require.NoError(t, err)
	require.Equal(t, StateReady, reg.state)
	require.Equal(t, 0, reg.Len())
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skinList.dat")
	require.NoError(t, os.WriteFile(path, []byte{0x0a, 0x00, 0x00, 0x07}, 0o644))

	_, err := Open(path)
	var decErr *tagtree.DecodingError
	require.True(t, errors.As(err, &decErr))
	require.Contains(t, err.Error(), path)
}

func TestFlushThenOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "skinList.dat")

	reg, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, reg.Put("steve", steveRecord()))
	require.NoError(t, Flush(reg, path))

	reopened, err := Open(path)
	require.NoError(t, err)
	got, ok := reopened.Get("steve")
	require.True(t, ok)
	require.True(t, steveRecord().Equal(got))
}

func TestFlush_UninitializedLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skinList.dat")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

	err := Flush(NewRegistry(), path)
	require.ErrorIs(t, err, ErrNotInitialized)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "keep", string(data))
}

// === Unit Tests: Lock ===

func TestLock_ExcludesSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "skinList.dat")

	unlock, err := Lock(context.Background(), path)
	require.NoError(t, err)
	require.FileExists(t, lockPath(path))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = Lock(ctx, path)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock())

	unlock, err = Lock(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestLock_ConcurrentSessionsKeepEveryRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skinList.dat")

	session := func(name string) error {
		unlock, err := Lock(context.Background(), path)
		if err != nil {
			return err
		}
		defer func() { _ = unlock() }()

		reg, err := Open(path)
		if err != nil {
			return err
		}
		if err := reg.Put(name, steveRecord()); err != nil {
			return err
		}
		return Flush(reg, path)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			errs <- session(name)
		}(fmt.Sprintf("skin-%d", i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	reg, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, []string{"skin-0", "skin-1", "skin-2", "skin-3", "skin-4", "skin-5", "skin-6", "skin-7"}, reg.Names())
}
