package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/osse101/PixelPet_Go/internal/concurrency"
	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/utils"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStore writes one file per key into a directory. Writes replace the file atomically.
type FileStore struct {
	dir   string
	locks *concurrency.LockManager
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, FileStoreDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	slog.Default().Info(LogMsgStoreOpened, "backend", "file", "dir", dir)
	return &FileStore{dir: dir, locks: concurrency.NewLockManager()}, nil
}

func (f *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: invalid store key %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(f.dir, key+FileStoreExtension), nil
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	lock := f.locks.GetLock(key)
	lock.Lock()
	defer lock.Unlock()

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrContextGet, key, err)
	}
	return data, nil
}

func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	lock := f.locks.GetLock(key)
	lock.Lock()
	defer lock.Unlock()

	return utils.WriteFileAtomic(p, value, FileStoreFilePermissions)
}

func (f *FileStore) Remove(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	lock := f.locks.GetLock(key)
	lock.Lock()
	defer lock.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s %q: %w", ErrContextRemove, key, err)
	}
	return nil
}
