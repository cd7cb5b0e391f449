package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozydev/kozy-server/internal/model"
)

var _ model.FileStore = (*Store)(nil)

// Store keeps files on the local filesystem under a root directory. Folders
// are created on first save. Writes are not atomic; a crash mid-write can
// leave a partial file.
type Store struct {
	root string
}

// NewStore creates a disk store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// resolve joins root, folder and name and rejects any value that escapes the
// root directory.
func (s *Store) resolve(folder, name string) (string, error) {
	path := filepath.Join(s.root, folder, name)

	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root: %w", err)
	}
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if pathAbs != rootAbs && !strings.HasPrefix(pathAbs, rootAbs+string(filepath.Separator)) {
		return "", model.ErrInvalidPath
	}

	return path, nil
}

// Save writes the content to <root>/<folder>/<name>, creating the folder
// recursively if missing.
func (s *Store) Save(ctx context.Context, folder, name string, reader io.Reader) error {
	path, err := s.resolve(folder, name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Open returns a reader over the stored file, or model.ErrFileNotFound.
func (s *Store) Open(ctx context.Context, folder, name string) (io.ReadCloser, error) {
	path, err := s.resolve(folder, name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Remove deletes the stored file, mapping a missing file to
// model.ErrFileNotFound.
func (s *Store) Remove(ctx context.Context, folder, name string) error {
	path, err := s.resolve(folder, name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.ErrFileNotFound
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

// List returns all entry names directly inside the folder, non-recursive.
// A missing folder yields an empty slice.
func (s *Store) List(ctx context.Context, folder string) ([]string, error) {
	path, err := s.resolve(folder, "")
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

// Exists reports whether the file is present.
func (s *Store) Exists(ctx context.Context, folder, name string) (bool, error) {
	path, err := s.resolve(folder, name)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	return true, nil
}
