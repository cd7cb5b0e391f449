package model

import (
	"context"
	"io"
)

// FileStore abstracts the file backend. Keys are (folder, name) pairs with a
// flat namespace per folder.
type FileStore interface {
	Save(ctx context.Context, folder, name string, reader io.Reader) error
	Open(ctx context.Context, folder, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, folder, name string) error
	List(ctx context.Context, folder string) ([]string, error)
	Exists(ctx context.Context, folder, name string) (bool, error)
}
