package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// FileStore is a mock implementation of model.FileStore.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Save(ctx context.Context, folder, name string, reader io.Reader) error {
	args := m.Called(ctx, folder, name, reader)
	return args.Error(0)
}

func (m *FileStore) Open(ctx context.Context, folder, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, folder, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *FileStore) Remove(ctx context.Context, folder, name string) error {
	args := m.Called(ctx, folder, name)
	return args.Error(0)
}

func (m *FileStore) List(ctx context.Context, folder string) ([]string, error) {
	args := m.Called(ctx, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *FileStore) Exists(ctx context.Context, folder, name string) (bool, error) {
	args := m.Called(ctx, folder, name)
	return args.Bool(0), args.Error(1)
}
