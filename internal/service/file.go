package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kozydev/kozy-server/internal/logger"
	"github.com/kozydev/kozy-server/internal/model"
)

const (
	// DefaultFolder is used when the caller does not name a folder.
	DefaultFolder = "uploads"

	// DefaultMaxUploadSize is the upload size ceiling in bytes (10 MiB).
	DefaultMaxUploadSize int64 = 10_485_760
)

// contentTypes maps lower-cased file extensions to MIME types. Unknown
// extensions resolve to application/octet-stream.
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".json": "application/json",
	".xml":  "application/xml",
	".zip":  "application/zip",
	".rar":  "application/x-rar-compressed",
	".7z":   "application/x-7z-compressed",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
}

// File manages a flat per-folder file namespace on the configured store.
// Every operation is a single synchronous unit of work; the store provides
// whatever consistency it natively offers.
type File struct {
	store  model.FileStore
	logger *logger.Logger
}

// NewFile creates a new File service.
func NewFile(store model.FileStore, logger *logger.Logger) *File {
	return &File{
		store:  store,
		logger: logger,
	}
}

// Upload stores the content under a fresh unique name built from a random
// UUID plus the original extension, discarding the rest of the supplied
// filename. Returns the generated name. Size zero or a nil reader is
// rejected with model.ErrEmptyFile.
func (f *File) Upload(ctx context.Context, filename string, size int64, reader io.Reader, folder string) (string, error) {
	if reader == nil || size == 0 {
		return "", model.ErrEmptyFile
	}
	folder = orDefault(folder)

	uniqueName := uuid.NewString() + f.FileExtension(filename)

	if err := f.store.Save(ctx, folder, uniqueName, reader); err != nil {
		f.logger.Error("File service: upload failed",
			"file_name", filename,
			"folder", folder,
			"error", err.Error())
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	f.logger.Info("File service: file uploaded",
		"file_name", uniqueName,
		"folder", folder)

	return uniqueName, nil
}

// Download returns the full contents of a stored file. A missing file is
// surfaced as model.ErrFileNotFound.
func (f *File) Download(ctx context.Context, name, folder string) ([]byte, error) {
	folder = orDefault(folder)

	reader, err := f.store.Open(ctx, folder, name)
	if err != nil {
		if isNotFound(err) {
			return nil, model.ErrFileNotFound
		}
		f.logger.Error("File service: download failed",
			"file_name", name,
			"folder", folder,
			"error", err.Error())
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f.logger.Info("File service: file downloaded",
		"file_name", name,
		"folder", folder)

	return data, nil
}

// Delete removes a stored file. A missing file yields false with no error;
// other failures propagate.
func (f *File) Delete(ctx context.Context, name, folder string) (bool, error) {
	folder = orDefault(folder)

	exists, err := f.store.Exists(ctx, folder, name)
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := f.store.Remove(ctx, folder, name); err != nil {
		if isNotFound(err) {
			// Raced with a concurrent delete.
			return false, nil
		}
		f.logger.Error("File service: delete failed",
			"file_name", name,
			"folder", folder,
			"error", err.Error())
		return false, fmt.Errorf("failed to remove file: %w", err)
	}

	f.logger.Info("File service: file deleted",
		"file_name", name,
		"folder", folder)

	return true, nil
}

// ListFiles returns the names of all entries directly inside the folder.
// A folder that was never created yields an empty slice, not an error.
func (f *File) ListFiles(ctx context.Context, folder string) ([]string, error) {
	folder = orDefault(folder)

	names, err := f.store.List(ctx, folder)
	if err != nil {
		f.logger.Error("File service: list failed",
			"folder", folder,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return names, nil
}

// IsValidFile is a pure predicate over filename and size: false for empty or
// oversize content, false when allowedExtensions is non-empty and the
// extension (case-insensitive) is not in the set.
func (f *File) IsValidFile(filename string, size int64, allowedExtensions []string, maxSizeBytes int64) bool {
	if size == 0 {
		return false
	}
	if size > maxSizeBytes {
		return false
	}

	if len(allowedExtensions) > 0 {
		ext := f.FileExtension(filename)
		allowed := false
		for _, a := range allowedExtensions {
			if strings.EqualFold(a, ext) {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	return true
}

// FileExtension returns the lower-cased extension including the leading dot,
// or an empty string if there is none.
func (f *File) FileExtension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// ContentType resolves the MIME type for a file name from its extension.
func (f *File) ContentType(name string) string {
	if ct, ok := contentTypes[f.FileExtension(name)]; ok {
		return ct
	}
	return "application/octet-stream"
}

func orDefault(folder string) string {
	if folder == "" {
		return DefaultFolder
	}
	return folder
}

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrFileNotFound) || errors.Is(err, model.ErrNotFound)
}
