package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozydev/kozy-server/internal/logger"
)

// FileService defines file storage operations consumed over HTTP.
type FileService interface {
	Upload(ctx context.Context, filename string, size int64, reader io.Reader, folder string) (string, error)
	Download(ctx context.Context, name, folder string) ([]byte, error)
	Delete(ctx context.Context, name, folder string) (bool, error)
	ListFiles(ctx context.Context, folder string) ([]string, error)
	ContentType(name string) string
}

// File handles HTTP endpoints for file storage.
type File struct {
	fileService   FileService
	maxUploadSize int64
	logger        *logger.Logger
}

// NewFile creates a new File handler.
func NewFile(fileService FileService, maxUploadSize int64, logger *logger.Logger) *File {
	return &File{
		fileService:   fileService,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

type uploadResponse struct {
	FileName string `json:"fileName"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// Upload accepts a multipart form with a "file" part and an optional
// "folder" field, stores the content under a generated name and returns it.
func (h *File) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is empty or missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")

	h.logger.Debug("File handler: processing upload",
		"file_name", header.Filename,
		"folder", folder)

	name, err := h.fileService.Upload(r.Context(), header.Filename, header.Size, file, folder)
	if err != nil {
		h.logger.Error("File handler: upload failed",
			"file_name", header.Filename,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{FileName: name})
}

// Download streams the full file contents with the resolved content type.
func (h *File) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	folder := r.URL.Query().Get("folder")

	data, err := h.fileService.Download(r.Context(), name, folder)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", h.fileService.ContentType(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Delete removes a stored file; a missing file reports deleted=false.
func (h *File) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	folder := r.URL.Query().Get("folder")

	deleted, err := h.fileService.Delete(r.Context(), name, folder)
	if err != nil {
		h.logger.Error("File handler: delete failed",
			"file_name", name,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted})
}

// List returns the names of all files in the folder.
func (h *File) List(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")

	names, err := h.fileService.ListFiles(r.Context(), folder)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, names)
}
