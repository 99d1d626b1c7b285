package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned by Download when the object does not exist
	ErrNotFound = errors.New("file not found")
	// ErrInvalidFilename is returned for names with no usable base component
	ErrInvalidFilename = errors.New("invalid filename")
)

// Storage interface for file storage operations
type Storage interface {
	// Upload stores data under <userID>/<filename> and returns the storage path
	// and the number of bytes written. size may be -1 when unknown.
	Upload(ctx context.Context, userID, filename string, data io.Reader, size int64) (string, int64, error)

	// Download retrieves a file by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a file by storage path
	Delete(ctx context.Context, storagePath string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	S3Endpoint   string // Optional, S3-compatible endpoint (path-style)
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("S3 bucket is required for s3 storage")
		}
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// CleanFilename strips directory components from a client supplied name
func CleanFilename(filename string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "", ErrInvalidFilename
	}
	return name, nil
}

// StoragePath builds the "<userID>/<filename>" key for a file
func StoragePath(userID, filename string) (string, error) {
	if userID == "" || strings.ContainsAny(userID, `/\`) || userID == "." || userID == ".." {
		return "", fmt.Errorf("invalid user id %q", userID)
	}
	name, err := CleanFilename(filename)
	if err != nil {
		return "", err
	}
	return path.Join(userID, name), nil
}

// PublicURL is the path under which a stored file is served, each segment escaped
func PublicURL(storagePath string) string {
	segments := strings.Split(storagePath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/storage/" + strings.Join(segments, "/")
}

// getContentType determines content type from filename
func getContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// ContentType is the MIME type served for a stored file
func ContentType(filename string) string {
	return getContentType(filename)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
