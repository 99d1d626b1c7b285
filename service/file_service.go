package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"casedesk-backend/logger"
	"casedesk-backend/metrics"
	"casedesk-backend/models"
	"casedesk-backend/repository"
	"casedesk-backend/storage"
)

// FileService stores dispute documents and serves them back to their owner
type FileService struct {
	storage  storage.Storage
	disputes *repository.DisputeRepository
	metrics  *metrics.Metrics
}

// FileServiceOption is a functional option for FileService
type FileServiceOption func(*FileService)

// WithStorage sets the storage backend
func WithStorage(s storage.Storage) FileServiceOption {
	return func(f *FileService) {
		f.storage = s
	}
}

// WithFileDisputeRepository sets the dispute repository documents are attached to
func WithFileDisputeRepository(repo *repository.DisputeRepository) FileServiceOption {
	return func(f *FileService) {
		f.disputes = repo
	}
}

// WithFileMetrics sets the metrics sink
func WithFileMetrics(m *metrics.Metrics) FileServiceOption {
	return func(f *FileService) {
		f.metrics = m
	}
}

// NewFileService creates a new file service
func NewFileService(opts ...FileServiceOption) *FileService {
	f := &FileService{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FileUpload is one uploaded file. Size is -1 when unknown.
type FileUpload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// UploadDocumentsRequest represents a document upload to an owned dispute
type UploadDocumentsRequest struct {
	UserID    string
	DisputeID string
	Files     []FileUpload
}

// UploadDocuments writes each file under the owner's directory and appends the
// metadata to the dispute. Files written before a failure are left in place.
func (f *FileService) UploadDocuments(ctx context.Context, req UploadDocumentsRequest) ([]models.DisputeFileMetadata, error) {
	if f.storage == nil || f.disputes == nil {
		return nil, errors.New("file service not configured")
	}
	if _, ok := f.disputes.GetOwned(ctx, req.DisputeID, req.UserID); !ok {
		return nil, ErrDisputeNotFound
	}
	if len(req.Files) == 0 {
		return nil, ErrNoFiles
	}

	log := logger.From(ctx).With(logger.Op("files.upload"), logger.DisputeID(req.DisputeID))
	saved := make([]models.DisputeFileMetadata, 0, len(req.Files))
	var total int64
	for _, file := range req.Files {
		meta, err := f.save(ctx, req.UserID, file)
		if err != nil {
			log.Warn("document upload aborted", logger.Filename(file.Filename), logger.Count(len(saved)), logger.Err(err))
			return nil, err
		}
		f.metrics.DocumentStored(meta.SizeBytes)
		saved = append(saved, meta)
		total += meta.SizeBytes
	}

	if _, ok := f.disputes.AppendDocuments(ctx, req.DisputeID, req.UserID, saved); !ok {
		return nil, ErrDisputeNotFound
	}
	log.Info("documents stored", logger.UserID(req.UserID), logger.Count(len(saved)), logger.Bytes(total))
	return saved, nil
}

func (f *FileService) save(ctx context.Context, userID string, file FileUpload) (models.DisputeFileMetadata, error) {
	name, err := storage.CleanFilename(file.Filename)
	if err != nil {
		return models.DisputeFileMetadata{}, ErrBadFile
	}
	rc, err := file.Open()
	if err != nil {
		return models.DisputeFileMetadata{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	path, written, err := f.storage.Upload(ctx, userID, name, rc, file.Size)
	if err != nil {
		return models.DisputeFileMetadata{}, fmt.Errorf("store %s: %w", name, err)
	}
	return models.DisputeFileMetadata{
		Filename:  name,
		URL:       storage.PublicURL(path),
		SizeBytes: written,
	}, nil
}

// OpenDocument returns a stored file when the caller owns it
func (f *FileService) OpenDocument(ctx context.Context, callerID, ownerID, filename string) (io.ReadCloser, string, error) {
	if f.storage == nil {
		return nil, "", errors.New("file service not configured")
	}
	if callerID != ownerID {
		return nil, "", ErrFileNotFound
	}
	path, err := storage.StoragePath(ownerID, filename)
	if err != nil {
		return nil, "", ErrFileNotFound
	}
	rc, err := f.storage.Download(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrFileNotFound
		}
		return nil, "", err
	}
	name, _ := storage.CleanFilename(filename)
	return rc, name, nil
}
