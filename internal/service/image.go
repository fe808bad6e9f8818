package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"imagehub/internal/imageid"
	"imagehub/internal/model"
	"imagehub/internal/repository"
	"imagehub/internal/storage"
)

var (
	ErrNotFound         = errors.New("image not found")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrReaderNil        = errors.New("reader is nil")
)

// UploadInput carries the already-decoded multipart fields for an upload.
// Date has no range validation; Theme is a free-form tag.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Date        int64
	Theme       string
	Real        bool
}

// PendingImage is one image awaiting review, with its content base64-encoded
// for inline embedding in the verification view.
type PendingImage struct {
	ID            string
	ContentType   string
	ContentBase64 string
}

// ImageService defines the use cases for storing and moderating images.
type ImageService interface {
	// Upload stores the content in object storage and its metadata in the
	// repository, rolling back storage if the metadata save fails. Every new
	// image starts with status unverified. Content whose declared type does
	// not begin with "image/" is rejected with ErrUnsupportedMedia before
	// anything is persisted; the declared type is never checked against the
	// actual bytes.
	Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Record, error)

	// ListAll returns every stored image's metadata.
	ListAll(ctx context.Context) ([]model.Image, error)

	// Content returns the raw bytes of an image as a stream, alongside the
	// stored metadata for response headers.
	Content(ctx context.Context, id imageid.ID) (io.ReadCloser, *model.Image, error)

	// Properties returns the external record for an image.
	Properties(ctx context.Context, id imageid.ID) (*model.Record, error)

	// Delete removes an image's blob and metadata, returning a record built
	// from the metadata as it was before deletion. Rows with partially
	// absent metadata are still deletable.
	Delete(ctx context.Context, id imageid.ID) (*model.Record, error)

	// NextUnverified fetches one image pending review, or (nil, nil) when
	// none is pending. There is no locking: two concurrent reviewers may be
	// handed the same image.
	NextUnverified(ctx context.Context) (*PendingImage, error)

	// UpdateStatus atomically sets an image's moderation status. A missing
	// ID yields (nil, nil) rather than an error.
	UpdateStatus(ctx context.Context, id imageid.ID, status model.Status) (*model.Image, error)

	// DeleteRejected removes every rejected image and returns how many were
	// deleted.
	DeleteRejected(ctx context.Context) (int64, error)

	// ImagesByDate returns records for every image captured on the given day.
	ImagesByDate(ctx context.Context, day int64) ([]model.Record, error)

	// LatestDate returns the most recent capture date across all images,
	// or ErrNotFound when the store is empty.
	LatestDate(ctx context.Context) (int64, error)
}

// imageService is a concrete implementation of ImageService.
type imageService struct {
	store storage.Storage
	repo  repository.ImageRepository
}

// NewImageService constructs a new ImageService.
func NewImageService(store storage.Storage, repo repository.ImageRepository) ImageService {
	return &imageService{store: store, repo: repo}
}

func (s *imageService) Upload(ctx context.Context, r io.Reader, in UploadInput) (*model.Record, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if in.Filename == "" || in.ContentType == "" || !strings.HasPrefix(in.ContentType, "image/") {
		return nil, ErrUnsupportedMedia
	}

	id := imageid.New()
	key := path.Join("images", id.String())

	// Upload to object storage
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	status := model.StatusUnverified
	img := &model.Image{
		ID:          id.String(),
		Filename:    in.Filename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: in.ContentType,
		Date:        &in.Date,
		Theme:       &in.Theme,
		Real:        &in.Real,
		Status:      &status,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, img)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	rec := stored.Record()
	return &rec, nil
}

func (s *imageService) ListAll(ctx context.Context) ([]model.Image, error) {
	return s.repo.ListAll(ctx)
}

func (s *imageService) Content(ctx context.Context, id imageid.ID) (io.ReadCloser, *model.Image, error) {
	img, err := s.findByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("get storage object: %w", err)
	}
	return rc, img, nil
}

func (s *imageService) Properties(ctx context.Context, id imageid.ID) (*model.Record, error) {
	img, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := img.Record()
	return &rec, nil
}

func (s *imageService) Delete(ctx context.Context, id imageid.ID) (*model.Record, error) {
	img, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The record must be captured before the deletes: the store does not
	// guarantee metadata is readable afterwards.
	rec := img.Record()

	if err := s.store.Delete(ctx, img.StoragePath); err != nil {
		return nil, fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *imageService) NextUnverified(ctx context.Context) (*PendingImage, error) {
	img, err := s.repo.FindOneByStatus(ctx, model.StatusUnverified)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, nil
	}

	rc, _, err := s.store.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("get storage object: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read storage object: %w", err)
	}

	return &PendingImage{
		ID:            img.ID,
		ContentType:   img.ContentType,
		ContentBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

func (s *imageService) UpdateStatus(ctx context.Context, id imageid.ID, status model.Status) (*model.Image, error) {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *imageService) DeleteRejected(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteByStatus(ctx, model.StatusRejected)
	if err != nil {
		return 0, err
	}
	// Blob cleanup is best effort: the rows are already gone and are the
	// source of truth, so a failed object delete only leaves an orphan blob.
	for _, img := range deleted {
		_ = s.store.Delete(ctx, img.StoragePath)
	}
	return int64(len(deleted)), nil
}

func (s *imageService) ImagesByDate(ctx context.Context, day int64) ([]model.Record, error) {
	imgs, err := s.repo.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	recs := make([]model.Record, 0, len(imgs))
	for i := range imgs {
		recs = append(recs, imgs[i].Record())
	}
	return recs, nil
}

func (s *imageService) LatestDate(ctx context.Context) (int64, error) {
	max, err := s.repo.MaxDate(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return max, nil
}

func (s *imageService) findByID(ctx context.Context, id imageid.ID) (*model.Image, error) {
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return img, nil
}
