package repository

import (
	"context"

	"imagehub/internal/imageid"
	"imagehub/internal/model"
)

// ImageRepository defines metadata access for images using SQL queries only.
// Blob content lives in object storage and is addressed through
// Image.StoragePath.
type ImageRepository interface {
	// Create inserts a new image row and returns the stored record.
	Create(ctx context.Context, img *model.Image) (*model.Image, error)

	// FindByID returns an image by its ID. A missing row surfaces as
	// sql.ErrNoRows.
	FindByID(ctx context.Context, id imageid.ID) (*model.Image, error)

	// ListAll returns every stored image. Order is unspecified.
	ListAll(ctx context.Context) ([]model.Image, error)

	// Delete removes an image row by ID. It returns nil if the row was
	// deleted or did not exist.
	Delete(ctx context.Context, id imageid.ID) error

	// FindOneByStatus returns some image with the given status, or (nil, nil)
	// when none exists. Which image is "first" is store-defined.
	FindOneByStatus(ctx context.Context, status model.Status) (*model.Image, error)

	// UpdateStatus atomically sets the status of the image with the given ID
	// and returns the updated row. A missing ID yields (nil, nil), not an
	// error.
	UpdateStatus(ctx context.Context, id imageid.ID, status model.Status) (*model.Image, error)

	// DeleteByStatus removes every image with the given status and returns
	// the deleted rows so callers can clean up the associated blobs.
	DeleteByStatus(ctx context.Context, status model.Status) ([]model.Image, error)

	// FindByDate returns every image whose capture date equals day.
	FindByDate(ctx context.Context, day int64) ([]model.Image, error)

	// MaxDate returns the largest capture date over all images. An empty
	// store surfaces as sql.ErrNoRows.
	MaxDate(ctx context.Context) (int64, error)
}
