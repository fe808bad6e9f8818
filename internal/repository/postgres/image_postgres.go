package postgres

import (
	"context"
	"database/sql"

	"imagehub/internal/imageid"
	"imagehub/internal/model"
	"imagehub/internal/repository"
)

// ImagePostgres is a PostgreSQL implementation of repository.ImageRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ImagePostgres struct {
	db *sql.DB
}

// NewImagePostgres creates a new ImagePostgres repository.
func NewImagePostgres(db *sql.DB) *ImagePostgres {
	return &ImagePostgres{db: db}
}

var _ repository.ImageRepository = (*ImagePostgres)(nil)

const imageColumns = `id, filename, storage_path, size, content_type, capture_date, theme, is_real, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanImage reads one image row, mapping nullable metadata columns onto the
// model's pointer fields.
func scanImage(row rowScanner) (*model.Image, error) {
	var (
		img    model.Image
		date   sql.NullInt64
		theme  sql.NullString
		real   sql.NullBool
		status sql.NullString
	)
	if err := row.Scan(
		&img.ID,
		&img.Filename,
		&img.StoragePath,
		&img.Size,
		&img.ContentType,
		&date,
		&theme,
		&real,
		&status,
		&img.CreatedAt,
	); err != nil {
		return nil, err
	}
	if date.Valid {
		img.Date = &date.Int64
	}
	if theme.Valid {
		img.Theme = &theme.String
	}
	if real.Valid {
		img.Real = &real.Bool
	}
	if status.Valid {
		s := model.Status(status.String)
		img.Status = &s
	}
	return &img, nil
}

func collectImages(rows *sql.Rows) ([]model.Image, error) {
	defer rows.Close()

	items := make([]model.Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new image row and returns the stored record.
func (r *ImagePostgres) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	const q = `
		INSERT INTO images (id, filename, storage_path, size, content_type, capture_date, theme, is_real, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + imageColumns
	row := r.db.QueryRowContext(ctx, q,
		img.ID,
		img.Filename,
		img.StoragePath,
		img.Size,
		img.ContentType,
		img.Date,
		img.Theme,
		img.Real,
		img.Status,
		img.CreatedAt,
	)
	return scanImage(row)
}

// FindByID fetches a single image by its ID.
func (r *ImagePostgres) FindByID(ctx context.Context, id imageid.ID) (*model.Image, error) {
	const q = `SELECT ` + imageColumns + ` FROM images WHERE id = $1`
	return scanImage(r.db.QueryRowContext(ctx, q, id.String()))
}

// ListAll returns every stored image.
func (r *ImagePostgres) ListAll(ctx context.Context) ([]model.Image, error) {
	const q = `SELECT ` + imageColumns + ` FROM images`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

// Delete removes an image row by ID. It does not return an error if the row
// does not exist.
func (r *ImagePostgres) Delete(ctx context.Context, id imageid.ID) error {
	const q = `DELETE FROM images WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id.String())
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// FindOneByStatus returns some image with the given status, or (nil, nil)
// when none exists.
func (r *ImagePostgres) FindOneByStatus(ctx context.Context, status model.Status) (*model.Image, error) {
	const q = `SELECT ` + imageColumns + ` FROM images WHERE status = $1 LIMIT 1`
	img, err := scanImage(r.db.QueryRowContext(ctx, q, status.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return img, err
}

// UpdateStatus performs an atomic find-and-set on the image's status.
// A missing ID yields (nil, nil).
func (r *ImagePostgres) UpdateStatus(ctx context.Context, id imageid.ID, status model.Status) (*model.Image, error) {
	const q = `UPDATE images SET status = $2 WHERE id = $1 RETURNING ` + imageColumns
	img, err := scanImage(r.db.QueryRowContext(ctx, q, id.String(), status.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return img, err
}

// DeleteByStatus removes every image with the given status and returns the
// deleted rows.
func (r *ImagePostgres) DeleteByStatus(ctx context.Context, status model.Status) ([]model.Image, error) {
	const q = `DELETE FROM images WHERE status = $1 RETURNING ` + imageColumns
	rows, err := r.db.QueryContext(ctx, q, status.String())
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

// FindByDate returns every image whose capture date equals day.
func (r *ImagePostgres) FindByDate(ctx context.Context, day int64) ([]model.Image, error) {
	const q = `SELECT ` + imageColumns + ` FROM images WHERE capture_date = $1`
	rows, err := r.db.QueryContext(ctx, q, day)
	if err != nil {
		return nil, err
	}
	return collectImages(rows)
}

// MaxDate returns the largest capture date over all images.
func (r *ImagePostgres) MaxDate(ctx context.Context) (int64, error) {
	const q = `SELECT MAX(capture_date) FROM images`
	var max sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q).Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		// No rows, or no row carries a capture date
		return 0, sql.ErrNoRows
	}
	return max.Int64, nil
}
