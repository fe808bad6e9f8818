package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"imagehub/internal/imageid"
	"imagehub/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var imageCols = []string{"id", "filename", "storage_path", "size", "content_type", "capture_date", "theme", "is_real", "status", "created_at"}

func testImage() *model.Image {
	date := int64(5)
	theme := "nature"
	real := true
	status := model.StatusUnverified
	return &model.Image{
		ID:          "621f1d71aec9313aa2b9074c",
		Filename:    "sample.png",
		StoragePath: "images/621f1d71aec9313aa2b9074c",
		Size:        4,
		ContentType: "image/png",
		Date:        &date,
		Theme:       &theme,
		Real:        &real,
		Status:      &status,
		CreatedAt:   time.Now().UTC(),
	}
}

func addImageRow(rows *sqlmock.Rows, img *model.Image) *sqlmock.Rows {
	return rows.AddRow(
		img.ID, img.Filename, img.StoragePath, img.Size, img.ContentType,
		*img.Date, *img.Theme, *img.Real, img.Status.String(), img.CreatedAt,
	)
}

func TestImagePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()

	img := testImage()
	rows := addImageRow(sqlmock.NewRows(imageCols), img)

	mock.ExpectQuery("INSERT INTO images").
		WithArgs(img.ID, img.Filename, img.StoragePath, img.Size, img.ContentType,
			*img.Date, *img.Theme, *img.Real, img.Status.String(), img.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, img)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, img.ID, result.ID)
	assert.Equal(t, model.StatusUnverified, *result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImagePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()
	id := imageid.ID("621f1d71aec9313aa2b9074c")

	t.Run("found", func(t *testing.T) {
		rows := addImageRow(sqlmock.NewRows(imageCols), testImage())

		mock.ExpectQuery("SELECT (.+) FROM images WHERE id = ?").
			WithArgs(id.String()).
			WillReturnRows(rows)

		img, err := repo.FindByID(ctx, id)

		assert.NoError(t, err)
		require.NotNil(t, img)
		assert.Equal(t, id.String(), img.ID)
		assert.Equal(t, "image/png", img.ContentType)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM images WHERE id = ?").
			WithArgs(id.String()).
			WillReturnError(sql.ErrNoRows)

		img, err := repo.FindByID(ctx, id)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, img)
	})

	t.Run("null metadata columns", func(t *testing.T) {
		rows := sqlmock.NewRows(imageCols).
			AddRow(id.String(), "legacy.png", "images/"+id.String(), 4, "image/png",
				nil, nil, nil, nil, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM images WHERE id = ?").
			WithArgs(id.String()).
			WillReturnRows(rows)

		img, err := repo.FindByID(ctx, id)

		assert.NoError(t, err)
		require.NotNil(t, img)
		assert.Nil(t, img.Date)
		assert.Nil(t, img.Theme)
		assert.Nil(t, img.Real)
		assert.Nil(t, img.Status)
	})
}

func TestImagePostgres_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()

	rows := addImageRow(sqlmock.NewRows(imageCols), testImage())
	mock.ExpectQuery("SELECT (.+) FROM images").WillReturnRows(rows)

	items, err := repo.ListAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestImagePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()
	id := imageid.ID("621f1d71aec9313aa2b9074c")

	mock.ExpectExec("DELETE FROM images WHERE id = ?").
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImagePostgres_FindOneByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := addImageRow(sqlmock.NewRows(imageCols), testImage())

		mock.ExpectQuery("SELECT (.+) FROM images WHERE status = (.+) LIMIT 1").
			WithArgs("unverified").
			WillReturnRows(rows)

		img, err := repo.FindOneByStatus(ctx, model.StatusUnverified)

		assert.NoError(t, err)
		require.NotNil(t, img)
		assert.Equal(t, model.StatusUnverified, *img.Status)
	})

	t.Run("none pending", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM images WHERE status = (.+) LIMIT 1").
			WithArgs("unverified").
			WillReturnError(sql.ErrNoRows)

		img, err := repo.FindOneByStatus(ctx, model.StatusUnverified)

		assert.NoError(t, err)
		assert.Nil(t, img)
	})
}

func TestImagePostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()
	id := imageid.ID("621f1d71aec9313aa2b9074c")

	t.Run("found", func(t *testing.T) {
		img := testImage()
		verified := model.StatusVerified
		img.Status = &verified
		rows := addImageRow(sqlmock.NewRows(imageCols), img)

		mock.ExpectQuery("UPDATE images SET status = (.+) WHERE id = (.+) RETURNING").
			WithArgs(id.String(), "verified").
			WillReturnRows(rows)

		got, err := repo.UpdateStatus(ctx, id, model.StatusVerified)

		assert.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.StatusVerified, *got.Status)
	})

	t.Run("missing id yields nil, nil", func(t *testing.T) {
		mock.ExpectQuery("UPDATE images SET status = (.+) WHERE id = (.+) RETURNING").
			WithArgs(id.String(), "verified").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.UpdateStatus(ctx, id, model.StatusVerified)

		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestImagePostgres_DeleteByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()

	img := testImage()
	rejected := model.StatusRejected
	img.Status = &rejected
	rows := addImageRow(sqlmock.NewRows(imageCols), img)

	mock.ExpectQuery("DELETE FROM images WHERE status = (.+) RETURNING").
		WithArgs("rejected").
		WillReturnRows(rows)

	deleted, err := repo.DeleteByStatus(ctx, model.StatusRejected)

	assert.NoError(t, err)
	assert.Len(t, deleted, 1)
	assert.Equal(t, img.StoragePath, deleted[0].StoragePath)
}

func TestImagePostgres_FindByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()

	rows := addImageRow(sqlmock.NewRows(imageCols), testImage())
	mock.ExpectQuery("SELECT (.+) FROM images WHERE capture_date = ?").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	items, err := repo.FindByDate(ctx, 5)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(5), *items[0].Date)
}

func TestImagePostgres_MaxDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewImagePostgres(db)
	ctx := context.Background()

	t.Run("populated store", func(t *testing.T) {
		mock.ExpectQuery("SELECT MAX\\(capture_date\\) FROM images").
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(12))

		max, err := repo.MaxDate(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(12), max)
	})

	t.Run("empty store", func(t *testing.T) {
		mock.ExpectQuery("SELECT MAX\\(capture_date\\) FROM images").
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		_, err := repo.MaxDate(ctx)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
