package model

import "time"

// Image represents a stored image in the system.
// This is a pure domain model with no database-specific dependencies or tags;
// it is shared across the HTTP, service, and persistence layers.
//
// Date, Theme, Real, and Status are pointers because the metadata columns are
// nullable: a row written by an older schema (or a partial write) can miss any
// of them, and readers must still be able to fetch and delete such rows.
// Uploads always populate all four.
type Image struct {
	ID          string
	Filename    string
	StoragePath string
	Size        int64
	ContentType string
	Date        *int64
	Theme       *string
	Real        *bool
	Status      *Status
	CreatedAt   time.Time
}

// Record builds the canonical external Record for this image.
func (img *Image) Record() Record {
	return NewRecord(img.ID, img.Real, img.Date, img.Theme, img.Status)
}
