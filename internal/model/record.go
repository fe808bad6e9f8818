package model

// Record is the canonical JSON shape returned by every read and write
// endpoint that deals in image metadata. The shape is stable: absent metadata
// is rendered as an explicit JSON null, never an omitted key, so clients can
// rely on all five fields being present.
type Record struct {
	URL    string  `json:"url"`
	Real   *bool   `json:"real"`
	Date   *int64  `json:"date"`
	Theme  *string `json:"theme"`
	Status *Status `json:"status"`
}

// NewRecord builds a Record from an identifier and its metadata fields.
// The url is derived deterministically from the id: the read endpoint path
// for that image. Pure function, no side effects.
func NewRecord(id string, real *bool, date *int64, theme *string, status *Status) Record {
	return Record{
		URL:    "/image/read/" + id,
		Real:   real,
		Date:   date,
		Theme:  theme,
		Status: status,
	}
}
