package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{raw: "unverified", want: StatusUnverified},
		{raw: "verified", want: StatusVerified},
		{raw: "rejected", want: StatusRejected},
		{raw: "", wantErr: true},
		{raw: "bad_status", wantErr: true},
		{raw: "Verified", wantErr: true},
		{raw: "VERIFIED", wantErr: true},
		{raw: "verified ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRecord(t *testing.T) {
	real := true
	date := int64(5)
	theme := "nature"
	status := StatusUnverified

	rec := NewRecord("621f1d71aec9313aa2b9074c", &real, &date, &theme, &status)

	assert.Equal(t, "/image/read/621f1d71aec9313aa2b9074c", rec.URL)
	assert.Equal(t, true, *rec.Real)
	assert.Equal(t, int64(5), *rec.Date)
	assert.Equal(t, "nature", *rec.Theme)
	assert.Equal(t, StatusUnverified, *rec.Status)
}

// A record built from a row with missing metadata must keep a stable JSON
// shape: every key present, absent values rendered as null.
func TestRecordJSONShapeWithAbsentFields(t *testing.T) {
	rec := NewRecord("621f1d71aec9313aa2b9074c", nil, nil, nil, nil)

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	for _, key := range []string{"url", "real", "date", "theme", "status"} {
		_, ok := m[key]
		assert.True(t, ok, "key %q missing from record JSON", key)
	}
	assert.Nil(t, m["real"])
	assert.Nil(t, m["date"])
	assert.Nil(t, m["theme"])
	assert.Nil(t, m["status"])
}

func TestImageRecord(t *testing.T) {
	real := false
	date := int64(12)
	theme := "city"
	status := StatusVerified

	img := &Image{
		ID:     "621f1d71aec9313aa2b9074c",
		Real:   &real,
		Date:   &date,
		Theme:  &theme,
		Status: &status,
	}

	rec := img.Record()
	assert.Equal(t, "/image/read/"+img.ID, rec.URL)
	assert.Equal(t, &real, rec.Real)
	assert.Equal(t, &date, rec.Date)
	assert.Equal(t, &theme, rec.Theme)
	assert.Equal(t, &status, rec.Status)
}
