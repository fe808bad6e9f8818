package model

import "fmt"

// Status is the moderation state of a stored image.
// It is a closed enumeration: every value outside the three constants below
// is invalid, including the empty string.
type Status string

const (
	StatusUnverified Status = "unverified"
	StatusVerified   Status = "verified"
	StatusRejected   Status = "rejected"
)

// ParseStatus validates raw status input against the closed enumeration.
// Membership is exact; no case folding, no aliases.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusUnverified, StatusVerified, StatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("invalid status %q", raw)
}

func (s Status) String() string {
	return string(s)
}
