package imageid

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
)

// Package imageid implements the opaque identifier format used for stored images:
// a 24-character lowercase hexadecimal token (12 random bytes).

// EncodedLen is the exact length of a valid identifier string.
const EncodedLen = 24

// ErrInvalidID is returned when a raw string is not a well-formed identifier.
var ErrInvalidID = errors.New("invalid image id")

// ID is a validated image identifier. Construct via New or Parse only.
type ID string

// New generates a fresh random identifier.
func New() ID {
	var b [EncodedLen / 2]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic("imageid: rand.Read: " + err.Error())
	}
	return ID(hex.EncodeToString(b[:]))
}

// Parse validates an externally supplied raw identifier string.
// It accepts exactly EncodedLen hexadecimal characters (case-insensitive,
// normalized to lowercase) and returns ErrInvalidID otherwise.
// Empty, wrong-length, or non-hex input is rejected.
func Parse(raw string) (ID, error) {
	if len(raw) != EncodedLen {
		return "", ErrInvalidID
	}
	lower := strings.ToLower(raw)
	if _, err := hex.DecodeString(lower); err != nil {
		return "", ErrInvalidID
	}
	return ID(lower), nil
}

func (id ID) String() string {
	return string(id)
}
