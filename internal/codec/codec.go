// Package codec converts arbitrary bytes to and from the text stored in the
// mapping table.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrEncoding is returned when stored text is not a valid encoding.
	ErrEncoding = errors.New("invalid value encoding")

	// ErrNotUTF8 is returned when a decoded value is requested as text but is not valid UTF-8.
	ErrNotUTF8 = errors.New("value is not valid UTF-8 text")
)

// Encode returns the storage text for b. The output is ASCII only, and
// empty input encodes to the empty string.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Decode is the inverse of Encode.
func Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return b, nil
}

// DecodeText decodes s and checks that the result is UTF-8 text.
func DecodeText(s string) (string, error) {
	b, err := Decode(s)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrNotUTF8
	}
	return string(b), nil
}
