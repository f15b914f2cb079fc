package validate

import (
	"encoding/base64"
	"fmt"
)

// Base64String validates base64-encoded payloads against optional length
// bounds. A zero bound is not enforced.
//
// Fields:
//   - DecodedLength: exact length in bytes the payload must decode to
//     (16 for TEK key data).
//   - MinEncodedLength / MaxEncodedLength: bounds on the encoded string
//     itself, checked before decoding.
type Base64String struct {
	DecodedLength    int
	MinEncodedLength int
	MaxEncodedLength int
}

// Validate checks the encoded length bounds, decodes the value, and checks
// the decoded length. It returns nil, ErrBase64Length (wrapped with the
// offending lengths), or ErrInvalidBase64.
func (v Base64String) Validate(value string) error {
	if v.MinEncodedLength > 0 && len(value) < v.MinEncodedLength {
		return fmt.Errorf("%w: %d, minimum required length %d", ErrBase64Length, len(value), v.MinEncodedLength)
	}
	if v.MaxEncodedLength > 0 && len(value) > v.MaxEncodedLength {
		return fmt.Errorf("%w: %d, maximum required length %d", ErrBase64Length, len(value), v.MaxEncodedLength)
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return ErrInvalidBase64
	}
	if v.DecodedLength > 0 && len(decoded) != v.DecodedLength {
		return fmt.Errorf("%w: %d instead of %d", ErrBase64Length, len(decoded), v.DecodedLength)
	}
	return nil
}
