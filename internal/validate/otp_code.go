package validate

import (
	"regexp"

	"github.com/averna/go-exposure-backend/internal/otp"
)

// shaPattern matches a SHA-256 digest in hexadecimal form, either case.
var shaPattern = regexp.MustCompile(`^[0-9A-Fa-f]{64}$`)

// OtpCode validates an OTP code in either of its two accepted shapes.
//
// The dispatch is solely on length: exactly 10 characters is treated as a
// short-form checksummed code (recompute the check digit over the first nine
// symbols and compare with the tenth), anything else as a long-form SHA-256
// digest (64 hexadecimal characters). There is no fallback between the two
// arms: a 10-character string that is not made of alphabet symbols fails the
// short-form check and is never reinterpreted as a digest.
//
// It returns nil, ErrInvalidOtp, or ErrInvalidOtpSha.
func OtpCode(code string) error {
	if len(code) == otp.CodeLength {
		digit, err := otp.ComputeCheckDigit(code[:otp.CodeLength-1])
		if err != nil || code[otp.CodeLength-1] != digit {
			return ErrInvalidOtp
		}
		return nil
	}
	if !shaPattern.MatchString(code) {
		return ErrInvalidOtpSha
	}
	return nil
}
