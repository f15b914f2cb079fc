package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/averna/go-exposure-backend/internal/otp"
)

// makeShortCode builds a valid 10-character code from a 9-symbol body.
func makeShortCode(t *testing.T, body string) string {
	t.Helper()
	digit, err := otp.ComputeCheckDigit(body)
	if err != nil {
		t.Fatalf("ComputeCheckDigit(%q): %v", body, err)
	}
	return body + string(digit)
}

func TestOtpCode_ShortForm_Valid(t *testing.T) {
	for _, body := range []string{"AAAAAAAAA", "SKY1EQRZJ", "987654321", "AEFHIJKLQ"} {
		code := makeShortCode(t, body)
		if err := OtpCode(code); err != nil {
			t.Fatalf("OtpCode(%q) = %v, want nil", code, err)
		}
	}
}

func TestOtpCode_ShortForm_WrongCheckDigitFails(t *testing.T) {
	code := makeShortCode(t, "SKY1EQRZJ")
	correct := code[otp.CodeLength-1]
	// Flipping the last character to any other alphabet symbol must fail.
	for i := 0; i < len(otp.Alphabet); i++ {
		if otp.Alphabet[i] == correct {
			continue
		}
		flipped := code[:otp.CodeLength-1] + string(otp.Alphabet[i])
		if err := OtpCode(flipped); !errors.Is(err, ErrInvalidOtp) {
			t.Fatalf("OtpCode(%q) = %v, want ErrInvalidOtp", flipped, err)
		}
	}
}

func TestOtpCode_TenCharsOutsideAlphabet_NeverLongForm(t *testing.T) {
	// A 10-character string with foreign symbols fails the short-form
	// check; it must not be reinterpreted as a (truncated) digest.
	for _, code := range []string{"0123456789", "abcdefABCD", "AAAAAAAAA#"} {
		if err := OtpCode(code); !errors.Is(err, ErrInvalidOtp) {
			t.Fatalf("OtpCode(%q) = %v, want ErrInvalidOtp", code, err)
		}
	}
}

func TestOtpCode_LongForm_HexAnyCase(t *testing.T) {
	lower := strings.Repeat("0123456789abcdef", 4)
	upper := strings.ToUpper(lower)
	mixed := lower[:32] + upper[32:]
	for _, code := range []string{lower, upper, mixed} {
		if err := OtpCode(code); err != nil {
			t.Fatalf("OtpCode(%q) = %v, want nil", code, err)
		}
	}
}

func TestOtpCode_LongForm_Invalid(t *testing.T) {
	cases := []string{
		"",
		strings.Repeat("a", 63),
		strings.Repeat("a", 65),
		strings.Repeat("g", 64), // not hex
		strings.Repeat("a", 32),
	}
	for _, code := range cases {
		if err := OtpCode(code); !errors.Is(err, ErrInvalidOtpSha) {
			t.Fatalf("OtpCode(%q) = %v, want ErrInvalidOtpSha", code, err)
		}
	}
}
