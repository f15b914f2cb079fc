// Package otp implements the check-digit scheme used by the human-readable
// activation codes. A code is ten symbols drawn from a fixed 25-symbol
// alphabet; the tenth symbol is a check digit computed from the first nine
// via two positional parity tables.
//
// The tables and the alphabet ordering are externally specified and must not
// be derived or reordered: the check digit is the alphabet entry at the
// weighted sum modulo 25, so any change to the ordering changes every code.
package otp

import "errors"

// CodeLength is the length of a short-form OTP code, check digit included.
const CodeLength = 10

// Alphabet is the ordered set of symbols a short-form OTP code is made of.
// The order matters: the check digit is Alphabet[sum%25].
const Alphabet = "AEFHIJKLQRSUWXYZ123456789"

// Sentinel errors returned by ComputeCheckDigit.
var (
	// ErrInvalidSymbol is returned when the input contains a character
	// outside the alphabet. Callers treat this as a validation failure on
	// the whole code, never as a crash.
	ErrInvalidSymbol = errors.New("otp: symbol outside the alphabet")

	// ErrBodyLength is returned when the input is not exactly the nine
	// symbols preceding the check digit.
	ErrBodyLength = errors.New("otp: check digit body must be 9 symbols")
)

// oddWeights maps each alphabet symbol to its weight when it occupies an
// odd (1-indexed) position of the code.
var oddWeights = map[byte]int{
	'1': 0, '2': 5, '3': 7, '4': 9, '5': 13, '6': 15, '7': 17, '8': 19, '9': 21,
	'A': 1, 'E': 9, 'F': 13, 'H': 17, 'I': 19, 'J': 21, 'K': 2, 'L': 4,
	'Q': 6, 'R': 8, 'S': 12, 'U': 16, 'W': 22, 'X': 25, 'Y': 24, 'Z': 23,
}

// evenWeights maps each alphabet symbol to its weight when it occupies an
// even (1-indexed) position of the code.
var evenWeights = map[byte]int{
	'1': 1, '2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
	'A': 0, 'E': 4, 'F': 5, 'H': 7, 'I': 8, 'J': 9, 'K': 10, 'L': 11,
	'Q': 16, 'R': 17, 'S': 18, 'U': 20, 'W': 22, 'X': 23, 'Y': 24, 'Z': 25,
}

// ComputeCheckDigit computes the check digit of an OTP code from the nine
// symbols that precede it.
//
// Each symbol is weighted by the parity of its 1-indexed position (odd
// positions use the odd table, even positions the even table); the check
// digit is the alphabet entry at the weighted sum modulo 25.
//
// It is a pure, deterministic function, usable both for validating incoming
// codes and for generating synthetic ones. It returns ErrBodyLength when the
// input is not nine bytes long and ErrInvalidSymbol when any byte is outside
// the alphabet.
func ComputeCheckDigit(body string) (byte, error) {
	if len(body) != CodeLength-1 {
		return 0, ErrBodyLength
	}
	sum := 0
	for i := 0; i < len(body); i++ {
		weights := evenWeights
		if (i+1)%2 == 1 {
			weights = oddWeights
		}
		w, ok := weights[body[i]]
		if !ok {
			return 0, ErrInvalidSymbol
		}
		sum += w
	}
	return Alphabet[sum%25], nil
}
