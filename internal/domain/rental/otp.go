package rental

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const otpDigits = 6

var otpBound = big.NewInt(1_000_000)

// GenerateOTP returns a zero-padded 6-digit numeric code.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, otpBound)
	if err != nil {
		// crypto/rand failing is unrecoverable for code generation
		panic(fmt.Sprintf("otp generation: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// ValidOTPFormat checks the 6-digit shape without comparing codes.
func ValidOTPFormat(code string) bool {
	if len(code) != otpDigits {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
