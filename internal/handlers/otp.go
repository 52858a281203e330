package handlers

import (
	"crypto/rand"
	"fmt"
	"time"
)

// otpValidity is the authoritative expiry window for verification and
// password-reset codes. The store's 600-second TTL index is only a backstop.
const otpValidity = 5 * time.Minute

// generateOTP returns a numeric one-time code of n digits from crypto/rand.
func generateOTP(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("otp generation failed: %w", err)
	}

	otp := make([]byte, n)
	for i := 0; i < n; i++ {
		otp[i] = '0' + (buf[i] % 10)
	}
	return string(otp), nil
}

func otpExpired(createdAt, now time.Time) bool {
	return now.Sub(createdAt) > otpValidity
}
