package handlers

import (
	"testing"
	"time"
)

func TestGenerateOTPLengthAndDigits(t *testing.T) {
	otp, err := generateOTP(6)
	if err != nil {
		t.Fatalf("generateOTP returned error: %v", err)
	}
	if len(otp) != 6 {
		t.Fatalf("expected 6 digits, got %q", otp)
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric code, got %q", otp)
		}
	}
}

func TestOTPExpiryWindow(t *testing.T) {
	now := time.Now()
	if otpExpired(now.Add(-4*time.Minute), now) {
		t.Fatal("code inside the 5-minute window must be valid")
	}
	if !otpExpired(now.Add(-6*time.Minute), now) {
		t.Fatal("code past the 5-minute window must be expired")
	}
}
