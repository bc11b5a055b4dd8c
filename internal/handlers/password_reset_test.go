package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp, err := generateOTP()
		assert.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestOTPResendWait(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := issuedAt.Add(otpTTL)

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{
			name:     "right after issuance waits the full cooldown",
			now:      issuedAt,
			expected: 60,
		},
		{
			name:     "halfway through the cooldown",
			now:      issuedAt.Add(30 * time.Second),
			expected: 30,
		},
		{
			name:     "partial seconds round up",
			now:      issuedAt.Add(30*time.Second + 500*time.Millisecond),
			expected: 30,
		},
		{
			name:     "exactly at cooldown end allows resend",
			now:      issuedAt.Add(60 * time.Second),
			expected: 0,
		},
		{
			name:     "well past the cooldown allows resend",
			now:      issuedAt.Add(5 * time.Minute),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, otpResendWait(expiresAt, tt.now))
		})
	}
}

func TestOTPMatches(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(10 * time.Minute)
	past := now.Add(-time.Minute)

	tests := []struct {
		name      string
		stored    string
		submitted string
		expiresAt *time.Time
		expected  bool
	}{
		{
			name:      "valid code before expiry",
			stored:    "123456",
			submitted: "123456",
			expiresAt: &future,
			expected:  true,
		},
		{
			name:      "wrong code",
			stored:    "123456",
			submitted: "654321",
			expiresAt: &future,
			expected:  false,
		},
		{
			name:      "no code stored",
			stored:    "",
			submitted: "",
			expiresAt: &future,
			expected:  false,
		},
		{
			name:      "no expiry stored",
			stored:    "123456",
			submitted: "123456",
			expiresAt: nil,
			expected:  false,
		},
		{
			name:      "expired code",
			stored:    "123456",
			submitted: "123456",
			expiresAt: &past,
			expected:  false,
		},
		{
			name:      "code fails at the exact expiry instant",
			stored:    "123456",
			submitted: "123456",
			expiresAt: &now,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, otpMatches(tt.stored, tt.submitted, tt.expiresAt, now))
		})
	}
}
