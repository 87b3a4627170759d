package otp

import (
	"errors"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// ErrInvalidDigits is returned for code lengths outside 4..10.
var ErrInvalidDigits = errors.New("otp: digits must be between 4 and 10")

// OTP issues and checks counter-based codes.
type OTP interface {
	// NewSecret creates a base32 secret for account.
	NewSecret(account string) (string, error)
	// Generate derives the code of the given length for secret and counter.
	Generate(secret string, counter uint64, digits int) (string, error)
	// Validate reports whether code matches secret and counter.
	Validate(code, secret string, counter uint64, digits int) bool
}

// HOTP implements OTP with HMAC-SHA1 HOTP.
type HOTP struct {
	issuer string
}

// NewHOTP returns an HOTP implementation labeled with issuer.
func NewHOTP(issuer string) *HOTP {
	return &HOTP{issuer: issuer}
}

// NewSecret creates a 20 byte secret.
func (h *HOTP) NewSecret(account string) (string, error) {
	key, err := hotp.Generate(hotp.GenerateOpts{
		Issuer:      h.issuer,
		AccountName: account,
		SecretSize:  20,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", err
	}

	return key.Secret(), nil
}

// Generate derives the code for counter.
func (h *HOTP) Generate(secret string, counter uint64, digits int) (string, error) {
	opts, err := validateOpts(digits)
	if err != nil {
		return "", err
	}

	return hotp.GenerateCodeCustom(secret, counter, opts)
}

// Validate checks code against secret and counter.
func (h *HOTP) Validate(code, secret string, counter uint64, digits int) bool {
	opts, err := validateOpts(digits)
	if err != nil {
		return false
	}

	ok, err := hotp.ValidateCustom(code, counter, secret, opts)
	return ok && err == nil
}

func validateOpts(digits int) (hotp.ValidateOpts, error) {
	if digits < 4 || digits > 10 {
		return hotp.ValidateOpts{}, ErrInvalidDigits
	}

	return hotp.ValidateOpts{
		Digits:    otp.Digits(digits),
		Algorithm: otp.AlgorithmSHA1,
	}, nil
}
