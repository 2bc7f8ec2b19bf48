package service

import (
	"strings"

	"fruitseason/internal/errors"
)

// CardValidator validates card numbers structurally. No card data ever leaves
// this package unmasked.
type CardValidator struct{}

// NewCardValidator creates a new card validator.
func NewCardValidator() *CardValidator {
	return &CardValidator{}
}

// Digits strips every non-digit character from a card number.
func (v *CardValidator) Digits(cardNumber string) string {
	var b strings.Builder
	b.Grow(len(cardNumber))
	for _, r := range cardNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateNumber strips formatting from the card number and checks its length
// and Luhn checksum. Returns the digit string on success.
func (v *CardValidator) ValidateNumber(cardNumber string) (string, error) {
	digits := v.Digits(cardNumber)
	if !v.validateLuhn(digits) {
		return "", errors.ErrInvalidCard
	}
	return digits, nil
}

// validateLuhn checks a digit-only card number using the Luhn algorithm.
func (v *CardValidator) validateLuhn(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}

	sum := 0
	alternate := false

	// Process from right to left, doubling every second digit
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')

		if alternate {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		alternate = !alternate
	}

	return sum%10 == 0
}

// Last4 returns the final four digits of a digit string, or the whole string
// when shorter.
func (v *CardValidator) Last4(digits string) string {
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// MaskNumber builds the stored display form of a card from its last4.
func (v *CardValidator) MaskNumber(last4 string) string {
	return "**** **** **** " + last4
}
