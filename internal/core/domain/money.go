package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is stored as NUMERIC(20,2): two fractional digits, up to 18 integer digits.
const (
	AmountScale      = 2
	MaxIntegerDigits = 18
)

var (
	// MinAmount is the smallest operation amount accepted.
	MinAmount = decimal.New(1, -AmountScale)

	// amountLimit is the first value that no longer fits in MaxIntegerDigits.
	amountLimit = decimal.New(1, MaxIntegerDigits)
)

var (
	ErrAmountFormat      = errors.New("amount is not a decimal number")
	ErrAmountPrecision   = errors.New("amount has more than 2 fractional digits")
	ErrAmountNotPositive = errors.New("amount must be greater than 0.00")
	ErrAmountNegative    = errors.New("amount must not be negative")
	ErrAmountTooLarge    = errors.New("amount exceeds 18 integer digits")
)

// ParseAmount parses an operation amount as supplied by a client.
// Exponent forms such as "1e3" are accepted as long as the value itself has
// at most two fractional digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrAmountFormat
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ParseBalance parses an opening balance. Unlike ParseAmount, zero is allowed.
func ParseBalance(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrAmountFormat
	}
	if err := ValidateBalance(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount checks that d is a usable operation amount.
func ValidateAmount(d decimal.Decimal) error {
	if err := validateMoney(d); err != nil {
		return err
	}
	if d.LessThan(MinAmount) {
		return ErrAmountNotPositive
	}
	return nil
}

// ValidateBalance checks that d is a storable balance (zero allowed).
func ValidateBalance(d decimal.Decimal) error {
	if err := validateMoney(d); err != nil {
		return err
	}
	if d.IsNegative() {
		return ErrAmountNegative
	}
	return nil
}

func validateMoney(d decimal.Decimal) error {
	if d.Exponent() < -AmountScale {
		return ErrAmountPrecision
	}
	if d.Abs().GreaterThanOrEqual(amountLimit) {
		return ErrAmountTooLarge
	}
	return nil
}

// FormatAmount renders d with exactly two fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
