// Package money centralizes fixed-point amount parsing and the business
// limits applied to balance movements. Amounts are decimal.Decimal with
// exactly two fractional digits; binary floating point is never used.
package money

import (
	"fmt"

	"github.com/cashg/cashg-ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Business limits for balance movements, in currency units.
var (
	// MinDeposit is the smallest accepted deposit.
	MinDeposit = decimal.New(100, -2) // 1.00
	// MovementMin and MovementMax bound withdrawals and transfers.
	MovementMin = decimal.New(20000, -2)   // 200.00
	MovementMax = decimal.New(5000000, -2) // 50000.00
)

// Parse converts a caller-supplied decimal string into an exact amount.
// It rejects malformed input and amounts with more than two fractional
// digits with apperrors.ErrInvalidAmount. Range and sign rules are the
// caller's concern; Parse only guarantees a well-formed fixed-point value.
func Parse(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", apperrors.ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a valid numeric amount", apperrors.ErrInvalidAmount, s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%w: %q has more than two decimal places", apperrors.ErrInvalidAmount, s)
	}
	return d, nil
}

// ParsePositive is Parse plus a strict positivity check, the invariant every
// ledger entry carries.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	return d, nil
}

// WithinMovementBand reports whether d lies in [MovementMin, MovementMax].
func WithinMovementBand(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(MovementMin) && d.LessThanOrEqual(MovementMax)
}
