// Package salary holds the salary arithmetic applied to employee records.
package salary

import (
	"errors"

	"github.com/shopspring/decimal"
)

// UpliftRate is the multiplier applied to a gross salary (a 35% markup).
var UpliftRate = decimal.RequireFromString("1.35")

// ErrInvalidAmount is returned for a gross salary that is zero or negative.
var ErrInvalidAmount = errors.New("gross salary must be greater than zero")

// Uplift returns gross * 1.35 rounded half away from zero to two places.
func Uplift(gross decimal.Decimal) (decimal.Decimal, error) {
	if !gross.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return gross.Mul(UpliftRate).Round(2), nil
}

// UpliftFloat is Uplift for callers holding a float amount.
func UpliftFloat(gross float64) (float64, error) {
	v, err := Uplift(decimal.NewFromFloat(gross))
	if err != nil {
		return 0, err
	}
	return v.InexactFloat64(), nil
}
