package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNegativePrice = errors.New("price cannot be negative")

// DefaultWeekendMultiplier is the observed ratio between weekend and
// standard tiers when a weekend tier is first derived.
var DefaultWeekendMultiplier = decimal.NewFromFloat(1.25)

// RangeViolation reports a tier whose prices break the min <= base <= max
// ordering. Field names the offending price field.
type RangeViolation struct {
	Category CategoryID
	Field    string
}

func (v RangeViolation) Error() string {
	return fmt.Sprintf("rate tier %s: %s price out of range", v.Category, v.Field)
}

// RateTier is one category's {min, base, max} price triple for a single
// rate mode. Two independent instances exist per category, one standard
// and one weekend, sharing the same CategoryID.
type RateTier struct {
	CategoryID     CategoryID
	MinPrice       decimal.Decimal
	BasePrice      decimal.Decimal
	MaxPrice       decimal.Decimal
	AvailableUnits int
}

// Validate checks the ordering invariant. Pure; collects nothing remotely.
func (t RateTier) Validate() error {
	if t.MinPrice.GreaterThan(t.BasePrice) {
		return RangeViolation{Category: t.CategoryID, Field: "min"}
	}
	if t.BasePrice.GreaterThan(t.MaxPrice) {
		return RangeViolation{Category: t.CategoryID, Field: "base"}
	}
	return nil
}

// DeriveWeekendDefault scales a standard tier into a weekend tier, rounded
// to the currency's minor unit. The result is a starting point only; the
// weekend tier is edited independently afterwards and revalidated on its
// own.
func DeriveWeekendDefault(std RateTier, multiplier decimal.Decimal) RateTier {
	return RateTier{
		CategoryID:     std.CategoryID,
		MinPrice:       std.MinPrice.Mul(multiplier).Round(2),
		BasePrice:      std.BasePrice.Mul(multiplier).Round(2),
		MaxPrice:       std.MaxPrice.Mul(multiplier).Round(2),
		AvailableUnits: std.AvailableUnits,
	}
}
