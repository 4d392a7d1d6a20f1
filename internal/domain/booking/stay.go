package booking

import (
	"fmt"
	"math"
	"time"

	"hotelops/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

// Extend moves the check-out date forward and charges the added nights at
// the current category's base price. The caller persists the mutation and
// discards the aggregate if the remote call fails, so no partial local
// state survives a failed extension.
func (b *Booking) Extend(newCheckOutDate time.Time, basePrice decimal.Decimal, now time.Time) (ChargeLineItem, error) {
	if !newCheckOutDate.After(b.checkOutDate) {
		return ChargeLineItem{}, ErrInvalidDateRange
	}
	if basePrice.IsNegative() {
		return ChargeLineItem{}, ErrNegativeAmount
	}

	addedNights := int(math.Ceil(newCheckOutDate.Sub(b.checkOutDate).Hours() / 24))
	delta := basePrice.Mul(decimal.NewFromInt(int64(addedNights))).Mul(decimal.NewFromInt(int64(b.numberOfRooms)))

	item := ChargeLineItem{
		Kind:        LineExtension,
		Amount:      delta,
		OccurredAt:  now,
		Description: fmt.Sprintf("Stay extended by %d nights to %s", addedNights, newCheckOutDate.Format("2006-01-02")),
	}
	b.ledger.Append(item)
	b.checkOutDate = newCheckOutDate
	b.updatedAt = now
	return item, nil
}

// ChangeCategory switches the booking's room category. The charge comes
// from the upgrade price list, not from the category's rate tier; the two
// price sources are deliberately kept separate. A zero charge updates the
// category without touching the ledger.
func (b *Booking) ChangeCategory(newCategory pricing.CategoryID, charge decimal.Decimal, now time.Time) (*ChargeLineItem, error) {
	if newCategory == b.roomType {
		return nil, ErrNoChange
	}
	if charge.IsNegative() {
		return nil, ErrNegativeAmount
	}

	oldCategory := b.roomType
	b.roomType = newCategory
	b.updatedAt = now

	if !charge.IsPositive() {
		return nil, nil
	}

	item := ChargeLineItem{
		Kind:        LineUpgrade,
		Amount:      charge,
		OccurredAt:  now,
		Description: fmt.Sprintf("Room category changed from %s to %s", oldCategory, newCategory),
	}
	b.ledger.Append(item)
	return &item, nil
}
