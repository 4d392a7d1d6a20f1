package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineKind string

const (
	LineRoom      LineKind = "ROOM"
	LineExtension LineKind = "EXTENSION"
	LineUpgrade   LineKind = "UPGRADE"
	LineTax       LineKind = "TAX"
	LinePayment   LineKind = "PAYMENT"
)

func (k LineKind) IsCharge() bool {
	switch k {
	case LineRoom, LineExtension, LineUpgrade, LineTax:
		return true
	default:
		return false
	}
}

// TaxRate is applied once to the room charge when a booking is created.
// Extension and upgrade deltas are not re-taxed.
var TaxRate = decimal.NewFromFloat(0.18)

// ChargeLineItem is immutable once appended; corrections are new line items.
type ChargeLineItem struct {
	Kind        LineKind
	Amount      decimal.Decimal
	OccurredAt  time.Time
	Description string
}

// ChargeLedger is the append-only audit trail of charges and payments for
// one booking. Insertion order is significant and preserved.
type ChargeLedger struct {
	bookingID uuid.UUID
	lines     []ChargeLineItem
}

func NewChargeLedger(bookingID uuid.UUID) *ChargeLedger {
	return &ChargeLedger{bookingID: bookingID}
}

func ReconstructChargeLedger(bookingID uuid.UUID, lines []ChargeLineItem) *ChargeLedger {
	l := &ChargeLedger{bookingID: bookingID}
	l.lines = append(l.lines, lines...)
	return l
}

func (l *ChargeLedger) BookingID() uuid.UUID { return l.bookingID }

// Lines returns a copy; the ledger itself is append-only.
func (l *ChargeLedger) Lines() []ChargeLineItem {
	out := make([]ChargeLineItem, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *ChargeLedger) Append(item ChargeLineItem) {
	l.lines = append(l.lines, item)
}

// TotalAmount is the sum of ROOM, EXTENSION, UPGRADE and TAX lines.
func (l *ChargeLedger) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		if line.Kind.IsCharge() {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// Collected is the sum of PAYMENT lines.
func (l *ChargeLedger) Collected() decimal.Decimal {
	collected := decimal.Zero
	for _, line := range l.lines {
		if line.Kind == LinePayment {
			collected = collected.Add(line.Amount)
		}
	}
	return collected
}

// BalanceDue may go negative: overpayment is accepted as observed upstream.
func (l *ChargeLedger) BalanceDue() decimal.Decimal {
	return l.TotalAmount().Sub(l.Collected())
}

// PaymentStatus derives from the balance: PAID once nothing remains due.
func (l *ChargeLedger) PaymentStatus() PaymentStatus {
	if l.BalanceDue().LessThanOrEqual(decimal.Zero) {
		return PaymentStatusPaid
	}
	return PaymentStatusPending
}
