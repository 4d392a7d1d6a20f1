package booking

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hotelops/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrNoStatusChange   = errors.New("booking already has the requested status")
	ErrTerminalStatus   = errors.New("booking is in a terminal status")
	ErrInvalidStayDates = errors.New("check-out date must be after check-in date")
	ErrInvalidDateRange = errors.New("new check-out date must be after the current one")
	ErrNoChange         = errors.New("booking already has the requested room category")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrNoRooms          = errors.New("booking must cover at least one room")
)

// Booking is the aggregate root for one stay. It owns its charge ledger;
// all mutation goes through the state machine and stay modification methods.
type Booking struct {
	id             uuid.UUID
	hotelID        uuid.UUID
	bookingNumber  string
	guest          Guest
	checkInDate    time.Time
	checkOutDate   time.Time
	roomType       pricing.CategoryID
	numberOfGuests int
	numberOfRooms  int
	status         Status
	checkInTime    *time.Time
	ledger         *ChargeLedger
	auditNotes     []string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewBooking creates a PENDING booking and seeds its ledger with the room
// charge and the one-time tax line.
func NewBooking(
	hotelID uuid.UUID,
	bookingNumber string,
	guest Guest,
	checkInDate, checkOutDate time.Time,
	roomType pricing.CategoryID,
	numberOfGuests, numberOfRooms int,
	basePrice decimal.Decimal,
	now time.Time,
) (*Booking, error) {
	if !checkOutDate.After(checkInDate) {
		return nil, ErrInvalidStayDates
	}
	if numberOfRooms < 1 {
		return nil, ErrNoRooms
	}
	if basePrice.IsNegative() {
		return nil, ErrNegativeAmount
	}

	id := uuid.New()
	b := &Booking{
		id:             id,
		hotelID:        hotelID,
		bookingNumber:  bookingNumber,
		guest:          guest,
		checkInDate:    checkInDate,
		checkOutDate:   checkOutDate,
		roomType:       roomType,
		numberOfGuests: numberOfGuests,
		numberOfRooms:  numberOfRooms,
		status:         StatusPending,
		ledger:         NewChargeLedger(id),
		createdAt:      now,
		updatedAt:      now,
	}

	roomCharge := basePrice.Mul(decimal.NewFromInt(int64(b.Nights()))).Mul(decimal.NewFromInt(int64(numberOfRooms)))
	b.ledger.Append(ChargeLineItem{
		Kind:        LineRoom,
		Amount:      roomCharge,
		OccurredAt:  now,
		Description: fmt.Sprintf("Room charge (%d nights x %d rooms)", b.Nights(), numberOfRooms),
	})
	b.ledger.Append(ChargeLineItem{
		Kind:        LineTax,
		Amount:      roomCharge.Mul(TaxRate),
		OccurredAt:  now,
		Description: "Tax",
	})

	return b, nil
}

func ReconstructBooking(
	id, hotelID uuid.UUID,
	bookingNumber string,
	guest Guest,
	checkInDate, checkOutDate time.Time,
	roomType pricing.CategoryID,
	numberOfGuests, numberOfRooms int,
	status Status,
	checkInTime *time.Time,
	ledger *ChargeLedger,
	createdAt, updatedAt time.Time,
) *Booking {
	if ledger == nil {
		ledger = NewChargeLedger(id)
	}
	return &Booking{
		id:             id,
		hotelID:        hotelID,
		bookingNumber:  bookingNumber,
		guest:          guest,
		checkInDate:    checkInDate,
		checkOutDate:   checkOutDate,
		roomType:       roomType,
		numberOfGuests: numberOfGuests,
		numberOfRooms:  numberOfRooms,
		status:         status,
		checkInTime:    checkInTime,
		ledger:         ledger,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) HotelID() uuid.UUID           { return b.hotelID }
func (b *Booking) BookingNumber() string        { return b.bookingNumber }
func (b *Booking) Guest() Guest                 { return b.guest }
func (b *Booking) CheckInDate() time.Time       { return b.checkInDate }
func (b *Booking) CheckOutDate() time.Time      { return b.checkOutDate }
func (b *Booking) RoomType() pricing.CategoryID { return b.roomType }
func (b *Booking) NumberOfGuests() int          { return b.numberOfGuests }
func (b *Booking) NumberOfRooms() int           { return b.numberOfRooms }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) CheckInTime() *time.Time      { return b.checkInTime }
func (b *Booking) Ledger() *ChargeLedger        { return b.ledger }
func (b *Booking) AuditNotes() []string         { return b.auditNotes }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

func (b *Booking) PaymentStatus() PaymentStatus {
	return b.ledger.PaymentStatus()
}

// Nights is the calendar-night count of the stay, floored at one night even
// when the dates are equal or inverted.
func (b *Booking) Nights() int {
	return NightsBetween(b.checkInDate, b.checkOutDate)
}

// NightsBetween counts calendar nights between two dates, rounding partial
// days up and flooring at one.
func NightsBetween(from, to time.Time) int {
	nights := int(math.Ceil(to.Sub(from).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Transition applies a status change and its side effects. The returned
// audit note accompanies the persistence request for the new status.
func (b *Booking) Transition(to Status, now time.Time) (string, error) {
	if err := CanTransition(b.status, to); err != nil {
		return "", err
	}

	b.status = to
	if to == StatusCheckedIn {
		t := now
		b.checkInTime = &t
	}

	note := fmt.Sprintf("Status changed to %s at %s", to, now.Format(time.RFC3339))
	b.auditNotes = append(b.auditNotes, note)
	b.updatedAt = now
	return note, nil
}

// CollectPayment appends a PAYMENT line. Overpayment is accepted and drives
// the balance negative; the upstream design places no guard here.
func (b *Booking) CollectPayment(method PaymentMethod, amount decimal.Decimal, transactionID string, now time.Time) (ChargeLineItem, error) {
	if amount.IsNegative() {
		return ChargeLineItem{}, ErrNegativeAmount
	}

	item := ChargeLineItem{
		Kind:        LinePayment,
		Amount:      amount,
		OccurredAt:  now,
		Description: fmt.Sprintf("Payment via %s (%s)", method, transactionID),
	}
	b.ledger.Append(item)
	b.updatedAt = now
	return item, nil
}
