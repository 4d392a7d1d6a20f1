//go:build unit || e2e

package builder

import (
	"time"

	dombooking "hotelops/internal/domain/booking"
	"hotelops/internal/domain/pricing"
	"hotelops/internal/usecase/remote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ID             uuid.UUID
	HotelID        uuid.UUID
	BookingNumber  string
	GuestFirstName string
	GuestLastName  string
	GuestEmail     string
	GuestPhone     string
	CheckInDate    time.Time
	CheckOutDate   time.Time
	RoomType       string
	NumberOfGuests int
	NumberOfRooms  int
	Status         string
	BasePrice      decimal.Decimal
	Now            time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:             uuid.New(),
		HotelID:        uuid.New(),
		BookingNumber:  "BK-TEST0001",
		GuestFirstName: "Maria",
		GuestLastName:  "Santos",
		GuestEmail:     "maria.santos@example.com",
		GuestPhone:     "+63-917-555-0101",
		CheckInDate:    time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		RoomType:       "DELUXE",
		NumberOfGuests: 2,
		NumberOfRooms:  1,
		Status:         "PENDING",
		BasePrice:      decimal.NewFromInt(200),
		Now:            now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	guest, err := dombooking.NewGuest(b.GuestFirstName, b.GuestLastName, b.GuestEmail, b.GuestPhone)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(
		b.HotelID,
		b.BookingNumber,
		guest,
		b.CheckInDate,
		b.CheckOutDate,
		pricing.CategoryID(b.RoomType),
		b.NumberOfGuests,
		b.NumberOfRooms,
		b.BasePrice,
		b.Now,
	)
}

// BuildSnapshot produces the server-side representation with the ledger
// seeded the same way the create path seeds it: one ROOM line and one TAX
// line. The builder's Status overrides the PENDING default so lifecycle
// tests can start mid-stay.
func (b *BookingBuilder) BuildSnapshot() remote.BookingSnapshot {
	nights := dombooking.NightsBetween(b.CheckInDate, b.CheckOutDate)
	roomCharge := b.BasePrice.
		Mul(decimal.NewFromInt(int64(nights))).
		Mul(decimal.NewFromInt(int64(b.NumberOfRooms)))

	return remote.BookingSnapshot{
		ID:            b.ID,
		HotelID:       b.HotelID,
		BookingNumber: b.BookingNumber,
		Guest: remote.GuestSnapshot{
			FirstName: b.GuestFirstName,
			LastName:  b.GuestLastName,
			Email:     b.GuestEmail,
			Phone:     b.GuestPhone,
		},
		CheckInDate:    b.CheckInDate,
		CheckOutDate:   b.CheckOutDate,
		RoomType:       b.RoomType,
		NumberOfGuests: b.NumberOfGuests,
		NumberOfRooms:  b.NumberOfRooms,
		Status:         b.Status,
		Ledger: []remote.LedgerLineSnapshot{
			{Kind: "ROOM", Amount: roomCharge, OccurredAt: b.Now, Description: "Room charge"},
			{Kind: "TAX", Amount: roomCharge.Mul(dombooking.TaxRate), OccurredAt: b.Now, Description: "Tax"},
		},
		CreatedAt: b.Now,
		UpdatedAt: b.Now,
	}
}

// PaymentLine is a ledger line for seeding paid-up snapshots.
func PaymentLine(amount decimal.Decimal) remote.LedgerLineSnapshot {
	return remote.LedgerLineSnapshot{
		Kind:        "PAYMENT",
		Amount:      amount,
		OccurredAt:  time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC),
		Description: "Payment via CASH (TXN-SEED)",
	}
}

type RoomUnitBuilder struct {
	ID            uuid.UUID
	HotelID       uuid.UUID
	RoomNumber    string
	Category      string
	MaxGuests     int
	StandardMin   decimal.Decimal
	StandardBase  decimal.Decimal
	StandardMax   decimal.Decimal
	WeekendMin    decimal.Decimal
	WeekendBase   decimal.Decimal
	WeekendMax    decimal.Decimal
	ExtraBedPrice *decimal.Decimal
}

func NewRoomUnitBuilder() *RoomUnitBuilder {
	return &RoomUnitBuilder{
		ID:           uuid.New(),
		HotelID:      uuid.New(),
		RoomNumber:   "101",
		Category:     "DELUXE",
		MaxGuests:    3,
		StandardMin:  decimal.NewFromInt(150),
		StandardBase: decimal.NewFromInt(200),
		StandardMax:  decimal.NewFromInt(400),
		WeekendMin:   decimal.NewFromFloat(187.50),
		WeekendBase:  decimal.NewFromInt(250),
		WeekendMax:   decimal.NewFromInt(500),
	}
}

func (r *RoomUnitBuilder) With(mutate func(*RoomUnitBuilder)) *RoomUnitBuilder {
	mutate(r)
	return r
}

func (r *RoomUnitBuilder) Build() remote.RoomUnit {
	return remote.RoomUnit{
		ID:            r.ID,
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		Category:      r.Category,
		MaxGuests:     r.MaxGuests,
		StandardMin:   r.StandardMin,
		StandardBase:  r.StandardBase,
		StandardMax:   r.StandardMax,
		WeekendMin:    r.WeekendMin,
		WeekendBase:   r.WeekendBase,
		WeekendMax:    r.WeekendMax,
		ExtraBedPrice: r.ExtraBedPrice,
		UpdatedAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}
