// Package remote declares the ports to the persistence/query service that
// backs the console. The service is the source of truth: every mutation
// returns the server's representation of the booking, which callers adopt
// wholesale on success.
package remote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerLineSnapshot struct {
	Kind        string
	Amount      decimal.Decimal
	OccurredAt  time.Time
	Description string
}

type GuestSnapshot struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type BookingSnapshot struct {
	ID             uuid.UUID
	HotelID        uuid.UUID
	BookingNumber  string
	Guest          GuestSnapshot
	CheckInDate    time.Time
	CheckOutDate   time.Time
	RoomType       string
	NumberOfGuests int
	NumberOfRooms  int
	Status         string
	CheckInTime    *time.Time
	Ledger         []LedgerLineSnapshot
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RoomUnit is one physical room as the service reports it. Units aggregate
// into categories client-side; pricing is stored per unit upstream, so a
// category commit fans out into one update per unit.
type RoomUnit struct {
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
	UpdatedAt     time.Time
}

type RateTierSnapshot struct {
	RoomID    uuid.UUID
	Category  string
	Mode      string
	MinPrice  decimal.Decimal
	BasePrice decimal.Decimal
	MaxPrice  decimal.Decimal
	UpdatedAt time.Time
}

type RoomPricingUpdate struct {
	Mode          string
	MinPrice      decimal.Decimal
	BasePrice     decimal.Decimal
	MaxPrice      decimal.Decimal
	ExtraBedPrice *decimal.Decimal
}

type BookingGateway interface {
	FetchBooking(ctx context.Context, bookingID uuid.UUID) (*BookingSnapshot, error)
	CreateBooking(ctx context.Context, snap BookingSnapshot) (*BookingSnapshot, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, newStatus, note string) (*BookingSnapshot, error)
	ExtendBooking(ctx context.Context, bookingID uuid.UUID, newCheckOutDate time.Time, charge decimal.Decimal, note string) (*BookingSnapshot, error)
	ChangeRoomType(ctx context.Context, bookingID uuid.UUID, newCategory string, addCharge bool, amount decimal.Decimal) (*BookingSnapshot, error)
	AddPayment(ctx context.Context, bookingID uuid.UUID, method string, amount decimal.Decimal, transactionID, notes string) (*BookingSnapshot, error)
}

type PricingGateway interface {
	FetchRoomsByHotel(ctx context.Context, hotelID uuid.UUID) ([]RoomUnit, error)
	UpdateRoomPricing(ctx context.Context, roomID uuid.UUID, update RoomPricingUpdate) (*RateTierSnapshot, error)
	// FetchUpgradeCharges returns the fixed category -> incremental charge
	// list used by room category changes. It is a separate price source
	// from the rate tiers and is not reconciled with them.
	FetchUpgradeCharges(ctx context.Context, hotelID uuid.UUID) (map[string]decimal.Decimal, error)
}
