package commands

import (
	"time"

	"hotelops/internal/domain/booking"
	"hotelops/internal/domain/pricing"
	"hotelops/internal/usecase/remote"

	"github.com/shopspring/decimal"
)

// CreateBookingParams is the intake shape for a new booking.
type CreateBookingParams struct {
	GuestFirstName string
	GuestLastName  string
	GuestEmail     string
	GuestPhone     string
	CheckInDate    time.Time
	CheckOutDate   time.Time
	RoomType       pricing.CategoryID
	NumberOfGuests int
	NumberOfRooms  int
}

// RateTierEdit is one category's edited price triple within a batch save.
type RateTierEdit struct {
	CategoryID pricing.CategoryID
	MinPrice   decimal.Decimal
	BasePrice  decimal.Decimal
	MaxPrice   decimal.Decimal
}

func snapshotFromDomain(b *booking.Booking) remote.BookingSnapshot {
	ledger := b.Ledger()
	lines := make([]remote.LedgerLineSnapshot, 0, len(ledger.Lines()))
	for _, line := range ledger.Lines() {
		lines = append(lines, remote.LedgerLineSnapshot{
			Kind:        string(line.Kind),
			Amount:      line.Amount,
			OccurredAt:  line.OccurredAt,
			Description: line.Description,
		})
	}

	guest := b.Guest()
	return remote.BookingSnapshot{
		ID:            b.ID(),
		HotelID:       b.HotelID(),
		BookingNumber: b.BookingNumber(),
		Guest: remote.GuestSnapshot{
			FirstName: guest.FirstName(),
			LastName:  guest.LastName(),
			Email:     guest.Email(),
			Phone:     guest.Phone(),
		},
		CheckInDate:    b.CheckInDate(),
		CheckOutDate:   b.CheckOutDate(),
		RoomType:       b.RoomType().String(),
		NumberOfGuests: b.NumberOfGuests(),
		NumberOfRooms:  b.NumberOfRooms(),
		Status:         b.Status().String(),
		CheckInTime:    b.CheckInTime(),
		Ledger:         lines,
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func domainFromSnapshot(snap *remote.BookingSnapshot) *booking.Booking {
	ledger := make([]booking.ChargeLineItem, 0, len(snap.Ledger))
	for _, line := range snap.Ledger {
		ledger = append(ledger, booking.ChargeLineItem{
			Kind:        booking.LineKind(line.Kind),
			Amount:      line.Amount,
			OccurredAt:  line.OccurredAt,
			Description: line.Description,
		})
	}

	return booking.ReconstructBooking(
		snap.ID,
		snap.HotelID,
		snap.BookingNumber,
		booking.ReconstructGuest(snap.Guest.FirstName, snap.Guest.LastName, snap.Guest.Email, snap.Guest.Phone),
		snap.CheckInDate,
		snap.CheckOutDate,
		pricing.CategoryID(snap.RoomType),
		snap.NumberOfGuests,
		snap.NumberOfRooms,
		booking.Status(snap.Status),
		snap.CheckInTime,
		booking.ReconstructChargeLedger(snap.ID, ledger),
		snap.CreatedAt,
		snap.UpdatedAt,
	)
}
