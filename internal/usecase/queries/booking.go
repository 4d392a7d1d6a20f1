package queries

import (
	"context"
	"time"

	"hotelops/internal/domain/booking"
	"hotelops/internal/pkg/errs"
	"hotelops/internal/usecase/remote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models (DTO for read side)
type LedgerLineView struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Description string          `json:"description"`
}

type LedgerSummary struct {
	Lines       []LedgerLineView `json:"lines"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Collected   decimal.Decimal  `json:"collected"`
	BalanceDue  decimal.Decimal  `json:"balance_due"`
}

type BookingView struct {
	ID             uuid.UUID  `json:"id"`
	HotelID        uuid.UUID  `json:"hotel_id"`
	BookingNumber  string     `json:"booking_number"`
	GuestFirstName string     `json:"guest_first_name"`
	GuestLastName  string     `json:"guest_last_name"`
	GuestEmail     string     `json:"guest_email"`
	GuestPhone     string     `json:"guest_phone"`
	CheckInDate    time.Time  `json:"check_in_date"`
	CheckOutDate   time.Time  `json:"check_out_date"`
	Nights         int        `json:"nights"`
	RoomType       string     `json:"room_type"`
	NumberOfGuests int        `json:"number_of_guests"`
	NumberOfRooms  int        `json:"number_of_rooms"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"payment_status"`
	CheckInTime    *time.Time `json:"check_in_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Ledger             LedgerSummary `json:"ledger"`
	AllowedTransitions []string      `json:"allowed_transitions"`
}

type BookingQueries interface {
	GetBookingView(ctx context.Context, hotelID, bookingID uuid.UUID) (*BookingView, error)
}

type bookingQueriesImpl struct {
	gateway remote.BookingGateway
}

func NewBookingQueries(gateway remote.BookingGateway) BookingQueries {
	return &bookingQueriesImpl{gateway: gateway}
}

func (q *bookingQueriesImpl) GetBookingView(ctx context.Context, hotelID, bookingID uuid.UUID) (*BookingView, error) {
	snap, err := q.gateway.FetchBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrBookingNotFound)
	}
	if snap.HotelID != hotelID {
		return nil, errs.ErrHotelMismatch
	}
	return BookingViewFromSnapshot(snap), nil
}

// BookingViewFromSnapshot derives the full read model, including ledger
// totals and the transitions legal from the current status, from the
// server's representation.
func BookingViewFromSnapshot(snap *remote.BookingSnapshot) *BookingView {
	ledger := LedgerFromSnapshot(snap)

	allowed := booking.AllowedTransitions(booking.Status(snap.Status))
	transitions := make([]string, len(allowed))
	for i, s := range allowed {
		transitions[i] = s.String()
	}

	view := &BookingView{
		ID:             snap.ID,
		HotelID:        snap.HotelID,
		BookingNumber:  snap.BookingNumber,
		GuestFirstName: snap.Guest.FirstName,
		GuestLastName:  snap.Guest.LastName,
		GuestEmail:     snap.Guest.Email,
		GuestPhone:     snap.Guest.Phone,
		CheckInDate:    snap.CheckInDate,
		CheckOutDate:   snap.CheckOutDate,
		RoomType:       snap.RoomType,
		NumberOfGuests: snap.NumberOfGuests,
		NumberOfRooms:  snap.NumberOfRooms,
		Status:         snap.Status,
		PaymentStatus:  ledger.PaymentStatus().String(),
		CheckInTime:    snap.CheckInTime,
		CreatedAt:      snap.CreatedAt,
		UpdatedAt:      snap.UpdatedAt,

		AllowedTransitions: transitions,
	}

	lines := make([]LedgerLineView, 0, len(snap.Ledger))
	for _, line := range snap.Ledger {
		lines = append(lines, LedgerLineView{
			Kind:        line.Kind,
			Amount:      line.Amount,
			OccurredAt:  line.OccurredAt,
			Description: line.Description,
		})
	}
	view.Ledger = LedgerSummary{
		Lines:       lines,
		TotalAmount: ledger.TotalAmount(),
		Collected:   ledger.Collected(),
		BalanceDue:  ledger.BalanceDue(),
	}

	view.Nights = booking.NightsBetween(snap.CheckInDate, snap.CheckOutDate)

	return view
}

// LedgerFromSnapshot rebuilds the domain ledger so totals come from one
// place rather than being re-summed ad hoc.
func LedgerFromSnapshot(snap *remote.BookingSnapshot) *booking.ChargeLedger {
	lines := make([]booking.ChargeLineItem, 0, len(snap.Ledger))
	for _, line := range snap.Ledger {
		lines = append(lines, booking.ChargeLineItem{
			Kind:        booking.LineKind(line.Kind),
			Amount:      line.Amount,
			OccurredAt:  line.OccurredAt,
			Description: line.Description,
		})
	}
	return booking.ReconstructChargeLedger(snap.ID, lines)
}
