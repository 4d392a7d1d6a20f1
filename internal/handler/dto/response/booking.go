package response

import (
	"time"

	"hotelops/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type LedgerLineResponse struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Description string          `json:"description"`
}

type LedgerSummaryResponse struct {
	Lines       []LedgerLineResponse `json:"lines"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Collected   decimal.Decimal      `json:"collected"`
	BalanceDue  decimal.Decimal      `json:"balanceDue"`
}

type BookingResponse struct {
	ID             uuid.UUID  `json:"id"`
	HotelID        uuid.UUID  `json:"hotelId"`
	BookingNumber  string     `json:"bookingNumber"`
	GuestFirstName string     `json:"guestFirstName"`
	GuestLastName  string     `json:"guestLastName"`
	GuestEmail     string     `json:"guestEmail"`
	GuestPhone     string     `json:"guestPhone"`
	CheckInDate    time.Time  `json:"checkInDate"`
	CheckOutDate   time.Time  `json:"checkOutDate"`
	Nights         int        `json:"nights"`
	RoomType       string     `json:"roomType"`
	NumberOfGuests int        `json:"numberOfGuests"`
	NumberOfRooms  int        `json:"numberOfRooms"`
	Status         string     `json:"status"`
	PaymentStatus  string     `json:"paymentStatus"`
	CheckInTime    *time.Time `json:"checkInTime,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Ledger             LedgerSummaryResponse `json:"ledger"`
	AllowedTransitions []string              `json:"allowedTransitions"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	// Field names line up with the read model; copier carries them over,
	// including the nested ledger summary.
	_ = copier.Copy(&resp, view)
	return &resp
}
