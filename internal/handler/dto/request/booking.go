package request

import (
	"time"

	"hotelops/internal/domain/booking"
	"hotelops/internal/domain/pricing"
	"hotelops/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	GuestFirstName string    `json:"guest_first_name" binding:"required"`
	GuestLastName  string    `json:"guest_last_name"`
	GuestEmail     string    `json:"guest_email"`
	GuestPhone     string    `json:"guest_phone"`
	CheckInDate    time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate   time.Time `json:"check_out_date" binding:"required"`
	RoomType       string    `json:"room_type" binding:"required"`
	NumberOfGuests int       `json:"number_of_guests" binding:"required,min=1"`
	NumberOfRooms  int       `json:"number_of_rooms" binding:"required,min=1"`
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		GuestFirstName: r.GuestFirstName,
		GuestLastName:  r.GuestLastName,
		GuestEmail:     r.GuestEmail,
		GuestPhone:     r.GuestPhone,
		CheckInDate:    r.CheckInDate,
		CheckOutDate:   r.CheckOutDate,
		RoomType:       pricing.CategoryID(r.RoomType),
		NumberOfGuests: r.NumberOfGuests,
		NumberOfRooms:  r.NumberOfRooms,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r ChangeStatusRequest) ToStatus() booking.Status {
	return booking.Status(r.Status)
}

type ExtendStayRequest struct {
	NewCheckOutDate time.Time `json:"new_check_out_date" binding:"required"`
}

type ChangeRoomTypeRequest struct {
	RoomType string `json:"room_type" binding:"required"`
}

type CollectPaymentRequest struct {
	Method        string          `json:"method" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	TransactionID string          `json:"transaction_id"`
}
