package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelops/internal/domain/booking"
	"hotelops/internal/domain/pricing"
	"hotelops/internal/pkg/clock"
	"hotelops/internal/pkg/errs"
	"hotelops/internal/usecase/queries"
	"hotelops/internal/usecase/remote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNoStatusChange     = errs.New("booking already has the requested status")
	ErrInvalidTransition  = errs.New("illegal status transition")
	ErrStatusUpdateFailed = errs.New("status update failed")
	ErrInvalidDateRange   = errs.New("new check-out date must be after the current one")
	ErrNoChange           = errs.New("booking already has the requested room category")
)

// BookingCommands is the coordinator façade behind the booking screens.
// Each operation validates locally first, issues exactly one persistence
// request, and on success adopts the server-returned snapshot; on failure
// the caller's prior state is untouched.
type BookingCommands interface {
	CreateBooking(ctx context.Context, hotelID uuid.UUID, params CreateBookingParams) (*queries.BookingView, error)
	ApplyStatusChange(ctx context.Context, hotelID, bookingID uuid.UUID, newStatus booking.Status) (*queries.BookingView, error)
	ApplyExtension(ctx context.Context, hotelID, bookingID uuid.UUID, newCheckOutDate time.Time) (*queries.BookingView, error)
	ApplyCategoryChange(ctx context.Context, hotelID, bookingID uuid.UUID, newCategory pricing.CategoryID) (*queries.BookingView, error)
	CollectPayment(ctx context.Context, hotelID, bookingID uuid.UUID, method booking.PaymentMethod, amount decimal.Decimal, transactionID string) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookings remote.BookingGateway
	pricing  remote.PricingGateway
	clock    clock.Clock
}

func NewBookingCommands(bookings remote.BookingGateway, pricingGateway remote.PricingGateway, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		bookings: bookings,
		pricing:  pricingGateway,
		clock:    clk,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, hotelID uuid.UUID, params CreateBookingParams) (*queries.BookingView, error) {
	guest, err := booking.NewGuest(params.GuestFirstName, params.GuestLastName, params.GuestEmail, params.GuestPhone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	basePrice, err := c.standardBasePrice(ctx, hotelID, params.RoomType)
	if err != nil {
		return nil, err
	}

	entity, err := booking.NewBooking(
		hotelID,
		newBookingNumber(),
		guest,
		params.CheckInDate,
		params.CheckOutDate,
		params.RoomType,
		params.NumberOfGuests,
		params.NumberOfRooms,
		basePrice,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	snap, err := c.bookings.CreateBooking(ctx, snapshotFromDomain(entity))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrRemoteOperationFailed)
	}
	return queries.BookingViewFromSnapshot(snap), nil
}

func (c *bookingCommandsImpl) ApplyStatusChange(ctx context.Context, hotelID, bookingID uuid.UUID, newStatus booking.Status) (*queries.BookingView, error) {
	entity, err := c.fetchForHotel(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	note, err := entity.Transition(newStatus, c.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNoStatusChange):
			return nil, ErrNoStatusChange
		case errors.Is(err, booking.ErrTerminalStatus), errors.Is(err, booking.ErrInvalidStatus):
			return nil, errs.Mark(err, ErrInvalidTransition)
		default:
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}

	// The mutated entity is discarded on failure, so a failed commit
	// leaves no optimistic local update behind.
	snap, err := c.bookings.UpdateBookingStatus(ctx, bookingID, entity.Status().String(), note)
	if err != nil {
		return nil, errs.Mark(err, ErrStatusUpdateFailed)
	}
	return queries.BookingViewFromSnapshot(snap), nil
}

func (c *bookingCommandsImpl) ApplyExtension(ctx context.Context, hotelID, bookingID uuid.UUID, newCheckOutDate time.Time) (*queries.BookingView, error) {
	entity, err := c.fetchForHotel(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	if !newCheckOutDate.After(entity.CheckOutDate()) {
		return nil, ErrInvalidDateRange
	}

	basePrice, err := c.standardBasePrice(ctx, hotelID, entity.RoomType())
	if err != nil {
		return nil, err
	}

	item, err := entity.Extend(newCheckOutDate, basePrice, c.clock.Now())
	if err != nil {
		if errors.Is(err, booking.ErrInvalidDateRange) {
			return nil, ErrInvalidDateRange
		}
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	snap, err := c.bookings.ExtendBooking(ctx, bookingID, newCheckOutDate, item.Amount, item.Description)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrRemoteOperationFailed)
	}
	return queries.BookingViewFromSnapshot(snap), nil
}

func (c *bookingCommandsImpl) ApplyCategoryChange(ctx context.Context, hotelID, bookingID uuid.UUID, newCategory pricing.CategoryID) (*queries.BookingView, error) {
	entity, err := c.fetchForHotel(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	// Same category is a no-op; nothing goes to the remote service.
	if entity.RoomType() == newCategory {
		return nil, ErrNoChange
	}

	// The upgrade charge comes from the fixed per-category price list,
	// not from the category's rate tier.
	charges, err := c.pricing.FetchUpgradeCharges(ctx, hotelID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrRemoteOperationFailed)
	}
	charge := charges[newCategory.String()]

	item, err := entity.ChangeCategory(newCategory, charge, c.clock.Now())
	if err != nil {
		if errors.Is(err, booking.ErrNoChange) {
			return nil, ErrNoChange
		}
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	snap, err := c.bookings.ChangeRoomType(ctx, bookingID, newCategory.String(), item != nil, charge)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrRemoteOperationFailed)
	}
	return queries.BookingViewFromSnapshot(snap), nil
}

func (c *bookingCommandsImpl) CollectPayment(ctx context.Context, hotelID, bookingID uuid.UUID, method booking.PaymentMethod, amount decimal.Decimal, transactionID string) (*queries.BookingView, error) {
	entity, err := c.fetchForHotel(ctx, hotelID, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := entity.CollectPayment(method, amount, transactionID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	snap, err := c.bookings.AddPayment(ctx, bookingID, string(method), amount, transactionID, item.Description)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrRemoteOperationFailed)
	}
	return queries.BookingViewFromSnapshot(snap), nil
}

func (c *bookingCommandsImpl) fetchForHotel(ctx context.Context, hotelID, bookingID uuid.UUID) (*booking.Booking, error) {
	snap, err := c.bookings.FetchBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrBookingNotFound)
	}
	if snap.HotelID != hotelID {
		return nil, errs.ErrHotelMismatch
	}
	return domainFromSnapshot(snap), nil
}

func (c *bookingCommandsImpl) standardBasePrice(ctx context.Context, hotelID uuid.UUID, category pricing.CategoryID) (decimal.Decimal, error) {
	rooms, err := c.pricing.FetchRoomsByHotel(ctx, hotelID)
	if err != nil {
		return decimal.Zero, errs.Mark(err, errs.ErrRemoteOperationFailed)
	}

	for _, tier := range queries.AggregateRateTiers(rooms, pricing.ModeStandard) {
		if tier.CategoryID == category {
			return tier.BasePrice, nil
		}
	}
	return decimal.Zero, pricing.ErrUnknownCategory
}

func newBookingNumber() string {
	return fmt.Sprintf("BK-%s", strings.ToUpper(uuid.NewString()[:8]))
}
