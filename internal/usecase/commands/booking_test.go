//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelops/internal/domain/booking"
	"hotelops/internal/domain/pricing"
	"hotelops/internal/infra/memstore"
	"hotelops/internal/pkg/clock"
	"hotelops/internal/pkg/errs"
	"hotelops/internal/usecase/commands"
	"hotelops/internal/usecase/remote"
	"hotelops/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)

type bookingFixture struct {
	store   *memstore.Store
	clock   *clock.MockClock
	cmds    commands.BookingCommands
	hotelID uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	store := memstore.New()
	clk := clock.NewMockClock(testNow)
	hotelID := uuid.New()

	store.SeedRoom(builder.NewRoomUnitBuilder().With(func(r *builder.RoomUnitBuilder) {
		r.HotelID = hotelID
		r.Category = "DELUXE"
		r.StandardBase = decimal.NewFromInt(200)
	}).Build())
	store.SeedRoom(builder.NewRoomUnitBuilder().With(func(r *builder.RoomUnitBuilder) {
		r.HotelID = hotelID
		r.RoomNumber = "201"
		r.Category = "SUITE"
		r.StandardMin = decimal.NewFromInt(300)
		r.StandardBase = decimal.NewFromInt(500)
		r.StandardMax = decimal.NewFromInt(900)
	}).Build())

	return &bookingFixture{
		store:   store,
		clock:   clk,
		cmds:    commands.NewBookingCommands(store, store, clk),
		hotelID: hotelID,
	}
}

func (f *bookingFixture) seedBooking(t *testing.T, mutate func(*builder.BookingBuilder)) remote.BookingSnapshot {
	t.Helper()
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.HotelID = f.hotelID
	})
	if mutate != nil {
		b.With(mutate)
	}
	snap, err := f.store.CreateBooking(context.Background(), b.BuildSnapshot())
	require.NoError(t, err)
	return *snap
}

func TestCreateBooking(t *testing.T) {
	t.Run("creates a pending booking with room charge and tax", func(t *testing.T) {
		f := newBookingFixture(t)

		view, err := f.cmds.CreateBooking(context.Background(), f.hotelID, commands.CreateBookingParams{
			GuestFirstName: "Maria",
			GuestLastName:  "Santos",
			GuestEmail:     "maria.santos@example.com",
			CheckInDate:    time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC),
			CheckOutDate:   time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC),
			RoomType:       "DELUXE",
			NumberOfGuests: 2,
			NumberOfRooms:  1,
		})
		require.NoError(t, err)

		assert.Equal(t, "PENDING", view.Status)
		assert.Equal(t, 2, view.Nights)
		assert.NotEmpty(t, view.BookingNumber)

		// 2 nights at 200 plus 18% tax
		require.Len(t, view.Ledger.Lines, 2)
		assert.True(t, view.Ledger.TotalAmount.Equal(decimal.NewFromInt(472)), "got %s", view.Ledger.TotalAmount)
		assert.Equal(t, "PENDING", view.PaymentStatus)

		// persisted, not just returned
		stored, err := f.store.FetchBooking(context.Background(), view.ID)
		require.NoError(t, err)
		assert.Equal(t, "PENDING", stored.Status)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.cmds.CreateBooking(context.Background(), f.hotelID, commands.CreateBookingParams{
			GuestFirstName: "Maria",
			CheckInDate:    time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC),
			CheckOutDate:   time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC),
			RoomType:       "PENTHOUSE",
			NumberOfRooms:  1,
		})
		require.ErrorIs(t, err, pricing.ErrUnknownCategory)
	})

	t.Run("empty guest name", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.cmds.CreateBooking(context.Background(), f.hotelID, commands.CreateBookingParams{
			CheckInDate:  time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC),
			RoomType:     "DELUXE",
		})
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("inverted stay dates", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.cmds.CreateBooking(context.Background(), f.hotelID, commands.CreateBookingParams{
			GuestFirstName: "Maria",
			CheckInDate:    time.Date(2026, 3, 17, 14, 0, 0, 0, time.UTC),
			CheckOutDate:   time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
			RoomType:       "DELUXE",
			NumberOfRooms:  1,
		})
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestApplyStatusChange(t *testing.T) {
	t.Run("persists the new status and its audit note", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		view, err := f.cmds.ApplyStatusChange(context.Background(), f.hotelID, snap.ID, booking.StatusConfirmed)
		require.NoError(t, err)

		assert.Equal(t, "CONFIRMED", view.Status)
		assert.NotContains(t, view.AllowedTransitions, "CONFIRMED")

		notes := f.store.Notes(snap.ID)
		require.Len(t, notes, 1)
		assert.Equal(t, "Status changed to CONFIRMED at 2026-03-12T15:00:00Z", notes[0])
	})

	t.Run("check-in stamps the check-in time", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, func(b *builder.BookingBuilder) {
			b.Status = "CONFIRMED"
		})

		view, err := f.cmds.ApplyStatusChange(context.Background(), f.hotelID, snap.ID, booking.StatusCheckedIn)
		require.NoError(t, err)

		assert.Equal(t, "CHECKED_IN", view.Status)
		assert.NotNil(t, view.CheckInTime)
	})

	t.Run("same status", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		_, err := f.cmds.ApplyStatusChange(context.Background(), f.hotelID, snap.ID, booking.StatusPending)
		require.ErrorIs(t, err, commands.ErrNoStatusChange)
	})

	t.Run("terminal booking", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, func(b *builder.BookingBuilder) {
			b.Status = "CHECKED_OUT"
		})

		_, err := f.cmds.ApplyStatusChange(context.Background(), f.hotelID, snap.ID, booking.StatusConfirmed)
		require.ErrorIs(t, err, commands.ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.cmds.ApplyStatusChange(context.Background(), f.hotelID, uuid.New(), booking.StatusConfirmed)
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("booking from another hotel", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, func(b *builder.BookingBuilder) {
			b.HotelID = uuid.New()
		})

		_, err := f.cmds.ApplyStatusChange(context.Background(), f.hotelID, snap.ID, booking.StatusConfirmed)
		require.ErrorIs(t, err, errs.ErrHotelMismatch)
	})

	t.Run("failed persistence leaves the stored status untouched", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		f.store.FailNext = errors.New("connection reset")
		_, err := f.cmds.ApplyStatusChange(context.Background(), f.hotelID, snap.ID, booking.StatusConfirmed)
		require.ErrorIs(t, err, commands.ErrStatusUpdateFailed)

		stored, err := f.store.FetchBooking(context.Background(), snap.ID)
		require.NoError(t, err)
		assert.Equal(t, "PENDING", stored.Status)
		assert.Empty(t, f.store.Notes(snap.ID))
	})
}

func TestApplyExtension(t *testing.T) {
	t.Run("moves the check-out and charges the delta", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)
		newCheckOut := snap.CheckOutDate.Add(48 * time.Hour)

		view, err := f.cmds.ApplyExtension(context.Background(), f.hotelID, snap.ID, newCheckOut)
		require.NoError(t, err)

		assert.True(t, view.CheckOutDate.Equal(newCheckOut))

		// 2 added nights at the DELUXE standard base of 200
		lines := view.Ledger.Lines
		require.Len(t, lines, 3)
		assert.Equal(t, "EXTENSION", lines[2].Kind)
		assert.True(t, lines[2].Amount.Equal(decimal.NewFromInt(400)), "got %s", lines[2].Amount)
	})

	t.Run("date not after the current check-out", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		_, err := f.cmds.ApplyExtension(context.Background(), f.hotelID, snap.ID, snap.CheckOutDate)
		require.ErrorIs(t, err, commands.ErrInvalidDateRange)
	})

	t.Run("failed persistence leaves the stored dates untouched", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		f.store.FailNext = errors.New("timeout")
		_, err := f.cmds.ApplyExtension(context.Background(), f.hotelID, snap.ID, snap.CheckOutDate.Add(24*time.Hour))
		require.ErrorIs(t, err, errs.ErrRemoteOperationFailed)

		stored, err := f.store.FetchBooking(context.Background(), snap.ID)
		require.NoError(t, err)
		assert.True(t, stored.CheckOutDate.Equal(snap.CheckOutDate))
		assert.Len(t, stored.Ledger, 2)
	})
}

func TestApplyCategoryChange(t *testing.T) {
	t.Run("applies the upgrade charge from the price list", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)
		f.store.SeedUpgradeCharge(f.hotelID, "SUITE", decimal.NewFromInt(120))

		view, err := f.cmds.ApplyCategoryChange(context.Background(), f.hotelID, snap.ID, pricing.CategoryID("SUITE"))
		require.NoError(t, err)

		assert.Equal(t, "SUITE", view.RoomType)
		lines := view.Ledger.Lines
		require.Len(t, lines, 3)
		assert.Equal(t, "UPGRADE", lines[2].Kind)
		assert.True(t, lines[2].Amount.Equal(decimal.NewFromInt(120)))
	})

	t.Run("a category missing from the price list changes for free", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		view, err := f.cmds.ApplyCategoryChange(context.Background(), f.hotelID, snap.ID, pricing.CategoryID("SUITE"))
		require.NoError(t, err)

		assert.Equal(t, "SUITE", view.RoomType)
		assert.Len(t, view.Ledger.Lines, 2)
	})

	t.Run("same category", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		_, err := f.cmds.ApplyCategoryChange(context.Background(), f.hotelID, snap.ID, pricing.CategoryID(snap.RoomType))
		require.ErrorIs(t, err, commands.ErrNoChange)
	})
}

func TestCollectPayment(t *testing.T) {
	t.Run("records the payment and lowers the balance", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		view, err := f.cmds.CollectPayment(context.Background(), f.hotelID, snap.ID, booking.PaymentCard, decimal.NewFromInt(300), "TXN-100")
		require.NoError(t, err)

		// 2 nights at 200 + 72 tax = 472, minus 300
		assert.True(t, view.Ledger.BalanceDue.Equal(decimal.NewFromInt(172)), "got %s", view.Ledger.BalanceDue)
		assert.Equal(t, "PENDING", view.PaymentStatus)
	})

	t.Run("overpayment flips the status to paid", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		view, err := f.cmds.CollectPayment(context.Background(), f.hotelID, snap.ID, booking.PaymentCash, decimal.NewFromInt(1000), "TXN-101")
		require.NoError(t, err)

		assert.True(t, view.Ledger.BalanceDue.IsNegative())
		assert.Equal(t, "PAID", view.PaymentStatus)
	})

	t.Run("negative amount", func(t *testing.T) {
		f := newBookingFixture(t)
		snap := f.seedBooking(t, nil)

		_, err := f.cmds.CollectPayment(context.Background(), f.hotelID, snap.ID, booking.PaymentCash, decimal.NewFromInt(-50), "TXN-102")
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}
