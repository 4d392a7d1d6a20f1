//go:build unit

package booking_test

import (
	"fmt"
	"testing"
	"time"

	"hotelops/internal/domain/booking"
	"hotelops/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("seeds room charge and one-time tax", func(t *testing.T) {
		// 1 night, 2 rooms at 200 -> 400 room charge, 72 tax
		b, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.CheckInDate = time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
			b.CheckOutDate = time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)
			b.NumberOfRooms = 2
			b.BasePrice = decimal.NewFromInt(200)
		}).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, 1, b.Nights())
		assert.Nil(t, b.CheckInTime())

		lines := b.Ledger().Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, booking.LineRoom, lines[0].Kind)
		assert.True(t, lines[0].Amount.Equal(decimal.NewFromInt(400)), "got %s", lines[0].Amount)
		assert.Equal(t, booking.LineTax, lines[1].Kind)
		assert.True(t, lines[1].Amount.Equal(decimal.NewFromInt(72)), "got %s", lines[1].Amount)

		assert.True(t, b.Ledger().TotalAmount().Equal(decimal.NewFromInt(472)))
		assert.Equal(t, booking.PaymentStatusPending, b.PaymentStatus())
	})

	t.Run("check-out not after check-in", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.CheckOutDate = b.CheckInDate
		}).BuildDomain()
		require.ErrorIs(t, err, booking.ErrInvalidStayDates)
	})

	t.Run("zero rooms", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.NumberOfRooms = 0
		}).BuildDomain()
		require.ErrorIs(t, err, booking.ErrNoRooms)
	})

	t.Run("negative base price", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.BasePrice = decimal.NewFromInt(-10)
		}).BuildDomain()
		require.ErrorIs(t, err, booking.ErrNegativeAmount)
	})
}

func TestNightsBetween(t *testing.T) {
	base := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		to     time.Time
		nights int
	}{
		{"exactly 24h", base.Add(24 * time.Hour), 1},
		{"under one day rounds up", base.Add(22 * time.Hour), 1},
		{"just past one day rounds up", base.Add(25 * time.Hour), 2},
		{"two and a half days", base.Add(60 * time.Hour), 3},
		{"same instant floors at one", base, 1},
		{"inverted dates floor at one", base.Add(-48 * time.Hour), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.nights, booking.NightsBetween(base, tc.to))
		})
	}
}

func TestBookingTransition(t *testing.T) {
	now := time.Date(2026, 3, 12, 15, 30, 0, 0, time.UTC)

	t.Run("records an audit note with the timestamp", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		note, err := b.Transition(booking.StatusConfirmed, now)
		require.NoError(t, err)

		assert.Equal(t, "Status changed to CONFIRMED at 2026-03-12T15:30:00Z", note)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, []string{note}, b.AuditNotes())
		assert.Nil(t, b.CheckInTime())
	})

	t.Run("checking in stamps the check-in time", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = b.Transition(booking.StatusCheckedIn, now)
		require.NoError(t, err)

		require.NotNil(t, b.CheckInTime())
		assert.True(t, b.CheckInTime().Equal(now))
	})

	t.Run("terminal booking rejects further transitions", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = b.Transition(booking.StatusCancelled, now)
		require.NoError(t, err)

		_, err = b.Transition(booking.StatusConfirmed, now.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrTerminalStatus)
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Len(t, b.AuditNotes(), 1)
	})

	t.Run("full lifecycle accumulates notes in order", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		steps := []booking.Status{booking.StatusConfirmed, booking.StatusCheckedIn, booking.StatusCheckedOut}
		at := now
		for _, s := range steps {
			_, err := b.Transition(s, at)
			require.NoError(t, err)
			at = at.Add(time.Hour)
		}

		notes := b.AuditNotes()
		require.Len(t, notes, 3)
		for i, s := range steps {
			assert.Contains(t, notes[i], fmt.Sprintf("Status changed to %s", s))
		}
	})
}

func TestBookingCollectPayment(t *testing.T) {
	now := time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC)

	t.Run("payment reduces the balance", func(t *testing.T) {
		// 2 nights at 200, 1 room -> 400 + 72 tax
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		item, err := b.CollectPayment(booking.PaymentCard, decimal.NewFromInt(300), "TXN-001", now)
		require.NoError(t, err)

		assert.Equal(t, booking.LinePayment, item.Kind)
		assert.Contains(t, item.Description, "CARD")
		assert.Contains(t, item.Description, "TXN-001")
		assert.True(t, b.Ledger().BalanceDue().Equal(decimal.NewFromInt(172)), "got %s", b.Ledger().BalanceDue())
		assert.Equal(t, booking.PaymentStatusPending, b.PaymentStatus())
	})

	t.Run("overpayment is accepted", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = b.CollectPayment(booking.PaymentCash, decimal.NewFromInt(1000), "TXN-002", now)
		require.NoError(t, err)

		assert.True(t, b.Ledger().BalanceDue().IsNegative())
		assert.Equal(t, booking.PaymentStatusPaid, b.PaymentStatus())
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		_, err = b.CollectPayment(booking.PaymentCash, decimal.NewFromInt(-5), "TXN-003", now)
		require.ErrorIs(t, err, booking.ErrNegativeAmount)
		assert.Len(t, b.Ledger().Lines(), 2)
	})
}
