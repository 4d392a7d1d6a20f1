// Package memstore is an in-memory stand-in for the remote persistence
// service, used by tests and local development. It honors context
// cancellation so abandoned calls behave like a dropped network request.
package memstore

import (
	"context"
	"sync"
	"time"

	"hotelops/internal/infra"
	"hotelops/internal/usecase/remote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu             sync.Mutex
	bookings       map[uuid.UUID]remote.BookingSnapshot
	notes          map[uuid.UUID][]string
	rooms          map[uuid.UUID]remote.RoomUnit
	upgradeCharges map[uuid.UUID]map[string]decimal.Decimal

	// FailNext makes the next mutating call fail, for exercising the
	// no-partial-local-state contract.
	FailNext error
}

func New() *Store {
	return &Store{
		bookings:       make(map[uuid.UUID]remote.BookingSnapshot),
		notes:          make(map[uuid.UUID][]string),
		rooms:          make(map[uuid.UUID]remote.RoomUnit),
		upgradeCharges: make(map[uuid.UUID]map[string]decimal.Decimal),
	}
}

var (
	_ remote.BookingGateway = (*Store)(nil)
	_ remote.PricingGateway = (*Store)(nil)
)

// SeedRoom registers a room unit.
func (s *Store) SeedRoom(unit remote.RoomUnit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[unit.ID] = unit
}

// SeedUpgradeCharge sets one entry of a hotel's upgrade price list.
func (s *Store) SeedUpgradeCharge(hotelID uuid.UUID, category string, charge decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upgradeCharges[hotelID] == nil {
		s.upgradeCharges[hotelID] = make(map[string]decimal.Decimal)
	}
	s.upgradeCharges[hotelID][category] = charge
}

// Notes returns the audit notes recorded for a booking.
func (s *Store) Notes(bookingID uuid.UUID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.notes[bookingID]))
	copy(out, s.notes[bookingID])
	return out
}

func (s *Store) failIfArmed() error {
	if s.FailNext != nil {
		err := s.FailNext
		s.FailNext = nil
		return err
	}
	return nil
}

func (s *Store) FetchBooking(ctx context.Context, bookingID uuid.UUID) (*remote.BookingSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.bookings[bookingID]
	if !ok {
		return nil, infra.WrapStoreErr("booking not found", nil, infra.KindNotFound)
	}
	return cloneSnapshot(snap), nil
}

func (s *Store) CreateBooking(ctx context.Context, snap remote.BookingSnapshot) (*remote.BookingSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfArmed(); err != nil {
		return nil, err
	}

	now := time.Now()
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = now
	}
	snap.UpdatedAt = now
	s.bookings[snap.ID] = *cloneSnapshot(snap)
	return cloneSnapshot(snap), nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, newStatus, note string) (*remote.BookingSnapshot, error) {
	return s.mutate(ctx, bookingID, func(snap *remote.BookingSnapshot) {
		snap.Status = newStatus
		if newStatus == "CHECKED_IN" && snap.CheckInTime == nil {
			t := time.Now()
			snap.CheckInTime = &t
		}
		s.notes[bookingID] = append(s.notes[bookingID], note)
	})
}

func (s *Store) ExtendBooking(ctx context.Context, bookingID uuid.UUID, newCheckOutDate time.Time, charge decimal.Decimal, note string) (*remote.BookingSnapshot, error) {
	return s.mutate(ctx, bookingID, func(snap *remote.BookingSnapshot) {
		snap.CheckOutDate = newCheckOutDate
		snap.Ledger = append(snap.Ledger, remote.LedgerLineSnapshot{
			Kind:        "EXTENSION",
			Amount:      charge,
			OccurredAt:  time.Now(),
			Description: note,
		})
	})
}

func (s *Store) ChangeRoomType(ctx context.Context, bookingID uuid.UUID, newCategory string, addCharge bool, amount decimal.Decimal) (*remote.BookingSnapshot, error) {
	return s.mutate(ctx, bookingID, func(snap *remote.BookingSnapshot) {
		snap.RoomType = newCategory
		if addCharge && amount.IsPositive() {
			snap.Ledger = append(snap.Ledger, remote.LedgerLineSnapshot{
				Kind:        "UPGRADE",
				Amount:      amount,
				OccurredAt:  time.Now(),
				Description: "Room category changed to " + newCategory,
			})
		}
	})
}

func (s *Store) AddPayment(ctx context.Context, bookingID uuid.UUID, method string, amount decimal.Decimal, transactionID, notes string) (*remote.BookingSnapshot, error) {
	return s.mutate(ctx, bookingID, func(snap *remote.BookingSnapshot) {
		snap.Ledger = append(snap.Ledger, remote.LedgerLineSnapshot{
			Kind:        "PAYMENT",
			Amount:      amount,
			OccurredAt:  time.Now(),
			Description: notes,
		})
	})
}

func (s *Store) FetchRoomsByHotel(ctx context.Context, hotelID uuid.UUID) ([]remote.RoomUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var units []remote.RoomUnit
	for _, unit := range s.rooms {
		if unit.HotelID == hotelID {
			units = append(units, unit)
		}
	}
	return units, nil
}

func (s *Store) UpdateRoomPricing(ctx context.Context, roomID uuid.UUID, update remote.RoomPricingUpdate) (*remote.RateTierSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfArmed(); err != nil {
		return nil, err
	}

	unit, ok := s.rooms[roomID]
	if !ok {
		return nil, infra.WrapStoreErr("room not found", nil, infra.KindNotFound)
	}

	if update.Mode == "weekend" {
		unit.WeekendMin = update.MinPrice
		unit.WeekendBase = update.BasePrice
		unit.WeekendMax = update.MaxPrice
	} else {
		unit.StandardMin = update.MinPrice
		unit.StandardBase = update.BasePrice
		unit.StandardMax = update.MaxPrice
	}
	unit.ExtraBedPrice = update.ExtraBedPrice
	unit.UpdatedAt = time.Now()
	s.rooms[roomID] = unit

	return &remote.RateTierSnapshot{
		RoomID:    roomID,
		Category:  unit.Category,
		Mode:      update.Mode,
		MinPrice:  update.MinPrice,
		BasePrice: update.BasePrice,
		MaxPrice:  update.MaxPrice,
		UpdatedAt: unit.UpdatedAt,
	}, nil
}

func (s *Store) FetchUpgradeCharges(ctx context.Context, hotelID uuid.UUID) (map[string]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	charges := make(map[string]decimal.Decimal, len(s.upgradeCharges[hotelID]))
	for category, charge := range s.upgradeCharges[hotelID] {
		charges[category] = charge
	}
	return charges, nil
}

func (s *Store) mutate(ctx context.Context, bookingID uuid.UUID, fn func(*remote.BookingSnapshot)) (*remote.BookingSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failIfArmed(); err != nil {
		return nil, err
	}

	snap, ok := s.bookings[bookingID]
	if !ok {
		return nil, infra.WrapStoreErr("booking not found", nil, infra.KindNotFound)
	}

	working := cloneSnapshot(snap)
	fn(working)
	working.UpdatedAt = time.Now()
	s.bookings[bookingID] = *cloneSnapshot(*working)
	return cloneSnapshot(*working), nil
}

func cloneSnapshot(snap remote.BookingSnapshot) *remote.BookingSnapshot {
	out := snap
	out.Ledger = make([]remote.LedgerLineSnapshot, len(snap.Ledger))
	copy(out.Ledger, snap.Ledger)
	if snap.CheckInTime != nil {
		t := *snap.CheckInTime
		out.CheckInTime = &t
	}
	return &out
}
