// Package pgstore adapts the remote gateway ports onto a Postgres database
// for deployments where the console runs against its own datastore instead
// of the hosted persistence service.
package pgstore

import (
	"context"
	"errors"
	"time"

	"hotelops/internal/infra"
	"hotelops/internal/usecase/remote"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type BookingStore struct {
	pool *pgxpool.Pool
}

func NewBookingStore(pool *pgxpool.Pool) *BookingStore {
	return &BookingStore{pool: pool}
}

var _ remote.BookingGateway = (*BookingStore)(nil)

const bookingColumns = `
	id, hotel_id, booking_number,
	guest_first_name, guest_last_name, guest_email, guest_phone,
	check_in_date, check_out_date, room_type,
	number_of_guests, number_of_rooms, status, check_in_time,
	created_at, updated_at`

func (s *BookingStore) FetchBooking(ctx context.Context, bookingID uuid.UUID) (*remote.BookingSnapshot, error) {
	return s.fetchBooking(ctx, s.pool, bookingID)
}

func (s *BookingStore) fetchBooking(ctx context.Context, q querier, bookingID uuid.UUID) (*remote.BookingSnapshot, error) {
	row := q.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)

	var snap remote.BookingSnapshot
	err := row.Scan(
		&snap.ID, &snap.HotelID, &snap.BookingNumber,
		&snap.Guest.FirstName, &snap.Guest.LastName, &snap.Guest.Email, &snap.Guest.Phone,
		&snap.CheckInDate, &snap.CheckOutDate, &snap.RoomType,
		&snap.NumberOfGuests, &snap.NumberOfRooms, &snap.Status, &snap.CheckInTime,
		&snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapStoreErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapStoreErr("failed to fetch booking", err)
	}

	lines, err := s.fetchLedger(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	snap.Ledger = lines

	return &snap, nil
}

func (s *BookingStore) fetchLedger(ctx context.Context, q querier, bookingID uuid.UUID) ([]remote.LedgerLineSnapshot, error) {
	rows, err := q.Query(ctx,
		`SELECT kind, amount::text, occurred_at, description
		 FROM booking_ledger WHERE booking_id = $1 ORDER BY id`, bookingID)
	if err != nil {
		return nil, infra.WrapStoreErr("failed to fetch ledger", err)
	}
	defer rows.Close()

	var lines []remote.LedgerLineSnapshot
	for rows.Next() {
		var line remote.LedgerLineSnapshot
		var amount string
		if err := rows.Scan(&line.Kind, &amount, &line.OccurredAt, &line.Description); err != nil {
			return nil, infra.WrapStoreErr("failed to scan ledger line", err)
		}
		line.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, infra.WrapStoreErr("invalid ledger amount", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStoreErr("failed to read ledger rows", err)
	}
	return lines, nil
}

func (s *BookingStore) CreateBooking(ctx context.Context, snap remote.BookingSnapshot) (*remote.BookingSnapshot, error) {
	return s.inTx(ctx, snap.ID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO bookings (
				id, hotel_id, booking_number,
				guest_first_name, guest_last_name, guest_email, guest_phone,
				check_in_date, check_out_date, room_type,
				number_of_guests, number_of_rooms, status, check_in_time
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			snap.ID, snap.HotelID, snap.BookingNumber,
			snap.Guest.FirstName, snap.Guest.LastName, snap.Guest.Email, snap.Guest.Phone,
			snap.CheckInDate, snap.CheckOutDate, snap.RoomType,
			snap.NumberOfGuests, snap.NumberOfRooms, snap.Status, snap.CheckInTime,
		)
		if err != nil {
			return infra.WrapStoreErr("failed to insert booking", err)
		}

		for _, line := range snap.Ledger {
			if err := insertLedgerLine(ctx, tx, snap.ID, line.Kind, line.Amount, line.OccurredAt, line.Description); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BookingStore) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, newStatus, note string) (*remote.BookingSnapshot, error) {
	return s.inTx(ctx, bookingID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE bookings SET
				status = $2,
				check_in_time = CASE WHEN $2 = 'CHECKED_IN' THEN now() ELSE check_in_time END,
				updated_at = now()
			 WHERE id = $1`, bookingID, newStatus)
		if err != nil {
			return infra.WrapStoreErr("failed to update booking status", err)
		}
		if tag.RowsAffected() == 0 {
			return infra.WrapStoreErr("booking not found", nil, infra.KindNotFound)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO booking_notes (booking_id, note) VALUES ($1, $2)`, bookingID, note)
		if err != nil {
			return infra.WrapStoreErr("failed to record status note", err)
		}
		return nil
	})
}

func (s *BookingStore) ExtendBooking(ctx context.Context, bookingID uuid.UUID, newCheckOutDate time.Time, charge decimal.Decimal, note string) (*remote.BookingSnapshot, error) {
	return s.inTx(ctx, bookingID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE bookings SET check_out_date = $2, updated_at = now() WHERE id = $1`,
			bookingID, newCheckOutDate)
		if err != nil {
			return infra.WrapStoreErr("failed to extend booking", err)
		}
		if tag.RowsAffected() == 0 {
			return infra.WrapStoreErr("booking not found", nil, infra.KindNotFound)
		}

		return insertLedgerLine(ctx, tx, bookingID, "EXTENSION", charge, time.Now(), note)
	})
}

func (s *BookingStore) ChangeRoomType(ctx context.Context, bookingID uuid.UUID, newCategory string, addCharge bool, amount decimal.Decimal) (*remote.BookingSnapshot, error) {
	return s.inTx(ctx, bookingID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE bookings SET room_type = $2, updated_at = now() WHERE id = $1`,
			bookingID, newCategory)
		if err != nil {
			return infra.WrapStoreErr("failed to change room type", err)
		}
		if tag.RowsAffected() == 0 {
			return infra.WrapStoreErr("booking not found", nil, infra.KindNotFound)
		}

		if addCharge && amount.IsPositive() {
			return insertLedgerLine(ctx, tx, bookingID, "UPGRADE", amount, time.Now(), "Room category changed to "+newCategory)
		}
		return nil
	})
}

func (s *BookingStore) AddPayment(ctx context.Context, bookingID uuid.UUID, method string, amount decimal.Decimal, transactionID, notes string) (*remote.BookingSnapshot, error) {
	return s.inTx(ctx, bookingID, func(tx pgx.Tx) error {
		if notes == "" {
			notes = "Payment via " + method + " (" + transactionID + ")"
		}
		return insertLedgerLine(ctx, tx, bookingID, "PAYMENT", amount, time.Now(), notes)
	})
}

// inTx runs fn atomically and re-reads the booking so callers always get
// the stored representation back.
func (s *BookingStore) inTx(ctx context.Context, bookingID uuid.UUID, fn func(tx pgx.Tx) error) (*remote.BookingSnapshot, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, infra.WrapStoreErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return nil, err
	}

	snap, err := s.fetchBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, infra.WrapStoreErr("failed to commit transaction", err)
	}
	return snap, nil
}

func insertLedgerLine(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, kind string, amount decimal.Decimal, occurredAt time.Time, description string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO booking_ledger (booking_id, kind, amount, occurred_at, description)
		 VALUES ($1, $2, $3::numeric, $4, $5)`,
		bookingID, kind, amount.String(), occurredAt, description)
	if err != nil {
		return infra.WrapStoreErr("failed to append ledger line", err)
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
