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

type RoomStore struct {
	pool *pgxpool.Pool
}

func NewRoomStore(pool *pgxpool.Pool) *RoomStore {
	return &RoomStore{pool: pool}
}

var _ remote.PricingGateway = (*RoomStore)(nil)

func (s *RoomStore) FetchRoomsByHotel(ctx context.Context, hotelID uuid.UUID) ([]remote.RoomUnit, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, hotel_id, room_number, category, max_guests,
			standard_min::text, standard_base::text, standard_max::text,
			weekend_min::text, weekend_base::text, weekend_max::text,
			extra_bed_price::text, updated_at
		 FROM rooms WHERE hotel_id = $1 ORDER BY category, room_number`, hotelID)
	if err != nil {
		return nil, infra.WrapStoreErr("failed to fetch rooms", err)
	}
	defer rows.Close()

	var units []remote.RoomUnit
	for rows.Next() {
		var (
			unit     remote.RoomUnit
			prices   [6]string
			extraBed *string
		)
		err := rows.Scan(
			&unit.ID, &unit.HotelID, &unit.RoomNumber, &unit.Category, &unit.MaxGuests,
			&prices[0], &prices[1], &prices[2], &prices[3], &prices[4], &prices[5],
			&extraBed, &unit.UpdatedAt,
		)
		if err != nil {
			return nil, infra.WrapStoreErr("failed to scan room", err)
		}

		targets := []*decimal.Decimal{
			&unit.StandardMin, &unit.StandardBase, &unit.StandardMax,
			&unit.WeekendMin, &unit.WeekendBase, &unit.WeekendMax,
		}
		for i, raw := range prices {
			d, parseErr := decimal.NewFromString(raw)
			if parseErr != nil {
				return nil, infra.WrapStoreErr("invalid room price", parseErr)
			}
			*targets[i] = d
		}
		if extraBed != nil {
			d, parseErr := decimal.NewFromString(*extraBed)
			if parseErr != nil {
				return nil, infra.WrapStoreErr("invalid extra bed price", parseErr)
			}
			unit.ExtraBedPrice = &d
		}

		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStoreErr("failed to read room rows", err)
	}
	return units, nil
}

func (s *RoomStore) UpdateRoomPricing(ctx context.Context, roomID uuid.UUID, update remote.RoomPricingUpdate) (*remote.RateTierSnapshot, error) {
	columns := `standard_min = $2::numeric, standard_base = $3::numeric, standard_max = $4::numeric`
	if update.Mode == "weekend" {
		columns = `weekend_min = $2::numeric, weekend_base = $3::numeric, weekend_max = $4::numeric`
	}

	var extraBed *string
	if update.ExtraBedPrice != nil {
		v := update.ExtraBedPrice.String()
		extraBed = &v
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE rooms SET `+columns+`, extra_bed_price = $5::numeric, updated_at = now()
		 WHERE id = $1
		 RETURNING id, category, updated_at`,
		roomID, update.MinPrice.String(), update.BasePrice.String(), update.MaxPrice.String(), extraBed)

	var (
		snap      remote.RateTierSnapshot
		updatedAt time.Time
	)
	if err := row.Scan(&snap.RoomID, &snap.Category, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapStoreErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapStoreErr("failed to update room pricing", err)
	}

	snap.Mode = update.Mode
	snap.MinPrice = update.MinPrice
	snap.BasePrice = update.BasePrice
	snap.MaxPrice = update.MaxPrice
	snap.UpdatedAt = updatedAt
	return &snap, nil
}

func (s *RoomStore) FetchUpgradeCharges(ctx context.Context, hotelID uuid.UUID) (map[string]decimal.Decimal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT category, charge::text FROM upgrade_charges WHERE hotel_id = $1`, hotelID)
	if err != nil {
		return nil, infra.WrapStoreErr("failed to fetch upgrade charges", err)
	}
	defer rows.Close()

	charges := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category, raw string
		if err := rows.Scan(&category, &raw); err != nil {
			return nil, infra.WrapStoreErr("failed to scan upgrade charge", err)
		}
		d, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			return nil, infra.WrapStoreErr("invalid upgrade charge", parseErr)
		}
		charges[category] = d
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStoreErr("failed to read upgrade charges", err)
	}
	return charges, nil
}
