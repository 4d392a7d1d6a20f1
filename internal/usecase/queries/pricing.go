package queries

import (
	"context"
	"sort"

	"hotelops/internal/domain/pricing"
	"hotelops/internal/pkg/errs"
	"hotelops/internal/usecase/remote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RateTierView struct {
	CategoryID     string          `json:"category_id"`
	MinPrice       decimal.Decimal `json:"min_price"`
	BasePrice      decimal.Decimal `json:"base_price"`
	MaxPrice       decimal.Decimal `json:"max_price"`
	AvailableUnits int             `json:"available_units"`
}

type RateSheetView struct {
	HotelID uuid.UUID      `json:"hotel_id"`
	Mode    string         `json:"mode"`
	Tiers   []RateTierView `json:"tiers"`
}

type PricingQueries interface {
	// GetRateSheet aggregates the hotel's room units into per-category
	// tiers for one rate mode. Reloading it is the "reset" path: edits
	// are discarded and the last-committed tiers come back verbatim.
	GetRateSheet(ctx context.Context, hotelID uuid.UUID, mode pricing.RateMode) (*RateSheetView, error)
}

type pricingQueriesImpl struct {
	gateway remote.PricingGateway
}

func NewPricingQueries(gateway remote.PricingGateway) PricingQueries {
	return &pricingQueriesImpl{gateway: gateway}
}

func (q *pricingQueriesImpl) GetRateSheet(ctx context.Context, hotelID uuid.UUID, mode pricing.RateMode) (*RateSheetView, error) {
	rooms, err := q.gateway.FetchRoomsByHotel(ctx, hotelID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrRemoteOperationFailed)
	}

	tiers := AggregateRateTiers(rooms, mode)
	views := make([]RateTierView, 0, len(tiers))
	for _, t := range tiers {
		views = append(views, RateTierView{
			CategoryID:     t.CategoryID.String(),
			MinPrice:       t.MinPrice,
			BasePrice:      t.BasePrice,
			MaxPrice:       t.MaxPrice,
			AvailableUnits: t.AvailableUnits,
		})
	}

	return &RateSheetView{
		HotelID: hotelID,
		Mode:    mode.String(),
		Tiers:   views,
	}, nil
}

// AggregateRateTiers groups room units by category into one tier per
// category. All units of a category carry the same stored pricing, so the
// first unit seen supplies the prices; the unit count becomes
// AvailableUnits (informational, not an allocation constraint).
func AggregateRateTiers(rooms []remote.RoomUnit, mode pricing.RateMode) []pricing.RateTier {
	byCategory := make(map[pricing.CategoryID]*pricing.RateTier)
	var order []pricing.CategoryID

	for _, room := range rooms {
		id := pricing.CategoryID(room.Category)
		tier, ok := byCategory[id]
		if !ok {
			t := tierFromRoom(room, mode)
			byCategory[id] = &t
			order = append(order, id)
			continue
		}
		tier.AvailableUnits++
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]pricing.RateTier, 0, len(order))
	for _, id := range order {
		out = append(out, *byCategory[id])
	}
	return out
}

func tierFromRoom(room remote.RoomUnit, mode pricing.RateMode) pricing.RateTier {
	tier := pricing.RateTier{
		CategoryID:     pricing.CategoryID(room.Category),
		AvailableUnits: 1,
	}
	if mode == pricing.ModeWeekend {
		tier.MinPrice = room.WeekendMin
		tier.BasePrice = room.WeekendBase
		tier.MaxPrice = room.WeekendMax
		return tier
	}
	tier.MinPrice = room.StandardMin
	tier.BasePrice = room.StandardBase
	tier.MaxPrice = room.StandardMax
	return tier
}
