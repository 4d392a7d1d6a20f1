//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"hotelops/internal/domain/pricing"
	"hotelops/internal/infra/memstore"
	"hotelops/internal/usecase/commands"
	"hotelops/internal/usecase/queries"
	"hotelops/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pricingFixture struct {
	store    *memstore.Store
	cmds     commands.PricingCommands
	hotelID  uuid.UUID
	deluxeID uuid.UUID
	suiteID  uuid.UUID
}

func newPricingFixture(t *testing.T) *pricingFixture {
	t.Helper()
	store := memstore.New()
	hotelID := uuid.New()

	deluxe := builder.NewRoomUnitBuilder().With(func(r *builder.RoomUnitBuilder) {
		r.HotelID = hotelID
		r.Category = "DELUXE"
	}).Build()
	suite := builder.NewRoomUnitBuilder().With(func(r *builder.RoomUnitBuilder) {
		r.HotelID = hotelID
		r.RoomNumber = "301"
		r.Category = "SUITE"
		r.StandardMin = decimal.NewFromInt(300)
		r.StandardBase = decimal.NewFromInt(500)
		r.StandardMax = decimal.NewFromInt(900)
	}).Build()
	store.SeedRoom(deluxe)
	store.SeedRoom(suite)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &pricingFixture{
		store:    store,
		cmds:     commands.NewPricingCommands(store, logger),
		hotelID:  hotelID,
		deluxeID: deluxe.ID,
		suiteID:  suite.ID,
	}
}

func edit(category string, min, base, max int64) commands.RateTierEdit {
	return commands.RateTierEdit{
		CategoryID: pricing.CategoryID(category),
		MinPrice:   decimal.NewFromInt(min),
		BasePrice:  decimal.NewFromInt(base),
		MaxPrice:   decimal.NewFromInt(max),
	}
}

func (f *pricingFixture) standardBase(t *testing.T, category string) decimal.Decimal {
	t.Helper()
	rooms, err := f.store.FetchRoomsByHotel(context.Background(), f.hotelID)
	require.NoError(t, err)
	for _, tier := range queries.AggregateRateTiers(rooms, pricing.ModeStandard) {
		if tier.CategoryID == pricing.CategoryID(category) {
			return tier.BasePrice
		}
	}
	t.Fatalf("category %s not found", category)
	return decimal.Zero
}

func TestSavePricingBatch(t *testing.T) {
	t.Run("commits the edited categories", func(t *testing.T) {
		f := newPricingFixture(t)

		err := f.cmds.SavePricingBatch(context.Background(), f.hotelID, pricing.ModeStandard, []commands.RateTierEdit{
			edit("DELUXE", 160, 220, 450),
		})
		require.NoError(t, err)

		assert.True(t, f.standardBase(t, "DELUXE").Equal(decimal.NewFromInt(220)))
		assert.True(t, f.standardBase(t, "SUITE").Equal(decimal.NewFromInt(500)))
	})

	t.Run("saving the loaded tiers unchanged touches nothing", func(t *testing.T) {
		f := newPricingFixture(t)

		// An armed failure that survives the call proves no update was
		// issued.
		f.store.FailNext = errors.New("should never fire")
		err := f.cmds.SavePricingBatch(context.Background(), f.hotelID, pricing.ModeStandard, []commands.RateTierEdit{
			edit("DELUXE", 150, 200, 400),
			edit("SUITE", 300, 500, 900),
		})
		require.NoError(t, err)
		assert.NotNil(t, f.store.FailNext)
	})

	t.Run("validation failure reports every offending category and commits nothing", func(t *testing.T) {
		f := newPricingFixture(t)

		err := f.cmds.SavePricingBatch(context.Background(), f.hotelID, pricing.ModeStandard, []commands.RateTierEdit{
			edit("DELUXE", 500, 200, 400), // min > base
			edit("SUITE", 300, 1000, 900), // base > max
		})

		var batchErr *commands.BatchValidationError
		require.ErrorAs(t, err, &batchErr)
		require.Len(t, batchErr.Violations, 2)
		assert.Equal(t, "min", batchErr.Violations["DELUXE"].Field)
		assert.Equal(t, "base", batchErr.Violations["SUITE"].Field)

		assert.True(t, f.standardBase(t, "DELUXE").Equal(decimal.NewFromInt(200)))
		assert.True(t, f.standardBase(t, "SUITE").Equal(decimal.NewFromInt(500)))
	})

	t.Run("a stored violation in an unedited category does not block the save", func(t *testing.T) {
		store := memstore.New()
		hotelID := uuid.New()
		store.SeedRoom(builder.NewRoomUnitBuilder().With(func(r *builder.RoomUnitBuilder) {
			r.HotelID = hotelID
		}).Build())
		// Broken upstream data: the stored SUITE tier has min above base.
		store.SeedRoom(builder.NewRoomUnitBuilder().With(func(r *builder.RoomUnitBuilder) {
			r.HotelID = hotelID
			r.RoomNumber = "301"
			r.Category = "SUITE"
			r.StandardMin = decimal.NewFromInt(1000)
			r.StandardBase = decimal.NewFromInt(500)
			r.StandardMax = decimal.NewFromInt(900)
		}).Build())
		cmds := commands.NewPricingCommands(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

		err := cmds.SavePricingBatch(context.Background(), hotelID, pricing.ModeStandard, []commands.RateTierEdit{
			edit("DELUXE", 160, 220, 450),
		})
		require.NoError(t, err)

		rooms, err := store.FetchRoomsByHotel(context.Background(), hotelID)
		require.NoError(t, err)
		for _, tier := range queries.AggregateRateTiers(rooms, pricing.ModeStandard) {
			if tier.CategoryID == "DELUXE" {
				assert.True(t, tier.BasePrice.Equal(decimal.NewFromInt(220)))
			}
		}
	})

	t.Run("categories commit independently after a failure", func(t *testing.T) {
		f := newPricingFixture(t)

		// Categories commit in sorted order, so the armed failure hits
		// DELUXE and SUITE proceeds.
		f.store.FailNext = errors.New("write refused")
		err := f.cmds.SavePricingBatch(context.Background(), f.hotelID, pricing.ModeStandard, []commands.RateTierEdit{
			edit("DELUXE", 160, 220, 450),
			edit("SUITE", 320, 550, 950),
		})

		var partial *commands.PartialCommitError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, []pricing.CategoryID{"DELUXE"}, partial.Failed)
		assert.Equal(t, []pricing.CategoryID{"SUITE"}, partial.Succeeded)

		assert.True(t, f.standardBase(t, "DELUXE").Equal(decimal.NewFromInt(200)), "failed category keeps its prices")
		assert.True(t, f.standardBase(t, "SUITE").Equal(decimal.NewFromInt(550)), "succeeding category is saved")
	})

	t.Run("weekend mode leaves standard prices alone", func(t *testing.T) {
		f := newPricingFixture(t)

		err := f.cmds.SavePricingBatch(context.Background(), f.hotelID, pricing.ModeWeekend, []commands.RateTierEdit{
			edit("DELUXE", 200, 275, 550),
		})
		require.NoError(t, err)

		rooms, err := f.store.FetchRoomsByHotel(context.Background(), f.hotelID)
		require.NoError(t, err)
		for _, room := range rooms {
			if room.ID != f.deluxeID {
				continue
			}
			assert.True(t, room.WeekendBase.Equal(decimal.NewFromInt(275)))
			assert.True(t, room.StandardBase.Equal(decimal.NewFromInt(200)))
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newPricingFixture(t)

		err := f.cmds.SavePricingBatch(context.Background(), f.hotelID, pricing.ModeStandard, []commands.RateTierEdit{
			edit("PENTHOUSE", 100, 200, 300),
		})
		require.ErrorIs(t, err, pricing.ErrUnknownCategory)
	})

	t.Run("unknown rate mode", func(t *testing.T) {
		f := newPricingFixture(t)

		err := f.cmds.SavePricingBatch(context.Background(), f.hotelID, pricing.RateMode("holiday"), nil)
		require.ErrorIs(t, err, commands.ErrInvalidRateMode)
	})
}
