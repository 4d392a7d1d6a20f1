//go:build unit

package pricing_test

import (
	"testing"

	"hotelops/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSheet() *pricing.Sheet {
	return pricing.NewSheet(pricing.ModeStandard, []pricing.RateTier{
		tier("DELUXE", 150, 200, 400),
		tier("STANDARD", 80, 120, 250),
		tier("SUITE", 300, 500, 900),
	})
}

func TestSheetEdit(t *testing.T) {
	t.Run("edit replaces the working tier only", func(t *testing.T) {
		s := newTestSheet()
		require.NoError(t, s.Edit(tier("DELUXE", 160, 220, 400)))

		tiers := s.Tiers()
		require.Len(t, tiers, 3)
		assert.True(t, tiers[0].BasePrice.Equal(decimal.NewFromInt(220)))
		assert.Equal(t, []pricing.CategoryID{"DELUXE"}, s.Dirty())
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		s := newTestSheet()
		err := s.Edit(tier("PENTHOUSE", 1000, 2000, 4000))
		require.ErrorIs(t, err, pricing.ErrUnknownCategory)
		assert.Empty(t, s.Dirty())
	})

	t.Run("tiers keep their load order", func(t *testing.T) {
		s := newTestSheet()
		ids := make([]pricing.CategoryID, 0, 3)
		for _, tr := range s.Tiers() {
			ids = append(ids, tr.CategoryID)
		}
		assert.Equal(t, []pricing.CategoryID{"DELUXE", "STANDARD", "SUITE"}, ids)
	})
}

func TestSheetDirty(t *testing.T) {
	t.Run("untouched sheet has no dirty categories", func(t *testing.T) {
		assert.Empty(t, newTestSheet().Dirty())
	})

	t.Run("writing back the identical tier is not dirty", func(t *testing.T) {
		s := newTestSheet()
		require.NoError(t, s.Edit(tier("DELUXE", 150, 200, 400)))
		assert.Empty(t, s.Dirty())
	})

	t.Run("only the edited categories are dirty", func(t *testing.T) {
		s := newTestSheet()
		require.NoError(t, s.Edit(tier("STANDARD", 90, 130, 250)))
		require.NoError(t, s.Edit(tier("SUITE", 300, 550, 900)))
		assert.Equal(t, []pricing.CategoryID{"STANDARD", "SUITE"}, s.Dirty())
	})
}

func TestSheetReset(t *testing.T) {
	s := newTestSheet()
	require.NoError(t, s.Edit(tier("DELUXE", 999, 1999, 3999)))
	require.NoError(t, s.Edit(tier("SUITE", 1, 2, 3)))
	require.NotEmpty(t, s.Dirty())

	s.Reset()

	assert.Empty(t, s.Dirty())
	tiers := s.Tiers()
	assert.True(t, tiers[0].BasePrice.Equal(decimal.NewFromInt(200)))
	assert.True(t, tiers[2].BasePrice.Equal(decimal.NewFromInt(500)))
}

func TestSheetMarkCommitted(t *testing.T) {
	s := newTestSheet()
	require.NoError(t, s.Edit(tier("DELUXE", 160, 220, 400)))
	require.NoError(t, s.Edit(tier("SUITE", 300, 550, 900)))

	s.MarkCommitted("DELUXE")

	// SUITE is still pending; a reset now would roll it back but keep the
	// committed DELUXE edit.
	assert.Equal(t, []pricing.CategoryID{"SUITE"}, s.Dirty())

	s.Reset()
	tiers := s.Tiers()
	assert.True(t, tiers[0].BasePrice.Equal(decimal.NewFromInt(220)))
	assert.True(t, tiers[2].BasePrice.Equal(decimal.NewFromInt(500)))
}
