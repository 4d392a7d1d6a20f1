package request

import (
	"hotelops/internal/domain/pricing"
	"hotelops/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type RateTierEditRequest struct {
	CategoryID string          `json:"category_id" binding:"required"`
	MinPrice   decimal.Decimal `json:"min_price"`
	BasePrice  decimal.Decimal `json:"base_price"`
	MaxPrice   decimal.Decimal `json:"max_price"`
}

type SaveRateSheetRequest struct {
	Mode  string                `json:"mode" binding:"required,oneof=standard weekend"`
	Tiers []RateTierEditRequest `json:"tiers" binding:"required,min=1,dive"`
}

func (r SaveRateSheetRequest) ToEdits() []commands.RateTierEdit {
	edits := make([]commands.RateTierEdit, 0, len(r.Tiers))
	for _, tier := range r.Tiers {
		edits = append(edits, commands.RateTierEdit{
			CategoryID: pricing.CategoryID(tier.CategoryID),
			MinPrice:   tier.MinPrice,
			BasePrice:  tier.BasePrice,
			MaxPrice:   tier.MaxPrice,
		})
	}
	return edits
}
