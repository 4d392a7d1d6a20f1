package response

import (
	"hotelops/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type RateTierResponse struct {
	CategoryID     string          `json:"categoryId"`
	MinPrice       decimal.Decimal `json:"minPrice"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	MaxPrice       decimal.Decimal `json:"maxPrice"`
	AvailableUnits int             `json:"availableUnits"`
}

type RateSheetResponse struct {
	HotelID uuid.UUID          `json:"hotelId"`
	Mode    string             `json:"mode"`
	Tiers   []RateTierResponse `json:"tiers"`
}

type RangeViolationResponse struct {
	CategoryID string `json:"categoryId"`
	Field      string `json:"field"`
}

type PartialCommitResponse struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

func FromRateSheetView(view *queries.RateSheetView) *RateSheetResponse {
	var resp RateSheetResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
