package api

import (
	"errors"
	"net/http"

	"hotelops/internal/domain/pricing"
	reqdto "hotelops/internal/handler/dto/request"
	resdto "hotelops/internal/handler/dto/response"
	"hotelops/internal/handler/httperr"
	"hotelops/internal/pkg/errs"
	"hotelops/internal/usecase/commands"
	"hotelops/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingCommands commands.PricingCommands
	pricingQueries  queries.PricingQueries
}

func NewPricingHandler(pricingCommands commands.PricingCommands, pricingQueries queries.PricingQueries) *PricingHandler {
	return &PricingHandler{
		pricingCommands: pricingCommands,
		pricingQueries:  pricingQueries,
	}
}

// @Summary Get rate sheet
// @Description Load a hotel's per-category rate tiers for one rate mode.
// Reloading discards client-side edits, which is the reset path.
// @Tags pricing
// @Produce json
// @Router /hotels/{hotelId}/rate-sheet [get]
func (h *PricingHandler) GetRateSheet(c *gin.Context) {
	hotelID, ok := pathUUID(c, "hotelId")
	if !ok {
		return
	}

	mode := pricing.RateMode(c.DefaultQuery("mode", pricing.ModeStandard.String()))
	if !mode.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rate mode"})
		return
	}

	view, err := h.pricingQueries.GetRateSheet(c.Request.Context(), hotelID, mode)
	if err != nil {
		h.respondPricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRateSheetView(view))
}

// @Summary Save rate sheet
// @Description Validate and commit a batch of rate tier edits. Commits are
// independent per category; a partial failure reports both subsets.
// @Tags pricing
// @Accept json
// @Produce json
// @Router /hotels/{hotelId}/rate-sheet [put]
func (h *PricingHandler) SaveRateSheet(c *gin.Context) {
	hotelID, ok := pathUUID(c, "hotelId")
	if !ok {
		return
	}

	var req reqdto.SaveRateSheetRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	err := h.pricingCommands.SavePricingBatch(c.Request.Context(), hotelID, pricing.RateMode(req.Mode), req.ToEdits())
	if err != nil {
		h.respondPricingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PricingHandler) respondPricingError(c *gin.Context, err error) {
	var validationErr *commands.BatchValidationError
	if errors.As(err, &validationErr) {
		detail := make([]resdto.RangeViolationResponse, 0, len(validationErr.Violations))
		for id, v := range validationErr.Violations {
			detail = append(detail, resdto.RangeViolationResponse{
				CategoryID: id.String(),
				Field:      v.Field,
			})
		}
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Rate tier validation failed", detail)
		return
	}

	var partialErr *commands.PartialCommitError
	if errors.As(err, &partialErr) {
		detail := resdto.PartialCommitResponse{
			Succeeded: categoryStrings(partialErr.Succeeded),
			Failed:    categoryStrings(partialErr.Failed),
		}
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Some categories could not be saved", detail)
		return
	}

	switch {
	case errors.Is(err, commands.ErrInvalidRateMode):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rate mode", nil)
	case errors.Is(err, pricing.ErrUnknownCategory):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown room category", nil)
	case errors.Is(err, errs.ErrRemoteOperationFailed):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Remote service is unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func categoryStrings(ids []pricing.CategoryID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
