package api

import (
	"errors"
	"net/http"

	"hotelops/internal/domain/booking"
	"hotelops/internal/domain/pricing"
	reqdto "hotelops/internal/handler/dto/request"
	resdto "hotelops/internal/handler/dto/response"
	"hotelops/internal/pkg/errs"
	"hotelops/internal/usecase/commands"
	"hotelops/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Tags bookings
// @Accept json
// @Produce json
// @Router /hotels/{hotelId}/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	hotelID, ok := pathUUID(c, "hotelId")
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), hotelID, req.ToParams())
	if err != nil {
		h.respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking view
// @Tags bookings
// @Produce json
// @Router /hotels/{hotelId}/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	hotelID, bookingID, ok := pathIDs(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetBookingView(c.Request.Context(), hotelID, bookingID)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Change booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Router /hotels/{hotelId}/bookings/{id}/status [patch]
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	hotelID, bookingID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req reqdto.ChangeStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.ApplyStatusChange(c.Request.Context(), hotelID, bookingID, req.ToStatus())
	if err != nil {
		h.respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Extend stay
// @Tags bookings
// @Accept json
// @Produce json
// @Router /hotels/{hotelId}/bookings/{id}/extension [post]
func (h *BookingHandler) ExtendStay(c *gin.Context) {
	hotelID, bookingID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req reqdto.ExtendStayRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.ApplyExtension(c.Request.Context(), hotelID, bookingID, req.NewCheckOutDate)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Change room category
// @Tags bookings
// @Accept json
// @Produce json
// @Router /hotels/{hotelId}/bookings/{id}/room-type [post]
func (h *BookingHandler) ChangeRoomType(c *gin.Context) {
	hotelID, bookingID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req reqdto.ChangeRoomTypeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.ApplyCategoryChange(c.Request.Context(), hotelID, bookingID, pricing.CategoryID(req.RoomType))
	if err != nil {
		h.respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Collect payment
// @Tags bookings
// @Accept json
// @Produce json
// @Router /hotels/{hotelId}/bookings/{id}/payments [post]
func (h *BookingHandler) CollectPayment(c *gin.Context) {
	hotelID, bookingID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req reqdto.CollectPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.bookingCommands.CollectPayment(
		c.Request.Context(), hotelID, bookingID,
		booking.PaymentMethod(req.Method), req.Amount, req.TransactionID,
	)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, errs.ErrHotelMismatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found for this hotel"})
	case errors.Is(err, commands.ErrNoStatusChange):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking already has the requested status"})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Status transition not allowed"})
	case errors.Is(err, commands.ErrNoChange):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking already has the requested room category"})
	case errors.Is(err, commands.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "New check-out date must be after the current one"})
	case errors.Is(err, pricing.ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown room category"})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed"})
	case errors.Is(err, commands.ErrStatusUpdateFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Status update could not be saved"})
	case errors.Is(err, errs.ErrRemoteOperationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Remote service is unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func pathIDs(c *gin.Context) (hotelID, bookingID uuid.UUID, ok bool) {
	hotelID, ok = pathUUID(c, "hotelId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	bookingID, ok = pathUUID(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return hotelID, bookingID, true
}
