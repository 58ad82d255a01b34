package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/bridal_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	bookings *service.BookingService
	logger   *zap.Logger
}

func NewBookingHandler(bookings *service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

// ListDresses обрабатывает GET /api/dresses
func (h *BookingHandler) ListDresses(c *gin.Context) {
	dresses, err := h.bookings.ListDresses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dresses)
}

// GetDress обрабатывает GET /api/dresses/:id
func (h *BookingHandler) GetDress(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNotFound.Error()})
		return
	}

	dress, err := h.bookings.GetDress(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dress)
}

// CheckAvailability обрабатывает GET /api/bookings/check-availability?date=&time=
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	available, err := h.bookings.CheckAvailability(c.Request.Context(), c.Query("date"), c.Query("time"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

// Create обрабатывает POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		DressID int64  `json:"dressId"`
		Date    string `json:"date"`
		Time    string `json:"time"`
		Notes   string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrValidation.Error()})
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), userID(c), in.DressID, in.Date, in.Time, in.Notes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListMy обрабатывает GET /api/bookings/my
func (h *BookingHandler) ListMy(c *gin.Context) {
	bookings, err := h.bookings.ListUserBookings(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Cancel обрабатывает PATCH /api/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNotFound.Error()})
		return
	}

	booking, err := h.bookings.CancelBooking(c.Request.Context(), userID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Confirm обрабатывает PATCH /api/bookings/:id/confirm (только с админ-ключом)
func (h *BookingHandler) Confirm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNotFound.Error()})
		return
	}

	booking, err := h.bookings.ConfirmBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
