package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reservationRepo "dinevoice/database/repository/reservation"
	"dinevoice/models"
	"dinevoice/services/booking"
	"dinevoice/services/slots"
	"dinevoice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the reservation repository over HTTP. The console
// client's RemoteStore is its main caller.
type BookingHandler struct {
	Repo   reservationRepo.ReservationRepository
	Hours  booking.Hours
	logger *zap.Logger
}

func NewBookingHandler(repo reservationRepo.ReservationRepository, hours booking.Hours, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Repo: repo, Hours: hours, logger: logger}
}

// CreateBookingHandler inserts a booking. A slot that is already taken answers
// 409 with conflict set so the caller can negotiate an alternative.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var draft models.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking payload", err.Error())
		return
	}

	confirmed, err := h.Repo.CreateBooking(c.Request.Context(), draft)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	h.logger.Info("Booking created",
		zap.String("bookingId", confirmed.ID),
		zap.String("date", confirmed.BookingDate),
		zap.String("time", confirmed.BookingTime),
	)
	c.JSON(http.StatusCreated, confirmed)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler returns the bookings held for ?date=.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", date)
		return
	}
	list, err := h.Repo.ListByDate(c.Request.Context(), date)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	if list == nil {
		list = []models.ConfirmedBooking{}
	}
	c.JSON(http.StatusOK, list)
}

// AvailabilityHandler computes the slot grid for ?date=. open, close and
// duration default to the restaurant's configured hours.
func (h *BookingHandler) AvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if !validDate(date) {
		utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", date)
		return
	}
	open := c.DefaultQuery("open", h.Hours.Open)
	closing := c.DefaultQuery("close", h.Hours.Close)
	duration := h.Hours.DurationMinutes
	if raw := c.Query("duration"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "duration must be a positive number of minutes", raw)
			return
		}
		duration = n
	}
	if _, err := slots.Generate(open, closing, duration); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid operating window", err.Error())
		return
	}

	grid, err := h.Repo.QueryAvailability(c.Request.Context(), date, open, closing, duration)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (h *BookingHandler) writeStoreError(c *gin.Context, err error) {
	var storeErr *reservationRepo.StoreError
	switch {
	case errors.Is(err, reservationRepo.ErrSlotConflict):
		utils.JSONConflict(c, "That time is already booked")
	case errors.Is(err, reservationRepo.ErrDuplicateBooking):
		utils.JSONError(c, http.StatusConflict, "Booking already exists", err.Error())
	case errors.Is(err, reservationRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", c.Param("id"))
	case errors.As(err, &storeErr) && storeErr.Err == nil:
		utils.JSONError(c, http.StatusUnprocessableEntity, storeErr.Message, "")
	default:
		h.logger.Error("Reservation store failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not reach the booking store", err.Error())
	}
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
