package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/littlelemon/littlelemon-api/internal/models"
	"github.com/littlelemon/littlelemon-api/internal/services"
)

// BookingController handles HTTP requests for bookings. All operations are
// owner-scoped: the caller only ever sees or touches their own bookings,
// and a foreign booking yields the same 404 as a missing one.
type BookingController interface {
	// ListBookings retrieves the caller's bookings
	ListBookings(c *gin.Context)
	// GetBooking retrieves one of the caller's bookings by ID
	GetBooking(c *gin.Context)
	// CreateBooking creates a booking owned by the caller
	CreateBooking(c *gin.Context)
	// UpdateBooking updates one of the caller's bookings, fully or partially
	UpdateBooking(c *gin.Context)
	// DeleteBooking deletes one of the caller's bookings
	DeleteBooking(c *gin.Context)
}

type bookingController struct {
	service services.BookingService
}

// NewBookingController creates a new instance of BookingController
func NewBookingController(service services.BookingService) BookingController {
	return &bookingController{service: service}
}

// Accepted booking date layouts. The first is also the render layout the
// original admin console used.
var bookingDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseBookingDate(value string) (time.Time, bool) {
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// bookingRequest carries a create or update payload. A client-supplied
// "user" field is deliberately not bound: ownership always comes from the
// authenticated caller, never from the payload.
type bookingRequest struct {
	Name        *string `json:"name"`
	NoOfGuest   *int    `json:"no_of_guest"`
	BookingDate *string `json:"bookingdate"`
}

func (r *bookingRequest) validate(requireAll bool) (time.Time, map[string]interface{}) {
	fields := map[string]interface{}{}
	var date time.Time

	if r.Name == nil {
		if requireAll {
			fields["name"] = "this field is required"
		}
	} else if *r.Name == "" {
		fields["name"] = "may not be blank"
	}

	if r.NoOfGuest == nil {
		if requireAll {
			fields["no_of_guest"] = "this field is required"
		}
	} else if *r.NoOfGuest <= 0 {
		fields["no_of_guest"] = "must be a positive integer"
	}

	if r.BookingDate == nil {
		if requireAll {
			fields["bookingdate"] = "this field is required"
		}
	} else {
		parsed, ok := parseBookingDate(*r.BookingDate)
		if !ok {
			fields["bookingdate"] = "invalid datetime format"
		}
		date = parsed
	}

	return date, fields
}

// bookingResponse is the serialized booking representation. The owner is
// rendered as a read-only display string, never as a writable reference.
type bookingResponse struct {
	ID          int    `json:"id"`
	User        string `json:"user"`
	Name        string `json:"name"`
	NoOfGuest   int    `json:"no_of_guest"`
	BookingDate string `json:"bookingdate"`
}

func toBookingResponse(b models.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		User:        b.User.String(),
		Name:        b.Name,
		NoOfGuest:   b.NoOfGuest,
		BookingDate: b.BookingDate.Format("2006-01-02 15:04:05"),
	}
}

func toBookingResponses(bookings []models.Booking) []bookingResponse {
	responses := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, toBookingResponse(b))
	}
	return responses
}

// ListBookings godoc
// @Summary List the caller's bookings
// @Description Get all bookings owned by the authenticated user, newest booking date first
// @Tags bookings
// @Produce json
// @Success 200 {array} bookingResponse
// @Failure 401 {object} models.OAuth2Error
// @Security BearerAuth
// @Router /api/bookings [get]
func (bc *bookingController) ListBookings(ctx *gin.Context) {
	userID := ctx.GetUint("userID")

	bookings, err := bc.service.GetBookingsByUserID(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve bookings"))
		return
	}
	ctx.JSON(http.StatusOK, toBookingResponses(bookings))
}

// GetBooking godoc
// @Summary Get a booking
// @Description Get one of the caller's bookings by ID; other users' bookings yield 404
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} bookingResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/bookings/{id} [get]
func (bc *bookingController) GetBooking(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	userID := ctx.GetUint("userID")

	booking, err := bc.service.GetBookingByID(id, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrBookingNotFound, "Booking not found"))
		return
	}
	ctx.JSON(http.StatusOK, toBookingResponse(booking))
}

// CreateBooking godoc
// @Summary Create a booking
// @Description Create a booking owned by the authenticated user; any "user" field in the payload is ignored
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body bookingRequest true "Booking fields"
// @Success 201 {object} bookingResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Security BearerAuth
// @Router /api/bookings [post]
func (bc *bookingController) CreateBooking(ctx *gin.Context) {
	var req bookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	date, fields := req.validate(true)
	if len(fields) > 0 {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(fields))
		return
	}

	booking := models.Booking{
		UserID:      ctx.GetUint("userID"), // owner is always the caller
		Name:        *req.Name,
		NoOfGuest:   *req.NoOfGuest,
		BookingDate: date,
	}

	created, err := bc.service.CreateBooking(booking)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create booking"))
		return
	}
	ctx.JSON(http.StatusCreated, toBookingResponse(created))
}

// UpdateBooking godoc
// @Summary Update a booking
// @Description Update one of the caller's bookings; PUT requires the full payload, PATCH accepts a partial one. The owner is immutable.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param booking body bookingRequest true "Booking fields"
// @Success 200 {object} bookingResponse
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/bookings/{id} [put]
func (bc *bookingController) UpdateBooking(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	userID := ctx.GetUint("userID")

	booking, err := bc.service.GetBookingByID(id, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrBookingNotFound, "Booking not found"))
		return
	}

	var req bookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	requireAll := ctx.Request.Method == http.MethodPut
	date, fields := req.validate(requireAll)
	if len(fields) > 0 {
		ctx.JSON(http.StatusBadRequest, models.NewValidationError(fields))
		return
	}

	if req.Name != nil {
		booking.Name = *req.Name
	}
	if req.NoOfGuest != nil {
		booking.NoOfGuest = *req.NoOfGuest
	}
	if req.BookingDate != nil {
		booking.BookingDate = date
	}
	// ID and UserID stay as loaded: the owner cannot be reassigned
	updated, err := bc.service.UpdateBooking(booking)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update booking"))
		return
	}
	ctx.JSON(http.StatusOK, toBookingResponse(updated))
}

// DeleteBooking godoc
// @Summary Delete a booking
// @Description Permanently delete one of the caller's bookings; other users' bookings yield 404
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.OAuth2Error
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/bookings/{id} [delete]
func (bc *bookingController) DeleteBooking(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	userID := ctx.GetUint("userID")

	if err := bc.service.DeleteBooking(id, userID); err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrBookingNotFound, "Booking not found"))
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
