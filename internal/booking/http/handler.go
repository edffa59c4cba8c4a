package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tharadol/sport-booking-backend/internal/auth"
	"github.com/tharadol/sport-booking-backend/internal/booking"
	"github.com/tharadol/sport-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	var dateFrom, dateTo *time.Time
	if req.DateFrom != "" {
		t, err := time.Parse(booking.DateFormat, req.DateFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_from, expected YYYY-MM-DD"})
			return
		}
		dateFrom = &t
	}
	if req.DateTo != "" {
		t, err := time.Parse(booking.DateFormat, req.DateTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_to, expected YYYY-MM-DD"})
			return
		}
		dateTo = &t
	}

	// Non-admins only ever see their own bookings; admins may filter by user.
	filterUserID := auth.GetUserID(c)
	if auth.IsAdmin(c) {
		filterUserID = req.UserID
	}

	filter := booking.Filter{
		UserID:   filterUserID,
		FieldID:  req.FieldID,
		Status:   req.Status,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, err := time.Parse(booking.DateFormat, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	start, err := booking.ParseTimeOfDay(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := booking.ParseTimeOfDay(body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := booking.CreateRequest{
		UserID:    userID,
		FieldID:   body.FieldID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Note:      body.Note,
	}

	b, err := h.service.Create(c.Request.Context(), req, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Access check: owner or admin.
	if b.UserID != auth.GetUserID(c) && !auth.IsAdmin(c) {
		response.Error(c, booking.ErrPermissionDenied)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, auth.GetUserID(c), auth.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Confirm(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Complete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
