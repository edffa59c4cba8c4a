package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tharadol/sport-booking-backend/internal/booking"
	"github.com/tharadol/sport-booking-backend/internal/field"
	"github.com/tharadol/sport-booking-backend/internal/pkg/response"
)

const maxImageUploadBytes = 10 << 20 // 10 MiB

type Handler struct {
	service        field.Service
	bookingService booking.Service
}

func NewHandler(service field.Service, bookingService booking.Service) *Handler {
	return &Handler{
		service:        service,
		bookingService: bookingService,
	}
}

// mapFieldErr translates field sentinel errors to HTTP responses.
func mapFieldErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, field.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "field not found"})
	case errors.Is(err, field.ErrEmptyName),
		errors.Is(err, field.ErrInvalidSportType),
		errors.Is(err, field.ErrInvalidCapacity),
		errors.Is(err, field.ErrInvalidPrice),
		errors.Is(err, field.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListFieldsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	filter := field.Filter{
		SportType: req.SportType,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	fields, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		mapFieldErr(c, err)
		return
	}

	items := make([]FieldResponse, len(fields))
	for i, f := range fields {
		items[i] = NewFieldResponse(f)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		mapFieldErr(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFieldResponse(f))
}

// Availability reports the booked slots of a field for a date. Defaults to
// today (UTC) when no date is given, matching ?date=YYYY-MM-DD.
func (h *Handler) Availability(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	date := time.Now().UTC()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse(booking.DateFormat, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	f, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		mapFieldErr(c, err)
		return
	}

	slots, err := h.bookingService.Availability(c.Request.Context(), id, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(f, date, slots))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateFieldBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := field.CreateRequest{
		Name:         body.Name,
		SportType:    field.SportType(body.SportType),
		Description:  body.Description,
		Capacity:     body.Capacity,
		PricePerHour: body.PricePerHour,
	}

	f, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		mapFieldErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewFieldResponse(f))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateFieldBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := field.UpdateRequest{
		Name:         body.Name,
		Description:  body.Description,
		Capacity:     body.Capacity,
		PricePerHour: body.PricePerHour,
	}
	if body.SportType != nil {
		st := field.SportType(*body.SportType)
		req.SportType = &st
	}
	if body.Status != nil {
		st := field.Status(*body.Status)
		req.Status = &st
	}

	f, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		mapFieldErr(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFieldResponse(f))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		mapFieldErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage replaces the field's photo. Multipart form, file part "image".
func (h *Handler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	f, err := h.service.SetImage(c.Request.Context(), id, file)
	if err != nil {
		mapFieldErr(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFieldResponse(f))
}
