package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tharadol/sport-booking-backend/internal/booking"
	"github.com/tharadol/sport-booking-backend/internal/field"
	"github.com/tharadol/sport-booking-backend/internal/pkg/request"
)

// FieldTag is the minimal field reference embedded in other responses.
type FieldTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FieldResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SportType    string          `json:"sport_type"`
	Description  string          `json:"description,omitempty"`
	Capacity     int             `json:"capacity"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
	ImagePath    *string         `json:"image_path,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewFieldResponse(f *field.Field) FieldResponse {
	return FieldResponse{
		ID:           f.ID,
		Name:         f.Name,
		SportType:    string(f.SportType),
		Description:  f.Description,
		Capacity:     f.Capacity,
		PricePerHour: f.PricePerHour,
		ImagePath:    f.ImagePath,
		Status:       string(f.Status),
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

type CreateFieldBody struct {
	Name         string          `json:"name" binding:"required"`
	SportType    string          `json:"sport_type" binding:"required,oneof=football futsal basketball volleyball badminton tennis"`
	Description  string          `json:"description"`
	Capacity     int             `json:"capacity" binding:"required,min=1"`
	PricePerHour decimal.Decimal `json:"price_per_hour"`
}

type UpdateFieldBody struct {
	Name         *string          `json:"name"`
	SportType    *string          `json:"sport_type" binding:"omitempty,oneof=football futsal basketball volleyball badminton tennis"`
	Description  *string          `json:"description"`
	Capacity     *int             `json:"capacity" binding:"omitempty,min=1"`
	PricePerHour *decimal.Decimal `json:"price_per_hour"`
	Status       *string          `json:"status" binding:"omitempty,oneof=available maintenance"`
}

// ListFieldsRequest defines query parameters for listing fields.
type ListFieldsRequest struct {
	request.ListParams
	SportType string `form:"sport_type" binding:"omitempty,oneof=football futsal basketball volleyball badminton tennis"`
	Status    string `form:"status" binding:"omitempty,oneof=available maintenance"`
}

// BookedSlotResponse is one occupied interval in an availability response.
type BookedSlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// AvailabilityResponse answers GET /v1/fields/:id/availability.
type AvailabilityResponse struct {
	Field       FieldTag             `json:"field"`
	Date        string               `json:"date"`
	FieldStatus string               `json:"field_status"`
	BookedSlots []BookedSlotResponse `json:"booked_slots"`
}

func NewAvailabilityResponse(f *field.Field, date time.Time, slots []booking.BookedSlot) AvailabilityResponse {
	booked := make([]BookedSlotResponse, len(slots))
	for i, s := range slots {
		booked[i] = BookedSlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Status:    string(s.Status),
		}
	}

	return AvailabilityResponse{
		Field:       FieldTag{ID: f.ID, Name: f.Name},
		Date:        date.Format(booking.DateFormat),
		FieldStatus: string(f.Status),
		BookedSlots: booked,
	}
}
