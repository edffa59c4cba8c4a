package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tharadol/sport-booking-backend/internal/booking"
	fieldHttp "github.com/tharadol/sport-booking-backend/internal/field/http"
	"github.com/tharadol/sport-booking-backend/internal/pkg/request"
)

// CreateBookingBody is the payload for POST /v1/bookings. Date uses
// YYYY-MM-DD, times use HH:MM.
type CreateBookingBody struct {
	FieldID   string `json:"field_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Note      string `json:"note"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	FieldID  string `form:"field_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// UserTag is the minimal user reference embedded in booking responses.
type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID         string             `json:"id"`
	Field      fieldHttp.FieldTag `json:"field"`
	User       UserTag            `json:"user"`
	Date       string             `json:"date"`
	StartTime  string             `json:"start_time"`
	EndTime    string             `json:"end_time"`
	Hours      decimal.Decimal    `json:"hours"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Status     string             `json:"status"`
	Note       string             `json:"note,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		Field:      fieldHttp.FieldTag{ID: b.FieldID, Name: b.FieldName},
		User:       UserTag{ID: b.UserID, Name: b.UserName},
		Date:       b.BookingDate.Format(booking.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Hours:      b.Hours,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		Note:       b.Note,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
