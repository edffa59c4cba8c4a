package field

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("field not found")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidSportType = errors.New("invalid sport type")
	ErrInvalidCapacity  = errors.New("capacity must be at least 1")
	ErrInvalidPrice     = errors.New("price per hour cannot be negative")
	ErrInvalidStatus    = errors.New("invalid field status")
)

// SportType enumerates the kinds of sport a field supports.
type SportType string

const (
	SportFootball   SportType = "football"
	SportFutsal     SportType = "futsal"
	SportBasketball SportType = "basketball"
	SportVolleyball SportType = "volleyball"
	SportBadminton  SportType = "badminton"
	SportTennis     SportType = "tennis"
)

// ValidSportTypes lists every accepted sport type value.
var ValidSportTypes = []SportType{
	SportFootball,
	SportFutsal,
	SportBasketball,
	SportVolleyball,
	SportBadminton,
	SportTennis,
}

// Status is the operational status of a field. Fields under maintenance
// cannot be booked.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
)

// Field represents a bookable sports field.
type Field struct {
	ID           string // UUID
	Name         string
	SportType    SportType
	Description  string
	Capacity     int
	PricePerHour decimal.Decimal
	ImagePath    *string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Bookable reports whether new bookings may target this field.
func (f *Field) Bookable() bool {
	return f.Status == StatusAvailable
}

// Filter defines parameters for listing fields.
type Filter struct {
	SportType string
	Status    string
	Page      int
	PageSize  int
}

// ValidSportType reports whether s is an accepted sport type value.
func ValidSportType(s SportType) bool {
	for _, t := range ValidSportTypes {
		if s == t {
			return true
		}
	}
	return false
}
