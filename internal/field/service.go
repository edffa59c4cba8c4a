package field

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tharadol/sport-booking-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Name         string
	SportType    SportType
	Description  string
	Capacity     int
	PricePerHour decimal.Decimal
}

type UpdateRequest struct {
	Name         *string
	SportType    *SportType
	Description  *string
	Capacity     *int
	PricePerHour *decimal.Decimal
	Status       *Status
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Field, error)
	GetByID(ctx context.Context, id string) (*Field, error)
	List(ctx context.Context, filter Filter) ([]*Field, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Field, error)
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id string, content io.Reader) (*Field, error)
}

type service struct {
	repo    Repository
	store   storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, imgProc *storage.ImageProcessor) Service {
	return &service{
		repo:    repo,
		store:   store,
		imgProc: imgProc,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Field, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !ValidSportType(req.SportType) {
		return nil, ErrInvalidSportType
	}
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if req.PricePerHour.IsNegative() {
		return nil, ErrInvalidPrice
	}

	f := &Field{
		Name:         strings.TrimSpace(req.Name),
		SportType:    req.SportType,
		Description:  req.Description,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		Status:       StatusAvailable,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Field, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Field, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Field, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.SportType != nil {
		if !ValidSportType(*req.SportType) {
			return nil, ErrInvalidSportType
		}
		f.SportType = *req.SportType
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		f.Capacity = *req.Capacity
	}
	if req.PricePerHour != nil {
		if req.PricePerHour.IsNegative() {
			return nil, ErrInvalidPrice
		}
		f.PricePerHour = *req.PricePerHour
	}
	if req.Status != nil {
		if *req.Status != StatusAvailable && *req.Status != StatusMaintenance {
			return nil, ErrInvalidStatus
		}
		f.Status = *req.Status
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if f.ImagePath != nil {
		// Best effort; the field row is already gone.
		_ = s.store.Delete(ctx, *f.ImagePath)
	}
	return nil
}

func (s *service) SetImage(ctx context.Context, id string, content io.Reader) (*Field, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	processed, err := s.imgProc.FitJPEG(content, 1600, 1200)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("fields/%s.jpg", f.ID)
	if err := s.store.Save(ctx, path, processed); err != nil {
		return nil, fmt.Errorf("save field image failed: %w", err)
	}

	f.ImagePath = &path
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
