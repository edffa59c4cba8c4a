package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tharadol/sport-booking-backend/internal/api"
	"github.com/tharadol/sport-booking-backend/internal/auth"
	"github.com/tharadol/sport-booking-backend/internal/booking"
	"github.com/tharadol/sport-booking-backend/internal/field"
	"github.com/tharadol/sport-booking-backend/internal/pkg/storage"
	"github.com/tharadol/sport-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	MetricsEnabled bool
	DBPool         *pgxpool.Pool
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	UploadDir      string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Shared components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	fileStore, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Field module
	fieldRepo := field.NewPgxRepository(cfg.DBPool)
	fieldService := field.NewService(fieldRepo, fileStore, storage.NewImageProcessor())

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, fieldService)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		MetricsEnabled: cfg.MetricsEnabled,
		UserService:    userService,
		FieldService:   fieldService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
