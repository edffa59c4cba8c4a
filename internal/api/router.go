package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tharadol/sport-booking-backend/internal/auth"
	"github.com/tharadol/sport-booking-backend/internal/booking"
	bookingHttp "github.com/tharadol/sport-booking-backend/internal/booking/http"
	"github.com/tharadol/sport-booking-backend/internal/field"
	fieldHttp "github.com/tharadol/sport-booking-backend/internal/field/http"
	"github.com/tharadol/sport-booking-backend/internal/user"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	MetricsEnabled bool
	UserService    user.Service
	FieldService   field.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, recovery, metrics) and
// registers the routes of every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.MetricsEnabled {
		r.Use(MetricsMiddleware())
		r.GET("/metrics", MetricsHandler())
	}

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // local frontend
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware validates the JWT; adminMiddleware additionally checks
	// the admin role against storage.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin(cfg.UserService)

	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	fieldHandler := fieldHttp.NewHandler(cfg.FieldService, cfg.BookingService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		fieldHttp.RegisterRoutes(v1, fieldHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
	}

	return r
}
