package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tharadol/sport-booking-backend/internal/auth"
	"github.com/tharadol/sport-booking-backend/internal/user"
)

type AuthHandler struct {
	userService user.Service
	jwtManager  *auth.JWTManager
}

func NewAuthHandler(
	userService user.Service,
	jwtManager *auth.JWTManager,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

//
// POST /v1/auth/register
//

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.userService.Register(c.Request.Context(), user.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		switch err {
		case user.ErrEmailAlreadyUsed:
			c.JSON(http.StatusConflict, gin.H{"error": "email already used"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{User: NewUserResponse(u)})
}

//
// POST /v1/auth/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid email or password",
		})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        NewUserResponse(u),
	})
}

//
// GET /v1/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{User: NewUserResponse(u)})
}
