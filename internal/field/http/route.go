package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/fields")

	// === Public Routes ===
	// Browsing fields and checking availability needs no account.
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/availability", h.Availability)

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PATCH("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.POST("/:id/image", h.UploadImage)
	}
}
