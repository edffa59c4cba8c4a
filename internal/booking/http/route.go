package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.POST("/:id/confirm", h.Confirm)
		admin.POST("/:id/complete", h.Complete)
	}
}
