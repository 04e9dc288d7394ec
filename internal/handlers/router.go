package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.Default()

	if h.cfg.ClientURL != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins: []string{h.cfg.ClientURL},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		// Auth
		api.POST("/register", h.Register)
		api.POST("/register/activate", h.RegisterActivate)
		api.POST("/login", h.Login)
		api.PUT("/forgot-password", h.ForgotPassword)
		api.PUT("/reset-password", h.ResetPassword)

		// Categories: reads are public, writes are admin-only.
		api.GET("/categories", h.ListCategories)
		api.POST("/category/:slug", h.ReadCategory) // body carries pagination
		api.POST("/category", h.RequireSignin(), h.RequireAdmin(), h.CreateCategory)
		api.PUT("/category/:slug", h.RequireSignin(), h.RequireAdmin(), h.UpdateCategory)
		api.DELETE("/category/:slug", h.RequireSignin(), h.RequireAdmin(), h.RemoveCategory)

		// Links
		api.POST("/link", h.RequireSignin(), h.RequireUser(), h.CreateLink)
		api.POST("/links", h.RequireSignin(), h.RequireAdmin(), h.ListLinks)
		api.GET("/links/unapproved", h.RequireSignin(), h.RequireAdmin(), h.ListUnapprovedLinks)
		api.PUT("/link/:id/approve", h.RequireSignin(), h.RequireAdmin(), h.ApproveLink)
		api.PUT("/click-count", h.ClickCount)
		api.GET("/link/popular", h.PopularLinks)
		api.GET("/link/popular/:slug", h.PopularLinksInCategory)
		api.POST("/link/:id", h.ReadLink)
		api.PUT("/link/:id", h.RequireSignin(), h.RequireUser(), h.RequireLinkOwner(), h.UpdateLink)
		api.PUT("/link/admin/:id", h.RequireSignin(), h.RequireAdmin(), h.UpdateLink)
		api.DELETE("/link/:id", h.RequireSignin(), h.RequireUser(), h.RequireLinkOwner(), h.RemoveLink)
		api.DELETE("/link/admin/:id", h.RequireSignin(), h.RequireAdmin(), h.RemoveLink)

		// Users
		api.GET("/user", h.RequireSignin(), h.RequireUser(), h.Profile)
		api.PUT("/user", h.RequireSignin(), h.RequireUser(), h.UpdateProfile)
		api.GET("/admin", h.RequireSignin(), h.RequireAdmin(), h.Profile)

		// Chat
		api.GET("/chat/history", h.RequireSignin(), h.ChatHistory)
	}

	// Browsers cannot set headers on websocket dials, so RequireSignin also
	// accepts ?token= here.
	r.GET("/ws/chat", h.RequireSignin(), h.RequireUser(), h.ChatWS)

	return r
}
