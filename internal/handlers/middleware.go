package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Ravindra230104/EduGather-server/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID  = "user_id"
	ctxProfile = "profile"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	// Websocket dials cannot set headers.
	return c.Query("token")
}

// RequireSignin verifies the bearer token and attaches the subject id.
func (h *Handler) RequireSignin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerToken(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		userID, err := h.tokens.ParseSession(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// RequireUser resolves the full profile for the attached subject id. The
// account may have been deleted since the token was signed.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.loadProfile(c)
		if !ok {
			return
		}
		c.Set(ctxProfile, user)
		c.Next()
	}
}

// RequireAdmin is RequireUser plus a role check.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.loadProfile(c)
		if !ok {
			return
		}
		if user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin resource. Access denied"})
			return
		}
		c.Set(ctxProfile, user)
		c.Next()
	}
}

// RequireLinkOwner gates link mutations to the author. Admin routes bypass
// this gate entirely.
func (h *Handler) RequireLinkOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Could not find Link"})
			return
		}

		var link models.Link
		if err := h.db.First(&link, uint(id)).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Could not find Link"})
			return
		}

		if link.PostedByID != c.GetUint(ctxUserID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You are not authorized"})
			return
		}

		c.Next()
	}
}

func (h *Handler) loadProfile(c *gin.Context) (models.User, bool) {
	var user models.User
	if err := h.db.First(&user, c.GetUint(ctxUserID)).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return user, false
	}
	return user, true
}

func profileFrom(c *gin.Context) models.User {
	return c.MustGet(ctxProfile).(models.User)
}
