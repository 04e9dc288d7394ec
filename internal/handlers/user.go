package handlers

import (
	"errors"
	"net/http"

	"github.com/Ravindra230104/EduGather-server/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileUpdateRequest struct {
	Name       string `json:"name"`
	Password   string `json:"password"`
	Categories []uint `json:"categories"`
}

func (h *Handler) Profile(c *gin.Context) {
	user, links, err := h.users.Profile(c.Request.Context(), c.GetUint(ctxUserID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to load profile", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "links": links})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.GetUint(ctxUserID), req.Name, req.Password, req.Categories)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password should be min 6 characters long"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		default:
			h.logger.Error("Failed to update profile", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Profile update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
