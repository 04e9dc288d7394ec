package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Ravindra230104/EduGather-server/internal/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Categories []uint `json:"categories"`
}

type ActivateRequest struct {
	Token string `json:"token" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	ResetPasswordLink string `json:"resetPasswordLink" binding:"required"`
	NewPassword       string `json:"newPassword" binding:"required,min=6"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Categories)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already taken"})
			return
		}
		h.logger.Error("Registration failed", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Email could not be sent, please check your email again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Email has been sent to %s. Follow the instructions to complete your registration.", req.Email),
	})
}

func (h *Handler) RegisterActivate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.auth.Activate(c.Request.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email is taken"})
		case errors.Is(err, services.ErrTokenInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Expired link. Try again"})
		default:
			h.logger.Error("Activation failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration success. Please login."})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionToken, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with that email does not exist. Please register."})
		case errors.Is(err, services.ErrBadCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password do not match."})
		default:
			h.logger.Error("Login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again later."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": sessionToken,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.auth.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with that email does not exist"})
			return
		}
		h.logger.Error("Password reset request failed", "email", req.Email, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password reset failed. Try later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Email has been sent to %s. Click on the link to reset your password", req.Email),
	})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.auth.ResetPassword(c.Request.Context(), req.ResetPasswordLink, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expired Link. Try again"})
		case errors.Is(err, services.ErrTokenStale):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token. Try again"})
		case errors.Is(err, services.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
		default:
			h.logger.Error("Password reset failed", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password reset failed. Try again"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Great! Now you can login with your new password"})
}
