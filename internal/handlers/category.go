package handlers

import (
	"errors"
	"net/http"

	"github.com/Ravindra230104/EduGather-server/internal/services"
	"github.com/Ravindra230104/EduGather-server/internal/storage"

	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Name    string `json:"name" binding:"required"`
	Image   string `json:"image" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CategoryUpdateRequest struct {
	Name    string `json:"name" binding:"required"`
	Image   string `json:"image"`
	Content string `json:"content" binding:"required"`
}

type PageRequest struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categories.Create(c.Request.Context(), c.GetUint(ctxUserID), req.Name, req.Image, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlugTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category with that name already exists"})
		case errors.Is(err, storage.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image could not be processed"})
		default:
			h.logger.Error("Failed to create category", "name", req.Name, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category create failed"})
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Categories could not load"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// ReadCategory is a POST so the client can ship pagination in the body.
func (h *Handler) ReadCategory(c *gin.Context) {
	var page PageRequest
	if err := c.ShouldBindJSON(&page); err != nil {
		page = PageRequest{}
	}

	category, links, err := h.categories.Read(c.Request.Context(), c.Param("slug"), page.Limit, page.Skip)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not load category"})
			return
		}
		h.logger.Error("Failed to read category", "slug", c.Param("slug"), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not load category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "links": links})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categories.Update(c.Request.Context(), c.Param("slug"), req.Name, req.Content, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find category to update"})
		case errors.Is(err, storage.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image could not be processed"})
		default:
			h.logger.Error("Failed to update category", "slug", c.Param("slug"), "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not update category"})
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) RemoveCategory(c *gin.Context) {
	err := h.categories.Remove(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete category"})
			return
		}
		h.logger.Error("Failed to remove category", "slug", c.Param("slug"), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
