package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Ravindra230104/EduGather-server/internal/services"

	"github.com/gin-gonic/gin"
)

type LinkRequest struct {
	Title      string `json:"title" binding:"required"`
	URL        string `json:"url" binding:"required"`
	Type       string `json:"type"`
	Medium     string `json:"medium"`
	Categories []uint `json:"categories"`
}

type LinkUpdateRequest struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Type       string `json:"type"`
	Medium     string `json:"medium"`
	Categories []uint `json:"categories"`
}

type ClickCountRequest struct {
	LinkID uint `json:"linkId" binding:"required"`
}

func linkID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find Link"})
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) CreateLink(c *gin.Context) {
	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.links.Create(c.Request.Context(), c.GetUint(ctxUserID), services.LinkDTO{
		Title:      req.Title,
		URL:        req.URL,
		Type:       req.Type,
		Medium:     req.Medium,
		Categories: req.Categories,
	})
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Link already exists"})
			return
		}
		h.logger.Error("Failed to create link", "title", req.Title, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Link already exists"})
		return
	}

	c.JSON(http.StatusOK, link)
}

// ListLinks is a POST so the client can ship pagination in the body.
func (h *Handler) ListLinks(c *gin.Context) {
	var page PageRequest
	if err := c.ShouldBindJSON(&page); err != nil {
		page = PageRequest{}
	}

	links, err := h.links.List(c.Request.Context(), page.Limit, page.Skip)
	if err != nil {
		h.logger.Error("Failed to list links", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not list links"})
		return
	}

	c.JSON(http.StatusOK, links)
}

func (h *Handler) ListUnapprovedLinks(c *gin.Context) {
	links, err := h.links.ListUnapproved(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list unapproved links", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not list links"})
		return
	}

	c.JSON(http.StatusOK, links)
}

func (h *Handler) ApproveLink(c *gin.Context) {
	id, ok := linkID(c)
	if !ok {
		return
	}

	link, err := h.links.Approve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find Link"})
			return
		}
		h.logger.Error("Failed to approve link", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not approve link"})
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *Handler) ClickCount(c *gin.Context) {
	var req ClickCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.links.IncrementClicks(c.Request.Context(), req.LinkID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find Link"})
			return
		}
		h.logger.Error("Failed to update click count", "id", req.LinkID, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error updating view count"})
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *Handler) PopularLinks(c *gin.Context) {
	links, err := h.links.Popular(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load popular links", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Links not found"})
		return
	}

	c.JSON(http.StatusOK, links)
}

func (h *Handler) PopularLinksInCategory(c *gin.Context) {
	links, err := h.links.PopularInCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not load categories"})
			return
		}
		h.logger.Error("Failed to load popular links", "slug", c.Param("slug"), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Links not found"})
		return
	}

	c.JSON(http.StatusOK, links)
}

// ReadLink resolves by slug. The :id segment in the route carries the slug
// here; a leftover of the public URL scheme.
func (h *Handler) ReadLink(c *gin.Context) {
	link, err := h.links.Read(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error finding link"})
			return
		}
		h.logger.Error("Failed to read link", "slug", c.Param("id"), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error finding link"})
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *Handler) UpdateLink(c *gin.Context) {
	id, ok := linkID(c)
	if !ok {
		return
	}

	var req LinkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	link, err := h.links.Update(c.Request.Context(), id, services.LinkDTO{
		Title:      req.Title,
		URL:        req.URL,
		Type:       req.Type,
		Medium:     req.Medium,
		Categories: req.Categories,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find Link"})
			return
		}
		h.logger.Error("Failed to update link", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error updating the link"})
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *Handler) RemoveLink(c *gin.Context) {
	id, ok := linkID(c)
	if !ok {
		return
	}

	err := h.links.Remove(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not find Link"})
			return
		}
		h.logger.Error("Failed to remove link", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error removing the link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Link removed successfully"})
}
