package handlers

import (
	"net/http"
	"strconv"

	apperrors "github.com/LittleSteps/little-steps-backend/errors"
	"github.com/LittleSteps/little-steps-backend/middleware"
	"github.com/LittleSteps/little-steps-backend/services"
	"github.com/LittleSteps/little-steps-backend/types"
	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	resourceService *services.ResourceService
}

func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// List godoc
// @Summary List resources personalized to the baby's age
// @Tags resources
// @Produce json
// @Param category query string false "sleep, feeding, development, health or general"
// @Param limit query int false "Maximum results (default 20)"
// @Success 200 {array} types.Resource
// @Router /resources [get]
// @Security BearerAuth
func (h *ResourceHandler) List(c *gin.Context) {
	category := types.ResourceCategory(c.Query("category"))
	limit, err := parseLimit(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resources, err := h.resourceService.Personalized(c.Request.Context(), middleware.GetUserID(c), category, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// Search runs a free-text search over titles, content and tags.
func (h *ResourceHandler) Search(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	params := types.ResourceSearchParams{
		Query:    c.Query("q"),
		Category: types.ResourceCategory(c.Query("category")),
		AgeRange: c.Query("age_range"),
		Limit:    limit,
	}

	resources, err := h.resourceService.Search(c.Request.Context(), middleware.GetUserID(c), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// Get returns a single resource and records the view.
func (h *ResourceHandler) Get(c *gin.Context) {
	resource, err := h.resourceService.GetByID(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

// Save bookmarks a resource. Saving twice is a no-op.
func (h *ResourceHandler) Save(c *gin.Context) {
	saved, err := h.resourceService.Save(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// ListSaved returns the user's bookmarks, newest first.
func (h *ResourceHandler) ListSaved(c *gin.Context) {
	category := types.ResourceCategory(c.Query("category"))

	saved, err := h.resourceService.ListSaved(c.Request.Context(), middleware.GetUserID(c), category)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": saved})
}

// Unsave removes a bookmark.
func (h *ResourceHandler) Unsave(c *gin.Context) {
	if err := h.resourceService.Unsave(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource removed from saved"})
}

// parseLimit reads the ?limit= query parameter. Zero means "use the
// service default".
func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apperrors.ValidationFailed("Invalid limit", "limit must be a non-negative integer")
	}
	return limit, nil
}
