package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taxiq/internal/domain"
	"taxiq/internal/repository"
)

// RefDataHandler handles HTTP requests for locations and categories.
type RefDataHandler struct {
	locationRepo repository.LocationRepository
	categoryRepo repository.CategoryRepository
}

// NewRefDataHandler creates a new RefDataHandler.
func NewRefDataHandler(locationRepo repository.LocationRepository, categoryRepo repository.CategoryRepository) *RefDataHandler {
	return &RefDataHandler{
		locationRepo: locationRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateLocationRequest is the HTTP request body for creating a location.
type CreateLocationRequest struct {
	Name      string `json:"name"`
	Available *bool  `json:"available,omitempty"`
	Hours     string `json:"hours"`
}

// CreateLocation handles POST /v1/locations (admin).
func (h *RefDataHandler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondValidation(c, "name is required")
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	loc := &domain.Location{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Available: available,
		Hours:     req.Hours,
	}

	if err := h.locationRepo.Create(c.Request.Context(), loc); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location_id": loc.ID})
}

// GetLocations handles GET /v1/locations
func (h *RefDataHandler) GetLocations(c *gin.Context) {
	locations, err := h.locationRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type locationResponse struct {
		ID        string `json:"location_id"`
		Name      string `json:"name"`
		Available bool   `json:"available"`
		Hours     string `json:"hours"`
	}

	response := make([]locationResponse, 0, len(locations))
	for _, loc := range locations {
		response = append(response, locationResponse{
			ID:        loc.ID,
			Name:      loc.Name,
			Available: loc.Available,
			Hours:     loc.Hours,
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateCategoryRequest is the HTTP request body for creating a category.
type CreateCategoryRequest struct {
	Name      string `json:"name"`
	Available *bool  `json:"available,omitempty"`
}

// CreateCategory handles POST /v1/categories (admin).
func (h *RefDataHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		respondValidation(c, "name is required")
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	cat := &domain.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Available: available,
	}

	if err := h.categoryRepo.Create(c.Request.Context(), cat); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category_id": cat.ID})
}

// GetCategories handles GET /v1/categories
func (h *RefDataHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type categoryResponse struct {
		ID        string `json:"category_id"`
		Name      string `json:"name"`
		Available bool   `json:"available"`
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, categoryResponse{
			ID:        cat.ID,
			Name:      cat.Name,
			Available: cat.Available,
		})
	}

	c.JSON(http.StatusOK, response)
}
