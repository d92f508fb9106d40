package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxiq/internal/middleware"
	"taxiq/internal/service"
)

// RatingHandler handles HTTP requests for ratings.
type RatingHandler struct {
	ratingService *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// SubmitRatingRequest is the HTTP request body for submitting a rating.
type SubmitRatingRequest struct {
	CustomerID string `json:"customer_id"`
	DriverID   string `json:"driver_id"`
	RideID     string `json:"ride_id"`
	Rating     int    `json:"rating"`
}

// Submit handles POST /v1/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	if req.CustomerID == "" {
		req.CustomerID, _ = middleware.CallerID(c)
	} else if !middleware.OwnsOrAdmin(c, req.CustomerID) {
		respondError(c, service.ErrForbidden)
		return
	}

	rating, err := h.ratingService.Submit(c.Request.Context(), service.SubmitRequest{
		CustomerID: req.CustomerID,
		DriverID:   req.DriverID,
		RideID:     req.RideID,
		Value:      req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rating_id": rating.ID})
}
