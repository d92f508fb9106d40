package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxiq/internal/domain"
	"taxiq/internal/middleware"
	"taxiq/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// BookRideRequest is the HTTP request body for booking a ride.
type BookRideRequest struct {
	CustomerID  string `json:"customer_id"`
	Pickup      string `json:"pickup_location"`
	Destination string `json:"destination"`
}

// RideResponse is the HTTP response for ride data.
type RideResponse struct {
	ID            string  `json:"ride_id"`
	CustomerID    string  `json:"customer_id"`
	DriverID      string  `json:"driver_id,omitempty"`
	Pickup        string  `json:"pickup_location"`
	Destination   string  `json:"destination"`
	Status        string  `json:"status"`
	Fare          float64 `json:"fare"`
	PaymentStatus string  `json:"payment_status"`
	BookedAt      string  `json:"booked_at"`
	CancelledAt   string  `json:"cancelled_at,omitempty"`
}

func newRideResponse(r *domain.Ride) RideResponse {
	resp := RideResponse{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		DriverID:      r.DriverID,
		Pickup:        r.Pickup,
		Destination:   r.Destination,
		Status:        string(r.Status),
		Fare:          r.Fare,
		PaymentStatus: string(r.PaymentStatus),
		BookedAt:      r.BookedAt.Format(time.RFC3339),
	}
	if !r.CancelledAt.IsZero() {
		resp.CancelledAt = r.CancelledAt.Format(time.RFC3339)
	}
	return resp
}

// Book handles POST /v1/rides
func (h *RideHandler) Book(c *gin.Context) {
	var req BookRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	// Customers book for themselves; admins may book on behalf of anyone.
	if req.CustomerID == "" {
		req.CustomerID, _ = middleware.CallerID(c)
	} else if !middleware.OwnsOrAdmin(c, req.CustomerID) {
		respondError(c, service.ErrForbidden)
		return
	}

	ride, err := h.rideService.Book(c.Request.Context(), service.BookRequest{
		CustomerID:  req.CustomerID,
		Pickup:      req.Pickup,
		Destination: req.Destination,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRideResponse(ride))
}

// AcceptRideRequest is the HTTP request body for accepting a ride.
type AcceptRideRequest struct {
	DriverID string `json:"driver_id"`
}

// Accept handles POST /v1/rides/:id/accept
func (h *RideHandler) Accept(c *gin.Context) {
	// Body is optional; the driver defaults to the caller.
	var req AcceptRideRequest
	_ = c.ShouldBindJSON(&req)

	if req.DriverID == "" {
		req.DriverID, _ = middleware.CallerID(c)
	} else if !middleware.OwnsOrAdmin(c, req.DriverID) {
		respondError(c, service.ErrForbidden)
		return
	}

	ride, err := h.rideService.Accept(c.Request.Context(), service.AcceptRequest{
		RideID:   c.Param("id"),
		DriverID: req.DriverID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRideResponse(ride))
}

// Cancel handles POST /v1/rides/:id/cancel
func (h *RideHandler) Cancel(c *gin.Context) {
	callerID, _ := middleware.CallerID(c)
	callerRole, _ := middleware.CallerRole(c)

	ride, err := h.rideService.Cancel(c.Request.Context(), service.CancelRequest{
		RideID:     c.Param("id"),
		CallerID:   callerID,
		CallerRole: callerRole,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRideResponse(ride))
}

// Get handles GET /v1/rides/:id
func (h *RideHandler) Get(c *gin.Context) {
	ride, err := h.rideService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRideResponse(ride))
}

// GetAll handles GET /v1/rides
func (h *RideHandler) GetAll(c *gin.Context) {
	rides, err := h.rideService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, newRideResponse(r))
	}

	c.JSON(http.StatusOK, response)
}
