package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxiq/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PayRequest is the HTTP request body for paying a ride.
type PayRequest struct {
	RideID   string  `json:"ride_id"`
	DriverID string  `json:"driver_id"`
	Fare     float64 `json:"fare"`
}

// Pay handles POST /v1/payments
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	payment, err := h.paymentService.Pay(c.Request.Context(), service.PayRequest{
		RideID:   req.RideID,
		DriverID: req.DriverID,
		Amount:   req.Fare,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment_id": payment.ID,
		"ride_id":    payment.RideID,
		"amount":     payment.Amount,
		"status":     string(payment.Status),
	})
}

// Get handles GET /v1/payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_id": payment.ID,
		"ride_id":    payment.RideID,
		"driver_id":  payment.DriverID,
		"amount":     payment.Amount,
		"status":     string(payment.Status),
		"created_at": payment.CreatedAt.Format(time.RFC3339),
	})
}
