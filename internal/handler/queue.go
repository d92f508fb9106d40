package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxiq/internal/domain"
	"taxiq/internal/middleware"
	"taxiq/internal/service"
)

// QueueHandler handles HTTP requests for queue tickets.
type QueueHandler struct {
	queueService *service.QueueService
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(queueService *service.QueueService) *QueueHandler {
	return &QueueHandler{queueService: queueService}
}

// ObtainTicketRequest is the HTTP request body for obtaining a queue ticket.
type ObtainTicketRequest struct {
	CustomerID string `json:"customer_id"`
	LocationID string `json:"location_id"`
	CategoryID string `json:"appointment_category_id"`
}

// TicketResponse is the HTTP response for ticket data.
type TicketResponse struct {
	ID          string `json:"ticket_id"`
	CustomerID  string `json:"customer_id"`
	LocationID  string `json:"location_id"`
	CategoryID  string `json:"appointment_category_id"`
	QueueNumber int    `json:"queue_number"`
	Served      bool   `json:"served"`
	IssuedAt    string `json:"issued_at"`
	ServedAt    string `json:"served_at,omitempty"`
}

func newTicketResponse(t *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:          t.ID,
		CustomerID:  t.CustomerID,
		LocationID:  t.LocationID,
		CategoryID:  t.CategoryID,
		QueueNumber: t.Number,
		Served:      t.Served,
		IssuedAt:    t.IssuedAt.Format(time.RFC3339),
	}
	if !t.ServedAt.IsZero() {
		resp.ServedAt = t.ServedAt.Format(time.RFC3339)
	}
	return resp
}

// Obtain handles POST /v1/queue/tickets
func (h *QueueHandler) Obtain(c *gin.Context) {
	var req ObtainTicketRequest
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

	ticket, err := h.queueService.Obtain(c.Request.Context(), service.ObtainRequest{
		CustomerID: req.CustomerID,
		LocationID: req.LocationID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTicketResponse(ticket))
}

// ServeNextRequest is the HTTP request body for serving the next ticket.
type ServeNextRequest struct {
	LocationID string `json:"location_id"`
	CategoryID string `json:"appointment_category_id"`
}

// ServeNext handles POST /v1/queue/next (admin).
func (h *QueueHandler) ServeNext(c *gin.Context) {
	var req ServeNextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	ticket, err := h.queueService.ServeNext(c.Request.Context(), service.ServeNextRequest{
		LocationID: req.LocationID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTicketResponse(ticket))
}

// Get handles GET /v1/queue/tickets/:id
func (h *QueueHandler) Get(c *gin.Context) {
	ticket, err := h.queueService.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTicketResponse(ticket))
}
