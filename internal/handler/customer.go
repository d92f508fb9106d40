package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxiq/internal/domain"
	"taxiq/internal/middleware"
	"taxiq/internal/repository"
	"taxiq/internal/service"
)

// CustomerHandler handles HTTP requests for customer accounts.
type CustomerHandler struct {
	authService  *service.AuthService
	customerRepo repository.CustomerRepository
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(authService *service.AuthService, customerRepo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{
		authService:  authService,
		customerRepo: customerRepo,
	}
}

// RegisterCustomerRequest is the HTTP request body for customer registration.
type RegisterCustomerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone_no"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CustomerResponse is the HTTP response for customer data.
type CustomerResponse struct {
	ID       string `json:"customer_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone_no"`
	Blocked  bool   `json:"blocked"`
	JoinedAt string `json:"joined_at"`
}

func newCustomerResponse(cu *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:       cu.ID,
		Username: cu.Username,
		Email:    cu.Email,
		Phone:    cu.Phone,
		Blocked:  cu.Blocked,
		JoinedAt: cu.JoinedAt.Format(time.RFC3339),
	}
}

// Register handles POST /v1/customers/register
func (h *CustomerHandler) Register(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	customer, err := h.authService.RegisterCustomer(c.Request.Context(), service.RegisterCustomerRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"customer_id": customer.ID})
}

// Login handles POST /v1/customers/login
func (h *CustomerHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	result, err := h.authService.LoginCustomer(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id": result.SubjectID,
		"token":       result.Token,
		"expires_at":  result.ExpiresAt.Format(time.RFC3339),
	})
}

// Get handles GET /v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id := c.Param("id")

	if !middleware.OwnsOrAdmin(c, id) {
		respondError(c, service.ErrForbidden)
		return
	}

	customer, err := h.customerRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCustomerResponse(customer))
}

// PatchCustomerRequest is the HTTP request body for a profile patch.
type PatchCustomerRequest struct {
	Username *string `json:"username,omitempty"`
	Phone    *string `json:"phone_no,omitempty"`
	Blocked  *bool   `json:"blocked,omitempty"`
}

// Patch handles PATCH /v1/customers/:id
func (h *CustomerHandler) Patch(c *gin.Context) {
	id := c.Param("id")

	if !middleware.OwnsOrAdmin(c, id) {
		respondError(c, service.ErrForbidden)
		return
	}

	var req PatchCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	// Only admins flip the blocked flag.
	upd := repository.CustomerUpdate{Username: req.Username, Phone: req.Phone}
	if role, _ := middleware.CallerRole(c); role == domain.RoleAdmin {
		upd.Blocked = req.Blocked
	}

	if err := h.customerRepo.Patch(c.Request.Context(), id, upd); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer_id": id})
}

// Delete handles DELETE /v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if !middleware.OwnsOrAdmin(c, id) {
		respondError(c, service.ErrForbidden)
		return
	}

	if err := h.customerRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAll handles GET /v1/customers (admin).
func (h *CustomerHandler) GetAll(c *gin.Context) {
	customers, err := h.customerRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CustomerResponse, 0, len(customers))
	for _, cu := range customers {
		response = append(response, newCustomerResponse(cu))
	}

	c.JSON(http.StatusOK, response)
}
