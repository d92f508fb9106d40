package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxiq/internal/domain"
	"taxiq/internal/middleware"
	"taxiq/internal/service"
)

// DriverHandler handles HTTP requests for driver accounts.
type DriverHandler struct {
	authService   *service.AuthService
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(authService *service.AuthService, driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{
		authService:   authService,
		driverService: driverService,
	}
}

// RegisterDriverRequest is the HTTP request body for driver registration.
type RegisterDriverRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone_no"`
	VehicleModel string `json:"vehicle_model"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID           string  `json:"driver_id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone_no"`
	VehicleModel string  `json:"vehicle_model"`
	Status       string  `json:"status"`
	Earnings     float64 `json:"earnings"`
	Rating       float64 `json:"rating"`
	JoinedAt     string  `json:"joined_at"`
}

func newDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		Phone:        d.Phone,
		VehicleModel: d.VehicleModel,
		Status:       string(d.Status),
		Earnings:     d.Earnings,
		Rating:       d.Rating,
		JoinedAt:     d.JoinedAt.Format(time.RFC3339),
	}
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	driver, err := h.authService.RegisterDriver(c.Request.Context(), service.RegisterDriverRequest{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		VehicleModel: req.VehicleModel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver_id": driver.ID})
}

// Login handles POST /v1/drivers/login
func (h *DriverHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	result, err := h.authService.LoginDriver(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"driver_id":  result.SubjectID,
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
	})
}

// Get handles GET /v1/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.driverService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDriverResponse(driver))
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, newDriverResponse(d))
	}

	c.JSON(http.StatusOK, response)
}

// SetStatusRequest is the HTTP request body for a driver status change.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles POST /v1/drivers/:id/status
func (h *DriverHandler) SetStatus(c *gin.Context) {
	id := c.Param("id")

	if !middleware.OwnsOrAdmin(c, id) {
		respondError(c, service.ErrForbidden)
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	status := domain.DriverStatus(req.Status)

	// Drivers cannot block or unblock themselves.
	if role, _ := middleware.CallerRole(c); role != domain.RoleAdmin && status == domain.DriverStatusBlocked {
		respondError(c, service.ErrForbidden)
		return
	}

	driver, err := h.driverService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDriverResponse(driver))
}
