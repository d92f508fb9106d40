package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxiq/internal/service"
)

// ReportHandler handles HTTP requests for admin reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Monthly handles GET /v1/admin/reports
func (h *ReportHandler) Monthly(c *gin.Context) {
	counts, err := h.reportService.MonthlyCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type monthResponse struct {
		Month    string  `json:"month"`
		Rides    int     `json:"rides"`
		Payments int     `json:"payments"`
		Revenue  float64 `json:"revenue"`
	}

	response := make([]monthResponse, 0, len(counts))
	for _, mc := range counts {
		response = append(response, monthResponse{
			Month:    mc.Month,
			Rides:    mc.Rides,
			Payments: mc.Payments,
			Revenue:  mc.Revenue,
		})
	}

	c.JSON(http.StatusOK, gin.H{"months": response})
}
