package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"primero/rentdesk/internal/services"
)

// ReportHandler handles dashboard and report requests.
type ReportHandler struct {
	reportService services.IReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.IReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DashboardStats handles GET /v1/reports/dashboard.
func (h *ReportHandler) DashboardStats(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// MonthlyRevenue handles GET /v1/reports/monthly-revenue.
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	points, err := h.reportService.GetMonthlyRevenue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute monthly revenue"})
		return
	}
	c.JSON(http.StatusOK, points)
}

// PaymentStatusBreakdown handles GET /v1/reports/payment-status.
func (h *ReportHandler) PaymentStatusBreakdown(c *gin.Context) {
	breakdown, err := h.reportService.GetPaymentStatusBreakdown(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payment status breakdown"})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// OccupancyBreakdown handles GET /v1/reports/occupancy.
func (h *ReportHandler) OccupancyBreakdown(c *gin.Context) {
	breakdown, err := h.reportService.GetOccupancyBreakdown(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute occupancy breakdown"})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
