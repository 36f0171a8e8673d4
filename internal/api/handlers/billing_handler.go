package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"primero/rentdesk/internal/billing"
	"primero/rentdesk/internal/services"
)

// BillingHandler handles bill generation requests.
type BillingHandler struct {
	billingService services.IBillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService services.IBillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

type createBillRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Month    string `json:"month" binding:"required"` // YYYY-MM
}

// UnbilledMonths handles GET /v1/tenants/:id/unbilled-months. A tenant with no
// contract is a client error; a contract whose term is fully billed returns an
// empty month list.
func (h *BillingHandler) UnbilledMonths(c *gin.Context) {
	report, err := h.billingService.UnbilledMonthsForTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		if errors.Is(err, services.ErrNoContract) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No contract found for this tenant. Please add a contract first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute unbilled months"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// CreateBill handles POST /v1/bills.
func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	month, err := billing.ParseMonth(req.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), req.TenantID, month)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		case errors.Is(err, services.ErrNoContract):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No contract found for this tenant. Please add a contract first."})
		case errors.Is(err, services.ErrAlreadyBilled):
			c.JSON(http.StatusConflict, gin.H{"error": "A bill for this month already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		}
		return
	}
	c.JSON(http.StatusCreated, bill)
}
