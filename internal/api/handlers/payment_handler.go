package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"primero/rentdesk/internal/services"
)

// PaymentHandler handles payment record requests.
type PaymentHandler struct {
	paymentService services.IPaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.IPaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles GET /v1/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	rows, err := h.paymentService.ListPayments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Get handles GET /v1/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.paymentService.FindPaymentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get payment"})
		return
	}
	c.JSON(http.StatusOK, payment)
}

// ListUnpaidByTenant handles GET /v1/tenants/:id/unpaid-bills. It feeds the
// due-date dropdown on the record-payment form.
func (h *PaymentHandler) ListUnpaidByTenant(c *gin.Context) {
	payments, err := h.paymentService.ListUnpaidByTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unpaid bills"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Record handles POST /v1/payments/:id/record.
func (h *PaymentHandler) Record(c *gin.Context) {
	var input services.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Revert handles POST /v1/payments/:id/revert.
func (h *PaymentHandler) Revert(c *gin.Context) {
	payment, err := h.paymentService.RevertPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /v1/payments/:id.
func (h *PaymentHandler) Delete(c *gin.Context) {
	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}
