package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"primero/rentdesk/internal/services"
)

// TenantHandler handles tenant CRUD requests.
type TenantHandler struct {
	tenantService services.ITenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService services.ITenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create handles POST /v1/tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var input services.TenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tenant"})
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// List handles GET /v1/tenants.
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenantService.ListTenants(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tenants"})
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// Get handles GET /v1/tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.tenantService.FindTenantByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tenant"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// Details handles GET /v1/tenants/:id/details. Returns the tenant with their
// property, contracts and payment history in one response.
func (h *TenantHandler) Details(c *gin.Context) {
	details, err := h.tenantService.GetTenantDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tenant details"})
		return
	}
	c.JSON(http.StatusOK, details)
}

// Update handles PUT /v1/tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	var input services.TenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tenant"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// Delete handles DELETE /v1/tenants/:id.
func (h *TenantHandler) Delete(c *gin.Context) {
	if err := h.tenantService.DeleteTenant(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tenant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tenant deleted"})
}
