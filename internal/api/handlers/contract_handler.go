package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"primero/rentdesk/internal/services"
)

// maxContractDocumentSize caps agreement uploads at 10 MiB.
const maxContractDocumentSize = 10 << 20

// ContractHandler handles contract CRUD requests, including the agreement
// document upload that comes in as multipart form data.
type ContractHandler struct {
	contractService services.IContractService
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(contractService services.IContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// contractForm is the multipart form fields accompanying the document.
type contractForm struct {
	TenantID   string `form:"tenant_id" binding:"required"`
	PropertyID string `form:"property_id" binding:"required"`
	StartDate  string `form:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate    string `form:"end_date" binding:"required"`   // YYYY-MM-DD
	Notes      string `form:"notes"`
}

func (f *contractForm) toInput() (services.ContractInput, error) {
	start, err := time.Parse("2006-01-02", f.StartDate)
	if err != nil {
		return services.ContractInput{}, errors.New("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", f.EndDate)
	if err != nil {
		return services.ContractInput{}, errors.New("end_date must be YYYY-MM-DD")
	}
	return services.ContractInput{
		TenantID:   f.TenantID,
		PropertyID: f.PropertyID,
		StartDate:  start,
		EndDate:    end,
		Notes:      f.Notes,
	}, nil
}

// documentFromForm extracts the uploaded agreement file, if any.
func documentFromForm(c *gin.Context) (*services.ContractDocument, func(), error) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, nil, err
	}
	if fileHeader.Size > maxContractDocumentSize {
		return nil, nil, errors.New("document exceeds the 10MB size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	doc := &services.ContractDocument{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	}
	return doc, func() { file.Close() }, nil
}

// Create handles POST /v1/contracts (multipart: form fields + document file).
func (h *ContractHandler) Create(c *gin.Context) {
	var form contractForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data: " + err.Error()})
		return
	}
	input, err := form.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, closeDoc, err := documentFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document upload: " + err.Error()})
		return
	}
	defer closeDoc()
	if doc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A contract document is required"})
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), input, doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract"})
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// List handles GET /v1/contracts.
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.contractService.ListContracts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contracts"})
		return
	}
	c.JSON(http.StatusOK, contracts)
}

// Get handles GET /v1/contracts/:id.
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contractService.FindContractByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contract"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Update handles PUT /v1/contracts/:id. The document is optional on edit; when
// present it replaces the stored one.
func (h *ContractHandler) Update(c *gin.Context) {
	var form contractForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data: " + err.Error()})
		return
	}
	input, err := form.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, closeDoc, err := documentFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document upload: " + err.Error()})
		return
	}
	defer closeDoc()

	contract, err := h.contractService.UpdateContract(c.Request.Context(), c.Param("id"), input, doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contract"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Delete handles DELETE /v1/contracts/:id.
func (h *ContractHandler) Delete(c *gin.Context) {
	if err := h.contractService.DeleteContract(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contract"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}
