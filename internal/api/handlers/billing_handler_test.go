package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"primero/rentdesk/internal/billing"
	"primero/rentdesk/internal/models"
	"primero/rentdesk/internal/services"
)

func setupBillingRouter(svc services.IBillingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBillingHandler(svc)
	router := gin.New()
	router.GET("/v1/tenants/:id/unbilled-months", h.UnbilledMonths)
	router.POST("/v1/bills", h.CreateBill)
	return router
}

func TestBillingHandler_UnbilledMonths(t *testing.T) {
	mockSvc := new(MockBillingService)
	router := setupBillingRouter(mockSvc)

	report := &services.UnbilledReport{
		TenantID:      "tenant-1",
		RentAmount:    12000,
		UnbilledMonth: []string{"2024-02", "2024-03"},
	}
	mockSvc.On("UnbilledMonthsForTenant", mock.Anything, "tenant-1").Return(report, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/tenants/tenant-1/unbilled-months", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got services.UnbilledReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"2024-02", "2024-03"}, got.UnbilledMonth)
	mockSvc.AssertExpectations(t)
}

func TestBillingHandler_UnbilledMonths_NoContract(t *testing.T) {
	mockSvc := new(MockBillingService)
	router := setupBillingRouter(mockSvc)

	mockSvc.On("UnbilledMonthsForTenant", mock.Anything, "tenant-1").Return(nil, services.ErrNoContract)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/tenants/tenant-1/unbilled-months", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "No contract found")
}

func TestBillingHandler_UnbilledMonths_TenantNotFound(t *testing.T) {
	mockSvc := new(MockBillingService)
	router := setupBillingRouter(mockSvc)

	mockSvc.On("UnbilledMonthsForTenant", mock.Anything, "nope").Return(nil, mongo.ErrNoDocuments)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/tenants/nope/unbilled-months", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBillingHandler_UnbilledMonths_AllBilled(t *testing.T) {
	mockSvc := new(MockBillingService)
	router := setupBillingRouter(mockSvc)

	// Fully billed term: success with an empty month list, not an error.
	report := &services.UnbilledReport{TenantID: "tenant-1", UnbilledMonth: []string{}}
	mockSvc.On("UnbilledMonthsForTenant", mock.Anything, "tenant-1").Return(report, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/tenants/tenant-1/unbilled-months", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unbilled_months":[]`)
}

func TestBillingHandler_CreateBill(t *testing.T) {
	mockSvc := new(MockBillingService)
	router := setupBillingRouter(mockSvc)

	month := billing.Month{Year: 2024, Month: time.February}
	bill := &models.Payment{
		Base:     models.NewBase(),
		TenantID: "tenant-1",
		DueDate:  month.FirstDay(),
		Amount:   12000,
		Status:   models.PaymentStatusPending,
	}
	mockSvc.On("CreateBill", mock.Anything, "tenant-1", month).Return(bill, nil)

	w := httptest.NewRecorder()
	body := `{"tenant_id":"tenant-1","month":"2024-02"}`
	req, _ := http.NewRequest(http.MethodPost, "/v1/bills", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Payment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.PaymentStatusPending, got.Status)
	assert.Equal(t, 12000.0, got.Amount)
	mockSvc.AssertExpectations(t)
}

func TestBillingHandler_CreateBill_AlreadyBilled(t *testing.T) {
	mockSvc := new(MockBillingService)
	router := setupBillingRouter(mockSvc)

	month := billing.Month{Year: 2024, Month: time.February}
	mockSvc.On("CreateBill", mock.Anything, "tenant-1", month).Return(nil, services.ErrAlreadyBilled)

	w := httptest.NewRecorder()
	body := `{"tenant_id":"tenant-1","month":"2024-02"}`
	req, _ := http.NewRequest(http.MethodPost, "/v1/bills", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestBillingHandler_CreateBill_BadMonth(t *testing.T) {
	mockSvc := new(MockBillingService)
	router := setupBillingRouter(mockSvc)

	w := httptest.NewRecorder()
	body := `{"tenant_id":"tenant-1","month":"February 2024"}`
	req, _ := http.NewRequest(http.MethodPost, "/v1/bills", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "CreateBill")
}
