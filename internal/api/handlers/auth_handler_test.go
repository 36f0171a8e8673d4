package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"primero/rentdesk/internal/config"
	"primero/rentdesk/internal/models"
	"primero/rentdesk/internal/services"
)

func setupAuthRouter(svc services.IUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JwtSecret: "test-secret", JwtTTL: time.Hour}
	h := NewAuthHandler(svc, cfg)
	router := gin.New()
	router.POST("/v1/auth/login", h.Login)
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupAuthRouter(mockSvc)

	user := &models.User{Base: models.NewBase(), Email: "admin@example.com", Name: "Admin"}
	mockSvc.On("Authenticate", mock.Anything, "admin@example.com", "correct-horse").Return(user, nil)

	w := httptest.NewRecorder()
	body := `{"email":"admin@example.com","password":"correct-horse"}`
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.Contains(t, w.Body.String(), "admin@example.com")
	mockSvc.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupAuthRouter(mockSvc)

	mockSvc.On("Authenticate", mock.Anything, "admin@example.com", "wrong").Return(nil, services.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	body := `{"email":"admin@example.com","password":"wrong"}`
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	mockSvc := new(MockUserService)
	router := setupAuthRouter(mockSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"admin@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Authenticate")
}
