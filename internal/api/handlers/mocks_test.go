package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"primero/rentdesk/internal/billing"
	"primero/rentdesk/internal/models"
	"primero/rentdesk/internal/services"
)

// MockUserService is a mock implementation of services.IUserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, email, name, password string) (*models.User, error) {
	args := m.Called(ctx, email, name, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}

// MockBillingService is a mock implementation of services.IBillingService.
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) UnbilledMonthsForTenant(ctx context.Context, tenantID string) (*services.UnbilledReport, error) {
	args := m.Called(ctx, tenantID)
	report, _ := args.Get(0).(*services.UnbilledReport)
	return report, args.Error(1)
}

func (m *MockBillingService) CreateBill(ctx context.Context, tenantID string, month billing.Month) (*models.Payment, error) {
	args := m.Called(ctx, tenantID, month)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

// MockPaymentService is a mock implementation of services.IPaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListPayments(ctx context.Context) ([]services.PaymentRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]services.PaymentRow)
	return rows, args.Error(1)
}

func (m *MockPaymentService) FindPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentService) ListUnpaidByTenant(ctx context.Context, tenantID string) ([]models.Payment, error) {
	args := m.Called(ctx, tenantID)
	payments, _ := args.Get(0).([]models.Payment)
	return payments, args.Error(1)
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, paymentID string, input services.RecordPaymentInput) (*models.Payment, error) {
	args := m.Called(ctx, paymentID, input)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentService) RevertPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	payment, _ := args.Get(0).(*models.Payment)
	return payment, args.Error(1)
}

func (m *MockPaymentService) DeletePayment(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *MockPaymentService) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTenantService is a mock implementation of services.ITenantService.
type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) CreateTenant(ctx context.Context, input services.TenantInput) (*models.Tenant, error) {
	args := m.Called(ctx, input)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantService) FindTenantByID(ctx context.Context, tenantID string) (*models.Tenant, error) {
	args := m.Called(ctx, tenantID)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantService) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	args := m.Called(ctx)
	tenants, _ := args.Get(0).([]models.Tenant)
	return tenants, args.Error(1)
}

func (m *MockTenantService) UpdateTenant(ctx context.Context, tenantID string, input services.TenantInput) (*models.Tenant, error) {
	args := m.Called(ctx, tenantID, input)
	tenant, _ := args.Get(0).(*models.Tenant)
	return tenant, args.Error(1)
}

func (m *MockTenantService) DeleteTenant(ctx context.Context, tenantID string) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockTenantService) GetTenantDetails(ctx context.Context, tenantID string) (*services.TenantDetails, error) {
	args := m.Called(ctx, tenantID)
	details, _ := args.Get(0).(*services.TenantDetails)
	return details, args.Error(1)
}

func (m *MockTenantService) CountActiveTenants(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
