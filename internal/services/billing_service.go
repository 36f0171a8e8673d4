package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"primero/rentdesk/internal/billing"
	"primero/rentdesk/internal/db"
	"primero/rentdesk/internal/models"
)

// UnbilledReport is the month-selection data for the create-bill form.
type UnbilledReport struct {
	TenantID      string          `json:"tenant_id"`
	Contract      models.Contract `json:"contract"`
	RentAmount    float64         `json:"rent_amount"`
	UnbilledMonth []string        `json:"unbilled_months"`
}

// IBillingService defines the interface for billing operations.
type IBillingService interface {
	UnbilledMonthsForTenant(ctx context.Context, tenantID string) (*UnbilledReport, error)
	CreateBill(ctx context.Context, tenantID string, month billing.Month) (*models.Payment, error)
}

// billingService implements IBillingService.
type billingService struct {
	db              *mongo.Database
	tenantService   ITenantService
	contractService IContractService
}

// NewBillingService creates a new BillingService.
func NewBillingService(database *mongo.Database, tenantService ITenantService, contractService IContractService) IBillingService {
	return &billingService{
		db:              database,
		tenantService:   tenantService,
		contractService: contractService,
	}
}

// billedMonthsForTenant derives the set of already-billed months from the
// tenant's existing payment records.
func (s *billingService) billedMonthsForTenant(ctx context.Context, tenantID string) ([]billing.Month, error) {
	cursor, err := s.db.Collection(paymentsCollection).Find(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for tenant %s: %w", tenantID, err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments for tenant %s: %w", tenantID, err)
	}

	dueDates := make([]time.Time, 0, len(payments))
	for _, p := range payments {
		dueDates = append(dueDates, p.DueDate)
	}
	return billing.MonthsOfDueDates(dueDates), nil
}

// UnbilledMonthsForTenant reconciles the tenant's primary contract term
// against their existing bills. Returns ErrNoContract when the tenant has no
// contract; a report with an empty month list means every month in the term is
// already billed, which callers surface differently.
func (s *billingService) UnbilledMonthsForTenant(ctx context.Context, tenantID string) (*UnbilledReport, error) {
	tenant, err := s.tenantService.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	contract, err := s.contractService.FindPrimaryContract(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	billed, err := s.billedMonthsForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	term := billing.EnumerateMonths(contract.StartDate, contract.EndDate)
	unbilled := billing.UnbilledMonths(term, billed)

	report := &UnbilledReport{
		TenantID:      tenantID,
		Contract:      *contract,
		RentAmount:    tenant.RentAmount,
		UnbilledMonth: make([]string, 0, len(unbilled)),
	}
	for _, m := range unbilled {
		report.UnbilledMonth = append(report.UnbilledMonth, m.String())
	}
	return report, nil
}

// CreateBill emits a new pending bill for the given month at the tenant's
// current rent amount. The due date is the first day of the month. A second
// bill for the same tenant and month fails against the unique index and is
// reported as ErrAlreadyBilled.
func (s *billingService) CreateBill(ctx context.Context, tenantID string, month billing.Month) (*models.Payment, error) {
	tenant, err := s.tenantService.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// Requiring a contract here keeps a raw API call from billing a
	// contract-less tenant; month membership in the unbilled set is not
	// re-validated, the unique index covers that race.
	if _, err := s.contractService.FindPrimaryContract(ctx, tenantID); err != nil {
		return nil, err
	}

	bill := &models.Payment{
		Base:       models.NewBase(),
		TenantID:   tenantID,
		PropertyID: tenant.PropertyID,
		DueDate:    month.FirstDay(),
		Amount:     tenant.RentAmount,
		Status:     models.PaymentStatusPending,
	}

	err = db.Try(func() error {
		_, insertErr := s.db.Collection(paymentsCollection).InsertOne(ctx, bill)
		return insertErr
	})
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyBilled
		}
		return nil, fmt.Errorf("failed to insert bill for tenant %s month %s: %w", tenantID, month, err)
	}

	return bill, nil
}
