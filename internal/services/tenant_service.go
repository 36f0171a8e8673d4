package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primero/rentdesk/internal/models"
)

// TenantInput carries the editable fields of a tenant.
type TenantInput struct {
	FirstName      string    `json:"first_name" binding:"required"`
	LastName       string    `json:"last_name" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	Phone          string    `json:"phone"`
	PropertyID     string    `json:"property_id"`
	RentAmount     float64   `json:"rent_amount" binding:"gte=0"`
	LeaseStartDate time.Time `json:"lease_start_date"`
}

// TenantDetails is the full per-tenant view: the tenant plus their assigned
// property, contracts and payment history (the tenant-details screen).
type TenantDetails struct {
	Tenant    models.Tenant     `json:"tenant"`
	Property  *models.Property  `json:"property,omitempty"`
	Contracts []models.Contract `json:"contracts"`
	Payments  []models.Payment  `json:"payments"`
}

// ITenantService defines the interface for tenant operations.
type ITenantService interface {
	CreateTenant(ctx context.Context, input TenantInput) (*models.Tenant, error)
	FindTenantByID(ctx context.Context, tenantID string) (*models.Tenant, error)
	ListTenants(ctx context.Context) ([]models.Tenant, error)
	UpdateTenant(ctx context.Context, tenantID string, input TenantInput) (*models.Tenant, error)
	DeleteTenant(ctx context.Context, tenantID string) error
	GetTenantDetails(ctx context.Context, tenantID string) (*TenantDetails, error)
	CountActiveTenants(ctx context.Context) (int64, error)
}

const tenantsCollection = "tenants"

// tenantService implements ITenantService.
type tenantService struct {
	db              *mongo.Database
	propertyService IPropertyService
}

// NewTenantService creates a new TenantService.
func NewTenantService(db *mongo.Database, propertyService IPropertyService) ITenantService {
	return &tenantService{db: db, propertyService: propertyService}
}

// CreateTenant inserts a new tenant and, when a property is assigned, marks
// that property occupied.
func (s *tenantService) CreateTenant(ctx context.Context, input TenantInput) (*models.Tenant, error) {
	tenant := &models.Tenant{
		Base:           models.NewBase(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		PropertyID:     input.PropertyID,
		RentAmount:     input.RentAmount,
		LeaseStartDate: input.LeaseStartDate,
		Status:         models.TenantStatusActive,
	}

	if _, err := s.db.Collection(tenantsCollection).InsertOne(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to insert tenant %s: %w", tenant.FullName(), err)
	}

	if tenant.PropertyID != "" {
		if err := s.propertyService.SetPropertyStatus(ctx, tenant.PropertyID, models.PropertyStatusOccupied); err != nil {
			// The tenant record is in; a stale property status is recoverable
			// from the properties screen, so log and carry on.
			log.Printf("Warning: failed to mark property %s occupied for tenant %s: %v", tenant.PropertyID, tenant.ID, err)
		}
	}

	return tenant, nil
}

// FindTenantByID finds a tenant by its ID.
func (s *tenantService) FindTenantByID(ctx context.Context, tenantID string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Collection(tenantsCollection).FindOne(ctx, bson.M{"_id": tenantID}).Decode(&tenant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding tenant %s: %w", tenantID, err)
	}
	return &tenant, nil
}

// ListTenants returns all tenants, newest first.
func (s *tenantService) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.db.Collection(tenantsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer cursor.Close(ctx)

	var tenants []models.Tenant
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, fmt.Errorf("failed to decode tenants: %w", err)
	}
	return tenants, nil
}

// UpdateTenant replaces the editable fields of a tenant.
func (s *tenantService) UpdateTenant(ctx context.Context, tenantID string, input TenantInput) (*models.Tenant, error) {
	update := bson.M{"$set": bson.M{
		"first_name":       input.FirstName,
		"last_name":        input.LastName,
		"email":            input.Email,
		"phone":            input.Phone,
		"property_id":      input.PropertyID,
		"rent_amount":      input.RentAmount,
		"lease_start_date": input.LeaseStartDate,
		"updated_at":       time.Now().UTC(),
	}}

	result, err := s.db.Collection(tenantsCollection).UpdateOne(ctx, bson.M{"_id": tenantID}, update)
	if err != nil {
		return nil, fmt.Errorf("db error updating tenant %s: %w", tenantID, err)
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return s.FindTenantByID(ctx, tenantID)
}

// DeleteTenant removes a tenant permanently and frees their assigned property.
func (s *tenantService) DeleteTenant(ctx context.Context, tenantID string) error {
	tenant, err := s.FindTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}

	result, err := s.db.Collection(tenantsCollection).DeleteOne(ctx, bson.M{"_id": tenantID})
	if err != nil {
		return fmt.Errorf("db error deleting tenant %s: %w", tenantID, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	if tenant.PropertyID != "" {
		if err := s.propertyService.SetPropertyStatus(ctx, tenant.PropertyID, models.PropertyStatusVacant); err != nil {
			log.Printf("Warning: failed to mark property %s vacant after deleting tenant %s: %v", tenant.PropertyID, tenantID, err)
		}
	}
	return nil
}

// GetTenantDetails assembles the tenant with their property, contracts and
// payment history.
func (s *tenantService) GetTenantDetails(ctx context.Context, tenantID string) (*TenantDetails, error) {
	tenant, err := s.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	details := &TenantDetails{Tenant: *tenant, Contracts: []models.Contract{}, Payments: []models.Payment{}}

	if tenant.PropertyID != "" {
		property, err := s.propertyService.FindPropertyByID(ctx, tenant.PropertyID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		details.Property = property
	}

	contractCursor, err := s.db.Collection(contractsCollection).Find(ctx,
		bson.M{"tenant_id": tenantID},
		options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts for tenant %s: %w", tenantID, err)
	}
	defer contractCursor.Close(ctx)
	if err := contractCursor.All(ctx, &details.Contracts); err != nil {
		return nil, fmt.Errorf("failed to decode contracts for tenant %s: %w", tenantID, err)
	}

	paymentCursor, err := s.db.Collection(paymentsCollection).Find(ctx,
		bson.M{"tenant_id": tenantID},
		options.Find().SetSort(bson.D{{Key: "due_date", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for tenant %s: %w", tenantID, err)
	}
	defer paymentCursor.Close(ctx)
	if err := paymentCursor.All(ctx, &details.Payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments for tenant %s: %w", tenantID, err)
	}

	return details, nil
}

// CountActiveTenants counts tenants with active status.
func (s *tenantService) CountActiveTenants(ctx context.Context) (int64, error) {
	count, err := s.db.Collection(tenantsCollection).CountDocuments(ctx, bson.M{"status": models.TenantStatusActive})
	if err != nil {
		return 0, fmt.Errorf("failed to count active tenants: %w", err)
	}
	return count, nil
}
