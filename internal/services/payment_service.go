package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primero/rentdesk/internal/models"
)

// PaymentRow is a payment joined with the display fields the payments table
// shows (tenant name, property name).
type PaymentRow struct {
	models.Payment
	TenantName   string `json:"tenant_name"`
	PropertyName string `json:"property_name"`
}

// RecordPaymentInput captures the record-payment form: which bill, when and
// how it was paid, and the amount actually received.
type RecordPaymentInput struct {
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	PaymentDate   time.Time `json:"payment_date" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
}

// IPaymentService defines the interface for payment record operations.
type IPaymentService interface {
	ListPayments(ctx context.Context) ([]PaymentRow, error)
	FindPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error)
	ListUnpaidByTenant(ctx context.Context, tenantID string) ([]models.Payment, error)
	RecordPayment(ctx context.Context, paymentID string, input RecordPaymentInput) (*models.Payment, error)
	RevertPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

const paymentsCollection = "payments"

// paymentService implements IPaymentService.
type paymentService struct {
	db *mongo.Database
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(db *mongo.Database) IPaymentService {
	return &paymentService{db: db}
}

// ListPayments returns all payment records sorted by due date descending,
// joined with tenant and property names for display.
func (s *paymentService) ListPayments(ctx context.Context) ([]PaymentRow, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: -1}})
	cursor, err := s.db.Collection(paymentsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}

	tenantNames, propertyNames, err := s.displayNames(ctx, payments)
	if err != nil {
		return nil, err
	}

	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			Payment:      p,
			TenantName:   tenantNames[p.TenantID],
			PropertyName: propertyNames[p.PropertyID],
		})
	}
	return rows, nil
}

// displayNames batch-loads tenant and property names for a page of payments.
func (s *paymentService) displayNames(ctx context.Context, payments []models.Payment) (map[string]string, map[string]string, error) {
	tenantIDs := make([]string, 0, len(payments))
	propertyIDs := make([]string, 0, len(payments))
	seenTenant := map[string]bool{}
	seenProperty := map[string]bool{}
	for _, p := range payments {
		if p.TenantID != "" && !seenTenant[p.TenantID] {
			seenTenant[p.TenantID] = true
			tenantIDs = append(tenantIDs, p.TenantID)
		}
		if p.PropertyID != "" && !seenProperty[p.PropertyID] {
			seenProperty[p.PropertyID] = true
			propertyIDs = append(propertyIDs, p.PropertyID)
		}
	}

	tenantNames := make(map[string]string, len(tenantIDs))
	if len(tenantIDs) > 0 {
		cursor, err := s.db.Collection(tenantsCollection).Find(ctx, bson.M{"_id": bson.M{"$in": tenantIDs}})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to query payment tenants: %w", err)
		}
		var tenants []models.Tenant
		if err := cursor.All(ctx, &tenants); err != nil {
			return nil, nil, fmt.Errorf("failed to decode payment tenants: %w", err)
		}
		for i := range tenants {
			tenantNames[tenants[i].ID] = tenants[i].FullName()
		}
	}

	propertyNames := make(map[string]string, len(propertyIDs))
	if len(propertyIDs) > 0 {
		cursor, err := s.db.Collection(propertiesCollection).Find(ctx, bson.M{"_id": bson.M{"$in": propertyIDs}})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to query payment properties: %w", err)
		}
		var properties []models.Property
		if err := cursor.All(ctx, &properties); err != nil {
			return nil, nil, fmt.Errorf("failed to decode payment properties: %w", err)
		}
		for i := range properties {
			propertyNames[properties[i].ID] = properties[i].Name
		}
	}

	return tenantNames, propertyNames, nil
}

// FindPaymentByID finds a payment record by its ID.
func (s *paymentService) FindPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Collection(paymentsCollection).FindOne(ctx, bson.M{"_id": paymentID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding payment %s: %w", paymentID, err)
	}
	return &payment, nil
}

// ListUnpaidByTenant returns a tenant's pending and overdue bills, oldest due
// date first (the record-payment due-date dropdown).
func (s *paymentService) ListUnpaidByTenant(ctx context.Context, tenantID string) ([]models.Payment, error) {
	filter := bson.M{
		"tenant_id": tenantID,
		"status":    bson.M{"$in": []string{models.PaymentStatusPending, models.PaymentStatusOverdue}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})

	cursor, err := s.db.Collection(paymentsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query unpaid bills for tenant %s: %w", tenantID, err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode unpaid bills for tenant %s: %w", tenantID, err)
	}
	return payments, nil
}

// RecordPayment marks a bill as paid. Amount and due date stay immutable apart
// from the received amount the form captures; only unpaid bills can be paid.
func (s *paymentService) RecordPayment(ctx context.Context, paymentID string, input RecordPaymentInput) (*models.Payment, error) {
	payment, err := s.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Unpaid() {
		return nil, fmt.Errorf("payment %s is already paid", paymentID)
	}

	update := bson.M{"$set": bson.M{
		"status":         models.PaymentStatusPaid,
		"amount":         input.Amount,
		"payment_date":   input.PaymentDate.UTC(),
		"payment_method": input.PaymentMethod,
		"updated_at":     time.Now().UTC(),
	}}
	if _, err := s.db.Collection(paymentsCollection).UpdateOne(ctx, bson.M{"_id": paymentID}, update); err != nil {
		return nil, fmt.Errorf("db error recording payment %s: %w", paymentID, err)
	}
	return s.FindPaymentByID(ctx, paymentID)
}

// RevertPayment undoes a recorded payment: status back to pending, payment
// date and method cleared. Only paid bills can be reverted.
func (s *paymentService) RevertPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := s.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentStatusPaid {
		return nil, fmt.Errorf("payment %s is not paid, nothing to revert", paymentID)
	}

	update := bson.M{
		"$set":   bson.M{"status": models.PaymentStatusPending, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"payment_date": "", "payment_method": ""},
	}
	if _, err := s.db.Collection(paymentsCollection).UpdateOne(ctx, bson.M{"_id": paymentID}, update); err != nil {
		return nil, fmt.Errorf("db error reverting payment %s: %w", paymentID, err)
	}
	return s.FindPaymentByID(ctx, paymentID)
}

// DeletePayment removes a payment record permanently.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string) error {
	result, err := s.db.Collection(paymentsCollection).DeleteOne(ctx, bson.M{"_id": paymentID})
	if err != nil {
		return fmt.Errorf("db error deleting payment %s: %w", paymentID, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkOverdue flags every pending bill whose due date has passed as overdue
// and returns how many were flagged. Idempotent: already-overdue bills are
// left alone.
func (s *paymentService) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":   models.PaymentStatusPending,
		"due_date": bson.M{"$lt": now.UTC()},
	}
	update := bson.M{"$set": bson.M{"status": models.PaymentStatusOverdue, "updated_at": time.Now().UTC()}}

	result, err := s.db.Collection(paymentsCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("db error marking overdue payments: %w", err)
	}
	return result.ModifiedCount, nil
}
