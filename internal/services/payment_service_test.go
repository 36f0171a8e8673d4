package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"primero/rentdesk/internal/models"
	"primero/rentdesk/internal/utils"
)

func setupPaymentTest(t *testing.T) (*mongo.Database, IPaymentService) {
	t.Helper()
	database := utils.SetupTestDB(t, "testdb_payment_service", "tenants", "properties", "payments")
	return database, NewPaymentService(database)
}

func insertPayment(t *testing.T, database *mongo.Database, tenantID, status string, dueDate time.Time, amount float64) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		Base:     models.NewBase(),
		TenantID: tenantID,
		DueDate:  dueDate,
		Amount:   amount,
		Status:   status,
	}
	_, err := database.Collection("payments").InsertOne(context.Background(), payment)
	require.NoError(t, err)
	return payment
}

func TestPaymentService_RecordAndRevert(t *testing.T) {
	database, svc := setupPaymentTest(t)
	ctx := context.Background()

	bill := insertPayment(t, database, "tenant-1", models.PaymentStatusPending,
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 12000)

	paid, err := svc.RecordPayment(ctx, bill.ID, RecordPaymentInput{
		Amount:        12000,
		PaymentDate:   time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "Bank Transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "Bank Transfer", paid.PaymentMethod)

	// Recording twice is rejected.
	_, err = svc.RecordPayment(ctx, bill.ID, RecordPaymentInput{
		Amount: 12000, PaymentDate: time.Now(), PaymentMethod: "Cash",
	})
	assert.Error(t, err)

	// Revert puts the bill back to pending with payment fields cleared.
	reverted, err := svc.RevertPayment(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, reverted.Status)
	assert.Nil(t, reverted.PaymentDate)
	assert.Empty(t, reverted.PaymentMethod)

	// Reverting an unpaid bill is rejected.
	_, err = svc.RevertPayment(ctx, bill.ID)
	assert.Error(t, err)
}

func TestPaymentService_RecordPayment_OverdueBill(t *testing.T) {
	database, svc := setupPaymentTest(t)
	ctx := context.Background()

	bill := insertPayment(t, database, "tenant-1", models.PaymentStatusOverdue,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 10000)

	paid, err := svc.RecordPayment(ctx, bill.ID, RecordPaymentInput{
		Amount: 10000, PaymentDate: time.Now().UTC(), PaymentMethod: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
}

func TestPaymentService_DeletePayment(t *testing.T) {
	database, svc := setupPaymentTest(t)
	ctx := context.Background()

	bill := insertPayment(t, database, "tenant-1", models.PaymentStatusPending,
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 5000)

	require.NoError(t, svc.DeletePayment(ctx, bill.ID))
	assert.ErrorIs(t, svc.DeletePayment(ctx, bill.ID), mongo.ErrNoDocuments)

	_, err := svc.FindPaymentByID(ctx, bill.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestPaymentService_ListUnpaidByTenant(t *testing.T) {
	database, svc := setupPaymentTest(t)
	ctx := context.Background()

	feb := insertPayment(t, database, "tenant-1", models.PaymentStatusPending,
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 8000)
	jan := insertPayment(t, database, "tenant-1", models.PaymentStatusOverdue,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 8000)
	insertPayment(t, database, "tenant-1", models.PaymentStatusPaid,
		time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), 8000)
	insertPayment(t, database, "tenant-2", models.PaymentStatusPending,
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 9000)

	unpaid, err := svc.ListUnpaidByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, unpaid, 2)
	// Oldest due date first, paid bills and other tenants excluded.
	assert.Equal(t, jan.ID, unpaid[0].ID)
	assert.Equal(t, feb.ID, unpaid[1].ID)
}

func TestPaymentService_MarkOverdue(t *testing.T) {
	database, svc := setupPaymentTest(t)
	ctx := context.Background()

	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	past := insertPayment(t, database, "tenant-1", models.PaymentStatusPending,
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 7000)
	future := insertPayment(t, database, "tenant-1", models.PaymentStatusPending,
		time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 7000)
	alreadyPaid := insertPayment(t, database, "tenant-1", models.PaymentStatusPaid,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 7000)

	flagged, err := svc.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), flagged)

	check := func(id, want string) {
		p, err := svc.FindPaymentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, p.Status)
	}
	check(past.ID, models.PaymentStatusOverdue)
	check(future.ID, models.PaymentStatusPending)
	check(alreadyPaid.ID, models.PaymentStatusPaid)

	// Second sweep finds nothing new.
	flagged, err = svc.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, flagged)
}

func TestPaymentService_ListPayments_DisplayNames(t *testing.T) {
	database, svc := setupPaymentTest(t)
	ctx := context.Background()

	propertySvc := NewPropertyService(database)
	property, err := propertySvc.CreateProperty(ctx, PropertyInput{
		Name: "Tower A 12F", Address: "1 Ayala Ave", Type: "condo", MonthlyRent: 20000,
	})
	require.NoError(t, err)

	tenantSvc := NewTenantService(database, propertySvc)
	tenant, err := tenantSvc.CreateTenant(ctx, TenantInput{
		FirstName: "Liza", LastName: "Dela Cruz", Email: "liza@example.com",
		PropertyID: property.ID, RentAmount: 20000,
	})
	require.NoError(t, err)

	payment := &models.Payment{
		Base:       models.NewBase(),
		TenantID:   tenant.ID,
		PropertyID: property.ID,
		DueDate:    time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		Amount:     20000,
		Status:     models.PaymentStatusPending,
	}
	_, err = database.Collection("payments").InsertOne(ctx, payment)
	require.NoError(t, err)

	rows, err := svc.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Liza Dela Cruz", rows[0].TenantName)
	assert.Equal(t, "Tower A 12F", rows[0].PropertyName)
}
