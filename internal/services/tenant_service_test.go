package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primero/rentdesk/internal/models"
	"primero/rentdesk/internal/utils"
)

func TestTenantService_CreateAndDelete_PropertyStatus(t *testing.T) {
	database := utils.SetupTestDB(t, "testdb_tenant_service", "tenants", "properties")
	ctx := context.Background()

	propertySvc := NewPropertyService(database)
	tenantSvc := NewTenantService(database, propertySvc)

	property, err := propertySvc.CreateProperty(ctx, PropertyInput{
		Name: "Unit 2A", Address: "5 Mabini St", Type: "apartment", MonthlyRent: 11000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusVacant, property.Status)

	// Assigning a tenant occupies the property.
	tenant, err := tenantSvc.CreateTenant(ctx, TenantInput{
		FirstName: "Ben", LastName: "Lim", Email: "ben@example.com",
		PropertyID: property.ID, RentAmount: 11000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TenantStatusActive, tenant.Status)

	occupied, err := propertySvc.FindPropertyByID(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusOccupied, occupied.Status)

	// Deleting the tenant frees the property again.
	require.NoError(t, tenantSvc.DeleteTenant(ctx, tenant.ID))

	vacant, err := propertySvc.FindPropertyByID(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyStatusVacant, vacant.Status)
}

func TestTenantService_GetTenantDetails(t *testing.T) {
	database := utils.SetupTestDB(t, "testdb_tenant_details", "tenants", "properties", "contracts", "payments")
	ctx := context.Background()

	propertySvc := NewPropertyService(database)
	tenantSvc := NewTenantService(database, propertySvc)

	property, err := propertySvc.CreateProperty(ctx, PropertyInput{
		Name: "Unit 7C", Address: "9 Bonifacio St", Type: "studio", MonthlyRent: 9500,
	})
	require.NoError(t, err)

	tenant, err := tenantSvc.CreateTenant(ctx, TenantInput{
		FirstName: "Grace", LastName: "Tan", Email: "grace@example.com",
		PropertyID: property.ID, RentAmount: 9500,
	})
	require.NoError(t, err)

	details, err := tenantSvc.GetTenantDetails(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, details.Tenant.ID)
	require.NotNil(t, details.Property)
	assert.Equal(t, property.ID, details.Property.ID)
	assert.Empty(t, details.Contracts)
	assert.Empty(t, details.Payments)
}
