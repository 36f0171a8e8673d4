package models

import "time"

// TenantStatusActive is the only tenant status the admin screens create.
const TenantStatusActive = "active"

// Tenant is a renter record, optionally assigned to a property.
type Tenant struct {
	Base           `bson:",inline"`
	FirstName      string    `bson:"first_name" json:"first_name"`
	LastName       string    `bson:"last_name" json:"last_name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PropertyID     string    `bson:"property_id,omitempty" json:"property_id,omitempty"`
	RentAmount     float64   `bson:"rent_amount" json:"rent_amount"`
	LeaseStartDate time.Time `bson:"lease_start_date" json:"lease_start_date"`
	Status         string    `bson:"status" json:"status"`
}

// FullName returns the display name used in tables and dropdowns.
func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}
