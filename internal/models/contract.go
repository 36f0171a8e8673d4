package models

import "time"

// Contract is a tenant's lease agreement. StartDate and EndDate bound the
// billable term; the billing service only ever reads contracts.
type Contract struct {
	Base       `bson:",inline"`
	TenantID   string    `bson:"tenant_id" json:"tenant_id"`
	PropertyID string    `bson:"property_id" json:"property_id"`
	StartDate  time.Time `bson:"start_date" json:"start_date"`
	EndDate    time.Time `bson:"end_date" json:"end_date"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`

	// Uploaded agreement document.
	FileURL  string `bson:"file_url,omitempty" json:"file_url,omitempty"`
	FileName string `bson:"file_name,omitempty" json:"file_name,omitempty"`
}
