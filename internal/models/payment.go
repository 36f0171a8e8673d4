package models

import "time"

// Payment statuses. A payment is created pending, becomes paid when recorded,
// and may be flagged overdue by the background sweep while still unpaid.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

// Payment is one month's bill for a tenant (the payments collection).
// DueDate is always the first day of the billed month; the unique index on
// (tenant_id, due_date) guarantees at most one bill per tenant per month.
type Payment struct {
	Base          `bson:",inline"`
	TenantID      string     `bson:"tenant_id" json:"tenant_id"`
	PropertyID    string     `bson:"property_id" json:"property_id"`
	DueDate       time.Time  `bson:"due_date" json:"due_date"`
	Amount        float64    `bson:"amount" json:"amount"`
	Status        string     `bson:"status" json:"status"`
	PaymentDate   *time.Time `bson:"payment_date,omitempty" json:"payment_date,omitempty"`
	PaymentMethod string     `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
}

// Unpaid reports whether the bill still awaits payment.
func (p *Payment) Unpaid() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusOverdue
}
