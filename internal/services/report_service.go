package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"primero/rentdesk/internal/billing"
	"primero/rentdesk/internal/config"
	"primero/rentdesk/internal/models"
)

// DashboardStats is the headline numbers block on the dashboard.
type DashboardStats struct {
	TotalProperties  int64   `json:"total_properties"`
	OccupancyRate    float64 `json:"occupancy_rate"` // percent, one decimal place worth of precision
	RevenueThisMonth float64 `json:"revenue_this_month"`
	OverdueTotal     float64 `json:"overdue_total"`
	ActiveTenants    int64   `json:"active_tenants"`
}

// MonthlyRevenuePoint is one month of collected revenue (paid payments grouped
// by payment month).
type MonthlyRevenuePoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

// PaymentStatusBreakdown counts payments per status.
type PaymentStatusBreakdown struct {
	Paid    int64 `json:"paid"`
	Pending int64 `json:"pending"`
	Overdue int64 `json:"overdue"`
}

// OccupancyBreakdown counts properties per occupancy status.
type OccupancyBreakdown struct {
	Occupied int64 `json:"occupied"`
	Vacant   int64 `json:"vacant"`
}

// IReportService defines the interface for dashboard and report computations.
type IReportService interface {
	GetDashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error)
	GetMonthlyRevenue(ctx context.Context) ([]MonthlyRevenuePoint, error)
	GetPaymentStatusBreakdown(ctx context.Context) (*PaymentStatusBreakdown, error)
	GetOccupancyBreakdown(ctx context.Context) (*OccupancyBreakdown, error)
}

const statsCacheKey = "reports:dashboard_stats"

// reportService implements IReportService.
type reportService struct {
	db  *mongo.Database
	cfg *config.Config
	rdb *redis.Client
}

// NewReportService creates a new ReportService. rdb may be nil, which disables
// the stats cache.
func NewReportService(db *mongo.Database, cfg *config.Config, rdb *redis.Client) IReportService {
	return &reportService{db: db, cfg: cfg, rdb: rdb}
}

// GetDashboardStats computes the dashboard headline numbers. Results are
// cached in Redis for a short TTL since every admin page load requests them.
func (s *reportService) GetDashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats DashboardStats
			if jsonErr := json.Unmarshal([]byte(cached), &stats); jsonErr == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			log.Printf("Warning: stats cache read failed: %v", err)
		}
	}

	stats, err := s.computeDashboardStats(ctx, now)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, jsonErr := json.Marshal(stats); jsonErr == nil {
			if err := s.rdb.Set(ctx, statsCacheKey, data, s.cfg.StatsCacheTTL).Err(); err != nil {
				log.Printf("Warning: stats cache write failed: %v", err)
			}
		}
	}
	return stats, nil
}

func (s *reportService) computeDashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	total, err := s.db.Collection(propertiesCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	occupied, err := s.db.Collection(propertiesCollection).CountDocuments(ctx, bson.M{"status": models.PropertyStatusOccupied})
	if err != nil {
		return nil, fmt.Errorf("failed to count occupied properties: %w", err)
	}
	stats.TotalProperties = total
	if total > 0 {
		stats.OccupancyRate = float64(occupied) / float64(total) * 100
	}

	// Revenue this month: paid payments whose payment date falls inside the
	// current calendar month.
	thisMonth := billing.MonthOf(now)
	monthStart := thisMonth.FirstDay()
	monthEnd := thisMonth.Next().FirstDay()
	paidCursor, err := s.db.Collection(paymentsCollection).Find(ctx, bson.M{
		"status":       models.PaymentStatusPaid,
		"payment_date": bson.M{"$gte": monthStart, "$lt": monthEnd},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query this month's payments: %w", err)
	}
	var paid []models.Payment
	if err := paidCursor.All(ctx, &paid); err != nil {
		return nil, fmt.Errorf("failed to decode this month's payments: %w", err)
	}
	for _, p := range paid {
		stats.RevenueThisMonth += p.Amount
	}

	overdueCursor, err := s.db.Collection(paymentsCollection).Find(ctx, bson.M{"status": models.PaymentStatusOverdue})
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue payments: %w", err)
	}
	var overdue []models.Payment
	if err := overdueCursor.All(ctx, &overdue); err != nil {
		return nil, fmt.Errorf("failed to decode overdue payments: %w", err)
	}
	for _, p := range overdue {
		stats.OverdueTotal += p.Amount
	}

	stats.ActiveTenants, err = s.db.Collection(tenantsCollection).CountDocuments(ctx, bson.M{"status": models.TenantStatusActive})
	if err != nil {
		return nil, fmt.Errorf("failed to count active tenants: %w", err)
	}

	return stats, nil
}

// GetMonthlyRevenue groups paid payments by the calendar month of their
// payment date, sorted chronologically.
func (s *reportService) GetMonthlyRevenue(ctx context.Context) ([]MonthlyRevenuePoint, error) {
	cursor, err := s.db.Collection(paymentsCollection).Find(ctx, bson.M{
		"status":       models.PaymentStatusPaid,
		"payment_date": bson.M{"$ne": nil},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query paid payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode paid payments: %w", err)
	}

	byMonth := map[string]float64{}
	for _, p := range payments {
		if p.PaymentDate == nil {
			continue
		}
		byMonth[billing.MonthOf(*p.PaymentDate).String()] += p.Amount
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months) // YYYY-MM sorts chronologically

	points := make([]MonthlyRevenuePoint, 0, len(months))
	for _, m := range months {
		points = append(points, MonthlyRevenuePoint{Month: m, Revenue: byMonth[m]})
	}
	return points, nil
}

// GetPaymentStatusBreakdown counts payments in each status.
func (s *reportService) GetPaymentStatusBreakdown(ctx context.Context) (*PaymentStatusBreakdown, error) {
	breakdown := &PaymentStatusBreakdown{}
	var err error

	if breakdown.Paid, err = s.db.Collection(paymentsCollection).CountDocuments(ctx, bson.M{"status": models.PaymentStatusPaid}); err != nil {
		return nil, fmt.Errorf("failed to count paid payments: %w", err)
	}
	if breakdown.Pending, err = s.db.Collection(paymentsCollection).CountDocuments(ctx, bson.M{"status": models.PaymentStatusPending}); err != nil {
		return nil, fmt.Errorf("failed to count pending payments: %w", err)
	}
	if breakdown.Overdue, err = s.db.Collection(paymentsCollection).CountDocuments(ctx, bson.M{"status": models.PaymentStatusOverdue}); err != nil {
		return nil, fmt.Errorf("failed to count overdue payments: %w", err)
	}
	return breakdown, nil
}

// GetOccupancyBreakdown counts properties in each occupancy status.
func (s *reportService) GetOccupancyBreakdown(ctx context.Context) (*OccupancyBreakdown, error) {
	breakdown := &OccupancyBreakdown{}
	var err error

	if breakdown.Occupied, err = s.db.Collection(propertiesCollection).CountDocuments(ctx, bson.M{"status": models.PropertyStatusOccupied}); err != nil {
		return nil, fmt.Errorf("failed to count occupied properties: %w", err)
	}
	if breakdown.Vacant, err = s.db.Collection(propertiesCollection).CountDocuments(ctx, bson.M{"status": models.PropertyStatusVacant}); err != nil {
		return nil, fmt.Errorf("failed to count vacant properties: %w", err)
	}
	return breakdown, nil
}
