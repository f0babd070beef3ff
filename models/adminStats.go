package models

import (
	"context"
	"time"

	"github.com/ambershealthcare/placements_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdminStats struct {
	TotalHires          int64  `json:"total_hires"`
	ActiveJobs          int64  `json:"active_jobs"`
	TotalRevenueCents   int64  `json:"total_revenue_cents"`
	TotalRevenueDisplay string `json:"total_revenue_display"`
}

const adminStatsCacheKey = "AdminStats"

// GetAdminStats aggregates the dashboard counters. Paid revenue is
// summed in cents and rendered in dollars with fixed-point math.
// Cached briefly; staleness here is harmless.
func GetAdminStats(ctx context.Context, db *gorm.DB) (*AdminStats, error) {
	var stats AdminStats
	exists, err := config.GetRedisObject(adminStatsCacheKey, &stats)
	if err == nil && exists {
		return &stats, nil
	}

	if err := db.WithContext(ctx).Model(&HireConfirmation{}).Count(&stats.TotalHires).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&JobPosting{}).
		Where("status = ?", JobStatusOpen).Count(&stats.ActiveJobs).Error; err != nil {
		return nil, err
	}

	var total *int64
	err = db.WithContext(ctx).Model(&PlacementInvoice{}).
		Where("status = ?", InvoiceStatusPaid).
		Select("SUM(amount_cents)").Scan(&total).Error
	if err != nil {
		return nil, err
	}
	if total != nil {
		stats.TotalRevenueCents = *total
	}
	stats.TotalRevenueDisplay = decimal.NewFromInt(stats.TotalRevenueCents).
		Div(decimal.NewFromInt(100)).StringFixed(2)

	if err := config.SetRedisObject(adminStatsCacheKey, &stats, time.Minute); err != nil {
		config.LogError(config.GetLogger(), "adminStats.go", "GetAdminStats", "SetRedisObject", nil, err)
	}
	return &stats, nil
}
