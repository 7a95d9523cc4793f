package store

import (
	"context"
	"errors"

	"frenoshugo-backend/models"

	"gorm.io/gorm"
)

// StatsStore answers the read-only aggregate queries. No side effects.
type StatsStore struct {
	db *gorm.DB
}

func NewStatsStore(db *gorm.DB) *StatsStore {
	return &StatsStore{db: db}
}

type Stats struct {
	TotalVehicles int64           `json:"totalVehiculos"`
	TotalServices int64           `json:"totalServicios"`
	LastVehicle   *models.Vehicle `json:"ultimoVehiculo"`
	LastService   *models.Service `json:"ultimoServicio"`
	Monthly       []MonthlyStat   `json:"monthly"`
}

// MonthlyStat is one month's service count and revenue, newest first.
type MonthlyStat struct {
	Month   string  `json:"month"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"totalRevenue"`
}

func (s *StatsStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Vehicle{}).Count(&stats.TotalVehicles).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Service{}).Count(&stats.TotalServices).Error; err != nil {
		return nil, err
	}

	var lastVehicle models.Vehicle
	err := db.Order("created_at DESC").First(&lastVehicle).Error
	if err == nil {
		stats.LastVehicle = &lastVehicle
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var lastService models.Service
	err = db.Order("created_at DESC").First(&lastService).Error
	if err == nil {
		stats.LastService = &lastService
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	monthly, err := s.monthlyStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.Monthly = monthly

	return stats, nil
}

// monthlyStats rolls up the last 12 months of services. The month bucketing
// function differs per backend, so the expression is picked by dialect.
func (s *StatsStore) monthlyStats(ctx context.Context) ([]MonthlyStat, error) {
	monthExpr := "to_char(created_at, 'YYYY-MM')"
	if s.db.Dialector.Name() == "sqlite" {
		monthExpr = "strftime('%Y-%m', created_at)"
	}

	var monthly []MonthlyStat
	err := s.db.WithContext(ctx).
		Model(&models.Service{}).
		Select(monthExpr + " AS month, COUNT(*) AS count, COALESCE(SUM(cost), 0) AS revenue").
		Group("month").
		Order("month DESC").
		Limit(12).
		Scan(&monthly).Error
	if err != nil {
		return nil, err
	}
	return monthly, nil
}
