package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/pkg/logger"
	"github.com/sambathreasmey/library-management-system/pkg/redis"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardLatestN  = 5
)

type DashboardCounters interface {
	Latest(ctx context.Context, n int) ([]*model.Transaction, error)
	CountAll(ctx context.Context) (int64, error)
}

type countSource interface {
	Count(ctx context.Context) (int64, error)
}

type DashboardService struct {
	transactions DashboardCounters
	customers    CustomerRepository
	users        countSource
	cache        redis.RedisAdapter
	ttl          time.Duration
}

func NewDashboardService(transactions DashboardCounters, customers CustomerRepository, users countSource, cache redis.RedisAdapter, ttl time.Duration) *DashboardService {
	if ttl <= 0 {
		ttl = 120 * time.Second
	}
	return &DashboardService{
		transactions: transactions,
		customers:    customers,
		users:        users,
		cache:        cache,
		ttl:          ttl,
	}
}

// Stats returns the landing page summary, served from redis when a
// fresh snapshot exists. A cache failure degrades to a direct read.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if cached, err := s.cache.Get(dashboardCacheKey); err == nil {
		var stats model.DashboardStats
		if json.Unmarshal(cached, &stats) == nil {
			return &stats, nil
		}
	} else if !errors.Is(err, redis.NilError) {
		logger.Warn("[dashboard] cache read failed", "error", err)
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(dashboardCacheKey, payload, s.ttl); err != nil {
			logger.Warn("[dashboard] cache write failed", "error", err)
		}
	}
	return stats, nil
}

// Invalidate drops the snapshot, called after booking mutations so the
// landing page does not show stale totals for the full TTL.
func (s *DashboardService) Invalidate() {
	if err := s.cache.Del(dashboardCacheKey); err != nil {
		logger.Warn("[dashboard] cache invalidate failed", "error", err)
	}
}

func (s *DashboardService) compute(ctx context.Context) (*model.DashboardStats, error) {
	customers, err := s.customers.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	booked, err := s.transactions.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := s.transactions.Latest(ctx, dashboardLatestN)
	if err != nil {
		return nil, err
	}

	return &model.DashboardStats{
		TotalCustomers:     int64(len(customers)),
		TotalBooked:        booked,
		TotalUsers:         users,
		LatestTransactions: latest,
	}, nil
}
