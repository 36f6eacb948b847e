package services

import (
	"context"

	"github.com/sambathreasmey/library-management-system/pkg/pg"
)

// HealthService answers the readiness probe with a storage ping.
type HealthService struct {
	db *pg.DB
}

func NewHealthService(db *pg.DB) *HealthService {
	return &HealthService{
		db: db,
	}
}

func (s *HealthService) Get() error {
	sqlDB, err := s.db.Read(context.Background()).DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
