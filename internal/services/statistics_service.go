package services

import (
	"fmt"

	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
)

// StatisticsService exposes the per-user aggregate counters.
type StatisticsService struct {
	statsRepo repository.StatisticsRepository
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(statsRepo repository.StatisticsRepository) *StatisticsService {
	return &StatisticsService{statsRepo: statsRepo}
}

// ForUser collects statistics scoped to projects the user owns or
// collaborates on.
func (s *StatisticsService) ForUser(userID uint64) (*repository.UserStatistics, error) {
	stats, err := s.statsRepo.Collect(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect statistics: %w", err)
	}
	return stats, nil
}
