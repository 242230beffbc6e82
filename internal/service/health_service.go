package service

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/repository"
	"context"
	"fmt"
	"strings"
)

// HealthService covers body metrics and screen time.
type HealthService interface {
	CreateMetric(ctx context.Context, userID string, metric domain.HealthMetric) (*domain.HealthMetric, error)
	GetMetric(ctx context.Context, userID, metricID string) (*domain.HealthMetric, error)
	ListMetrics(ctx context.Context, userID string, filter repository.HealthMetricFilter) ([]domain.HealthMetric, error)
	UpdateMetric(ctx context.Context, userID, metricID string, patch domain.HealthMetricPatch) (*domain.HealthMetric, error)
	DeleteMetric(ctx context.Context, userID, metricID string) error

	CreateScreenTime(ctx context.Context, userID string, entry domain.ScreenTimeEntry) (*domain.ScreenTimeEntry, error)
	GetScreenTime(ctx context.Context, userID, entryID string) (*domain.ScreenTimeEntry, error)
	ListScreenTime(ctx context.Context, userID, from, to string) ([]domain.ScreenTimeEntry, error)
	UpdateScreenTime(ctx context.Context, userID, entryID string, patch domain.ScreenTimePatch) (*domain.ScreenTimeEntry, error)
	DeleteScreenTime(ctx context.Context, userID, entryID string) error
	ScreenTimeSummary(ctx context.Context, userID, from, to string) (aggregate.ScreenTimeSummary, error)
}

type healthService struct {
	metricRepo     repository.HealthMetricRepository
	screenTimeRepo repository.ScreenTimeRepository
}

func NewHealthService(metricRepo repository.HealthMetricRepository, screenTimeRepo repository.ScreenTimeRepository) HealthService {
	return &healthService{
		metricRepo:     metricRepo,
		screenTimeRepo: screenTimeRepo,
	}
}

// validRange checks optional YYYY-MM-DD bounds.
func validRange(from, to string) error {
	for name, day := range map[string]string{"from": from, "to": to} {
		if day != "" && !domain.IsValidDay(day) {
			return fmt.Errorf("%w: %s must be a YYYY-MM-DD date", ErrValidationFailed, name)
		}
	}
	if from != "" && to != "" && from > to {
		return fmt.Errorf("%w: from must not be after to", ErrValidationFailed)
	}
	return nil
}

// === Health metrics ===

func (s *healthService) CreateMetric(ctx context.Context, userID string, metric domain.HealthMetric) (*domain.HealthMetric, error) {
	metric.UserID = userID
	if err := metric.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.metricRepo.Create(ctx, &metric); err != nil {
		return nil, err
	}
	return &metric, nil
}

func (s *healthService) GetMetric(ctx context.Context, userID, metricID string) (*domain.HealthMetric, error) {
	metric, err := s.metricRepo.GetByID(ctx, userID, metricID)
	if err != nil {
		return nil, mapNotFound(err, ErrHealthMetricNotFound)
	}
	return metric, nil
}

func (s *healthService) ListMetrics(ctx context.Context, userID string, filter repository.HealthMetricFilter) ([]domain.HealthMetric, error) {
	if err := validRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	filter.Type = strings.ToLower(strings.TrimSpace(filter.Type))
	return s.metricRepo.List(ctx, userID, filter)
}

func (s *healthService) UpdateMetric(ctx context.Context, userID, metricID string, patch domain.HealthMetricPatch) (*domain.HealthMetric, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	metric, err := s.GetMetric(ctx, userID, metricID)
	if err != nil {
		return nil, err
	}
	patch.Apply(metric)
	if err := s.metricRepo.Update(ctx, metric); err != nil {
		return nil, mapNotFound(err, ErrHealthMetricNotFound)
	}
	return metric, nil
}

func (s *healthService) DeleteMetric(ctx context.Context, userID, metricID string) error {
	return mapNotFound(s.metricRepo.Delete(ctx, userID, metricID), ErrHealthMetricNotFound)
}

// === Screen time ===

func (s *healthService) CreateScreenTime(ctx context.Context, userID string, entry domain.ScreenTimeEntry) (*domain.ScreenTimeEntry, error) {
	entry.UserID = userID
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.screenTimeRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *healthService) GetScreenTime(ctx context.Context, userID, entryID string) (*domain.ScreenTimeEntry, error) {
	entry, err := s.screenTimeRepo.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, mapNotFound(err, ErrScreenTimeNotFound)
	}
	return entry, nil
}

func (s *healthService) ListScreenTime(ctx context.Context, userID, from, to string) ([]domain.ScreenTimeEntry, error) {
	if err := validRange(from, to); err != nil {
		return nil, err
	}
	return s.screenTimeRepo.ListByDateRange(ctx, userID, from, to)
}

func (s *healthService) UpdateScreenTime(ctx context.Context, userID, entryID string, patch domain.ScreenTimePatch) (*domain.ScreenTimeEntry, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	entry, err := s.GetScreenTime(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	patch.Apply(entry)
	if err := s.screenTimeRepo.Update(ctx, entry); err != nil {
		return nil, mapNotFound(err, ErrScreenTimeNotFound)
	}
	return entry, nil
}

func (s *healthService) DeleteScreenTime(ctx context.Context, userID, entryID string) error {
	return mapNotFound(s.screenTimeRepo.Delete(ctx, userID, entryID), ErrScreenTimeNotFound)
}

func (s *healthService) ScreenTimeSummary(ctx context.Context, userID, from, to string) (aggregate.ScreenTimeSummary, error) {
	entries, err := s.ListScreenTime(ctx, userID, from, to)
	if err != nil {
		return aggregate.ScreenTimeSummary{}, err
	}
	return aggregate.SummarizeScreenTime(from, to, entries), nil
}
