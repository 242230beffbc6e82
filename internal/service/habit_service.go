package service

import (
	"alcyxob/lifelog-app/internal/aggregate"
	"alcyxob/lifelog-app/internal/domain"
	"alcyxob/lifelog-app/internal/metrics"
	"alcyxob/lifelog-app/internal/repository"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// HabitWithStats pairs a habit with its streak statistics as of today.
type HabitWithStats struct {
	Habit domain.Habit
	Stats aggregate.HabitStats
}

type HabitService interface {
	CreateHabit(ctx context.Context, userID string, habit domain.Habit) (*domain.Habit, error)
	GetHabit(ctx context.Context, userID, habitID string) (*HabitWithStats, error)
	ListHabits(ctx context.Context, userID string, includeArchived bool) ([]HabitWithStats, error)
	UpdateHabit(ctx context.Context, userID, habitID string, patch domain.HabitPatch) (*domain.Habit, error)
	// DeleteHabit removes the habit together with all of its entries.
	DeleteHabit(ctx context.Context, userID, habitID string) error
	// HabitStats computes streak statistics relative to the given day.
	HabitStats(ctx context.Context, userID, habitID, today string) (aggregate.HabitStats, error)

	ListEntries(ctx context.Context, userID, habitID string) ([]domain.HabitEntry, error)
	CreateEntry(ctx context.Context, userID, habitID string, entry domain.HabitEntry) (*domain.HabitEntry, error)
	UpdateEntry(ctx context.Context, userID, habitID, entryID string, patch domain.HabitEntryPatch) (*domain.HabitEntry, error)
	DeleteEntry(ctx context.Context, userID, habitID, entryID string) error
}

type habitService struct {
	habitRepo repository.HabitRepository
	entryRepo repository.HabitEntryRepository
	calendar  Calendar
	metrics   *metrics.Manager
}

func NewHabitService(
	habitRepo repository.HabitRepository,
	entryRepo repository.HabitEntryRepository,
	calendar Calendar,
	m *metrics.Manager,
) HabitService {
	return &habitService{
		habitRepo: habitRepo,
		entryRepo: entryRepo,
		calendar:  calendar,
		metrics:   m,
	}
}

func (s *habitService) CreateHabit(ctx context.Context, userID string, habit domain.Habit) (*domain.Habit, error) {
	habit.UserID = userID
	habit.Archived = false
	if err := habit.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.habitRepo.Create(ctx, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (s *habitService) GetHabit(ctx context.Context, userID, habitID string) (*HabitWithStats, error) {
	habit, err := s.habit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats(ctx, userID, habitID, s.calendar.Today())
	if err != nil {
		return nil, err
	}
	return &HabitWithStats{Habit: *habit, Stats: stats}, nil
}

func (s *habitService) ListHabits(ctx context.Context, userID string, includeArchived bool) ([]HabitWithStats, error) {
	habits, err := s.habitRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.calendar.Today()
	out := make([]HabitWithStats, 0, len(habits))
	for _, h := range habits {
		if h.Archived && !includeArchived {
			continue
		}
		stats, err := s.stats(ctx, userID, h.ID, today)
		if err != nil {
			return nil, err
		}
		out = append(out, HabitWithStats{Habit: h, Stats: stats})
	}
	return out, nil
}

func (s *habitService) UpdateHabit(ctx context.Context, userID, habitID string, patch domain.HabitPatch) (*domain.Habit, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	habit, err := s.habit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	patch.Apply(habit)
	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, mapNotFound(err, ErrHabitNotFound)
	}
	return habit, nil
}

func (s *habitService) DeleteHabit(ctx context.Context, userID, habitID string) error {
	if err := s.habitRepo.Delete(ctx, userID, habitID); err != nil {
		return mapNotFound(err, ErrHabitNotFound)
	}
	removed, err := s.entryRepo.DeleteByHabit(ctx, userID, habitID)
	if err != nil {
		logrus.WithError(err).WithField("habit", habitID).Error("failed to delete entries of removed habit")
		return err
	}
	logrus.WithFields(logrus.Fields{"habit": habitID, "entries": removed}).Debug("habit deleted")
	return nil
}

func (s *habitService) HabitStats(ctx context.Context, userID, habitID, today string) (aggregate.HabitStats, error) {
	if today == "" {
		today = s.calendar.Today()
	}
	if !domain.IsValidDay(today) {
		return aggregate.HabitStats{}, fmt.Errorf("%w: today must be a YYYY-MM-DD date", ErrValidationFailed)
	}
	if _, err := s.habit(ctx, userID, habitID); err != nil {
		return aggregate.HabitStats{}, err
	}
	return s.stats(ctx, userID, habitID, today)
}

func (s *habitService) stats(ctx context.Context, userID, habitID, today string) (aggregate.HabitStats, error) {
	entries, err := s.entryRepo.ListByHabit(ctx, userID, habitID)
	if err != nil {
		return aggregate.HabitStats{}, err
	}
	s.metrics.Aggregated(metrics.AggHabitStreak)
	return aggregate.HabitStreak(entries, today), nil
}

func (s *habitService) ListEntries(ctx context.Context, userID, habitID string) ([]domain.HabitEntry, error) {
	if _, err := s.habit(ctx, userID, habitID); err != nil {
		return nil, err
	}
	return s.entryRepo.ListByHabit(ctx, userID, habitID)
}

func (s *habitService) CreateEntry(ctx context.Context, userID, habitID string, entry domain.HabitEntry) (*domain.HabitEntry, error) {
	if _, err := s.habit(ctx, userID, habitID); err != nil {
		return nil, err
	}
	entry.UserID = userID
	entry.HabitID = habitID
	if entry.Date == "" {
		entry.Date = s.calendar.Today()
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.entryRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *habitService) UpdateEntry(ctx context.Context, userID, habitID, entryID string, patch domain.HabitEntryPatch) (*domain.HabitEntry, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	entry, err := s.entry(ctx, userID, habitID, entryID)
	if err != nil {
		return nil, err
	}
	patch.Apply(entry)
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, mapNotFound(err, ErrHabitEntryNotFound)
	}
	return entry, nil
}

func (s *habitService) DeleteEntry(ctx context.Context, userID, habitID, entryID string) error {
	if _, err := s.entry(ctx, userID, habitID, entryID); err != nil {
		return err
	}
	return mapNotFound(s.entryRepo.Delete(ctx, userID, entryID), ErrHabitEntryNotFound)
}

func (s *habitService) habit(ctx context.Context, userID, habitID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, userID, habitID)
	if err != nil {
		return nil, mapNotFound(err, ErrHabitNotFound)
	}
	return habit, nil
}

// entry loads an entry and checks it belongs to habitID.
func (s *habitService) entry(ctx context.Context, userID, habitID, entryID string) (*domain.HabitEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, mapNotFound(err, ErrHabitEntryNotFound)
	}
	if entry.HabitID != habitID {
		return nil, ErrHabitEntryNotFound
	}
	return entry, nil
}
