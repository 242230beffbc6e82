// Package memory is the process-local repository backend. Records live in
// maps guarded by a RWMutex and are copied on the way in and out, so callers
// always work on a private snapshot.
package memory

import (
	"alcyxob/lifelog-app/internal/repository"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fields exposes the bookkeeping fields every record carries.
type fields struct {
	ID        *string
	UserID    string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

type table[T any] struct {
	mu     sync.RWMutex
	rows   map[string]T
	fields func(*T) fields
	clone  func(T) T
}

func newTable[T any](f func(*T) fields, clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{rows: make(map[string]T), fields: f, clone: clone}
}

// Create stamps a fresh id and timestamps on rec and stores a copy.
func (t *table[T]) Create(ctx context.Context, rec *T) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f := t.fields(rec)
	if f.UserID == "" {
		return "", errors.New("record requires a user id")
	}
	now := time.Now().UTC()
	*f.ID = uuid.NewString()
	*f.CreatedAt = now
	*f.UpdatedAt = now

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[*f.ID] = t.clone(*rec)
	return *f.ID, nil
}

func (t *table[T]) GetByID(ctx context.Context, userID, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok || t.fields(&row).UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := t.clone(row)
	return &out, nil
}

// Update replaces a stored record. Ownership and CreatedAt are kept from the
// stored copy.
func (t *table[T]) Update(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := t.fields(rec)
	if *f.ID == "" {
		return repository.ErrInvalidID
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	existing, ok := t.rows[*f.ID]
	if !ok {
		return repository.ErrNotFound
	}
	ef := t.fields(&existing)
	if ef.UserID != f.UserID {
		return repository.ErrNotFound
	}
	*f.CreatedAt = *ef.CreatedAt
	*f.UpdatedAt = time.Now().UTC()
	t.rows[*f.ID] = t.clone(*rec)
	return nil
}

func (t *table[T]) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok || t.fields(&row).UserID != userID {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// list returns copies of the user's rows accepted by match, sorted by cmp.
func (t *table[T]) list(ctx context.Context, userID string, match func(*T) bool, cmp func(a, b T) int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	out := make([]T, 0)
	for _, row := range t.rows {
		if t.fields(&row).UserID != userID {
			continue
		}
		if match != nil && !match(&row) {
			continue
		}
		out = append(out, t.clone(row))
	}
	t.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b T) int {
		if c := cmp(a, b); c != 0 {
			return c
		}
		return compareStrings(*t.fields(&a).ID, *t.fields(&b).ID)
	})
	return out, nil
}

func (t *table[T]) removeWhere(ctx context.Context, userID string, match func(*T) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for id, row := range t.rows {
		if t.fields(&row).UserID == userID && match(&row) {
			delete(t.rows, id)
			removed++
		}
	}
	return removed, nil
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func byCreated(a, b time.Time) int {
	return a.Compare(b)
}

func inRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
