package company

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byUser: make(map[string]Record),
	}
}

// GetByUser returns the record owned by userID.
func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byUser[userID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// Upsert stores the record, keeping the original creation time on update.
func (r *MemoryRepo) Upsert(ctx context.Context, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.byUser[rec.UserID]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	r.byUser[rec.UserID] = cloneRecord(rec)
	return rec, nil
}

func cloneRecord(rec Record) Record {
	out := rec
	out.Slots = make(map[Slot]SlotValue, len(rec.Slots))
	for k, v := range rec.Slots {
		out.Slots[k] = v
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
