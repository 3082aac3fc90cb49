package files

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[FileID]FileRecord
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[FileID]FileRecord),
	}
}

// Create stores a file record.
func (r *MemoryRepo) Create(ctx context.Context, rec FileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.ID] = rec
	return nil
}

// GetByID returns a file record by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id FileID) (FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return FileRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok {
		return FileRecord{}, ErrNotFound
	}
	return rec, nil
}

// GetByIDs returns the records that exist for the given IDs.
func (r *MemoryRepo) GetByIDs(ctx context.Context, ids []FileID) (map[FileID]FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[FileID]FileRecord, len(ids))
	for _, id := range ids {
		if rec, ok := r.data[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
