package files

import "context"

// ErrNotFound is returned when no FileRecord matches the given ID.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "file not found" }

// Repo defines persistence operations for file records.
type Repo interface {
	Create(ctx context.Context, rec FileRecord) error
	GetByID(ctx context.Context, id FileID) (FileRecord, error)
	GetByIDs(ctx context.Context, ids []FileID) (map[FileID]FileRecord, error)
}
