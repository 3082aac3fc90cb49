package company

import "context"

// Repo defines persistence for company records. Upsert replaces the record's
// slots wholesale; the merge policy runs in the service before persistence.
type Repo interface {
	GetByUser(ctx context.Context, userID string) (Record, error)
	Upsert(ctx context.Context, rec Record) (Record, error)
}
