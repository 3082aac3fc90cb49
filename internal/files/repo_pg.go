package files

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new file record.
func (r *PGRepo) Create(ctx context.Context, rec FileRecord) error {
	const query = `
INSERT INTO files (id, file_name, file_url, file_type, upload_date)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		string(rec.ID),
		rec.FileName,
		rec.FileURL,
		rec.FileType,
		rec.UploadDate,
	)
	return err
}

// GetByID fetches a file record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id FileID) (FileRecord, error) {
	const query = `
SELECT id, file_name, file_url, file_type, upload_date
FROM files
WHERE id = $1
LIMIT 1`
	var rec FileRecord
	var rawID string
	err := r.DB.QueryRowContext(ctx, query, string(id)).Scan(
		&rawID,
		&rec.FileName,
		&rec.FileURL,
		&rec.FileType,
		&rec.UploadDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FileRecord{}, ErrNotFound
		}
		return FileRecord{}, err
	}
	rec.ID = FileID(rawID)
	return rec, nil
}

// GetByIDs fetches multiple file records keyed by ID. Missing IDs are simply
// absent from the result.
func (r *PGRepo) GetByIDs(ctx context.Context, ids []FileID) (map[FileID]FileRecord, error) {
	out := make(map[FileID]FileRecord, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	const query = `
SELECT id, file_name, file_url, file_type, upload_date
FROM files
WHERE id = ANY($1)`
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}

	rows, err := r.DB.QueryContext(ctx, query, raw)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec FileRecord
		var rawID string
		if err := rows.Scan(&rawID, &rec.FileName, &rec.FileURL, &rec.FileType, &rec.UploadDate); err != nil {
			return nil, err
		}
		rec.ID = FileID(rawID)
		out[rec.ID] = rec
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
