package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kyc-backend/internal/files"
)

// PGRepo implements Repo using Postgres. A record is one row in
// company_records plus one row per populated slot in company_slots.
type PGRepo struct {
	DB *sql.DB
}

// GetByUser returns the record owned by userID.
func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Record, error) {
	const query = `
SELECT id, user_id, created_at, updated_at
FROM company_records
WHERE user_id = $1
LIMIT 1`
	var rec Record
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	slots, err := r.loadSlots(ctx, rec.ID)
	if err != nil {
		return Record{}, err
	}
	rec.Slots = slots
	return rec, nil
}

func (r *PGRepo) loadSlots(ctx context.Context, recordID string) (map[Slot]SlotValue, error) {
	const query = `
SELECT slot, field_value, option, raw_text, file_id
FROM company_slots
WHERE record_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make(map[Slot]SlotValue)
	for rows.Next() {
		var name string
		var sv SlotValue
		var option sql.NullInt64
		var fileID sql.NullString
		if err := rows.Scan(&name, &sv.Value, &option, &sv.Text, &fileID); err != nil {
			return nil, err
		}
		if option.Valid {
			sv.Option = ConstitutionOption(option.Int64)
		}
		if fileID.Valid {
			sv.FileID = files.FileID(fileID.String)
		}
		slots[Slot(name)] = sv
	}
	return slots, rows.Err()
}

// Upsert writes the record and its slots in a single transaction: the record
// row is inserted or touched, then the slot rows are replaced wholesale.
func (r *PGRepo) Upsert(ctx context.Context, rec Record) (Record, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	const upsertRecord = `
INSERT INTO company_records (id, user_id, created_at, updated_at)
VALUES ($1, $2, now(), now())
ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
RETURNING id, created_at, updated_at`
	err = tx.QueryRowContext(ctx, upsertRecord, rec.ID, rec.UserID).Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("upsert record: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM company_slots WHERE record_id = $1`, rec.ID); err != nil {
		return Record{}, fmt.Errorf("clear slots: %w", err)
	}

	const insertSlot = `
INSERT INTO company_slots (record_id, slot, field_value, option, raw_text, file_id)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, slot := range AllSlots {
		sv, ok := rec.Slots[slot]
		if !ok {
			continue
		}
		var option sql.NullInt64
		if sv.Option != 0 {
			option = sql.NullInt64{Int64: int64(sv.Option), Valid: true}
		}
		var fileID sql.NullString
		if sv.FileID != "" {
			fileID = sql.NullString{String: string(sv.FileID), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertSlot, rec.ID, string(slot), sv.Value, option, sv.Text, fileID); err != nil {
			return Record{}, fmt.Errorf("insert slot %s: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit upsert: %w", err)
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
