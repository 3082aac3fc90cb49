package company

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"kyc-backend/internal/files"
)

func TestPGRepoGetByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, user_id, created_at, updated_at").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
			AddRow("rec-1", "user-1", now, now))

	mock.ExpectQuery("SELECT slot, field_value, option, raw_text, file_id").
		WithArgs("rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"slot", "field_value", "option", "raw_text", "file_id"}).
			AddRow("intendedCompanyName", "Acme Pte Ltd", nil, "raw text", "file-1").
			AddRow("constitution", "model constitution", int64(2), "raw constitution", "file-2"))

	rec, err := repo.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if rec.ID != "rec-1" || len(rec.Slots) != 2 {
		t.Fatalf("unexpected record %+v", rec)
	}

	name := rec.Slots[SlotIntendedCompanyName]
	if name.Value != "Acme Pte Ltd" || name.FileID != files.FileID("file-1") || name.Option != 0 {
		t.Fatalf("unexpected name slot %+v", name)
	}
	cons := rec.Slots[SlotConstitution]
	if cons.Option != 2 {
		t.Fatalf("expected option 2, got %d", cons.Option)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id, user_id, created_at, updated_at").
		WithArgs("user-x").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}))

	_, err = repo.GetByUser(context.Background(), "user-x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpsertReplacesSlots(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rec := Record{
		ID:     "rec-1",
		UserID: "user-1",
		Slots: map[Slot]SlotValue{
			SlotCompanyActivities: {Value: "retail trade", Text: "raw", FileID: "file-1"},
			SlotConstitution:      {Value: "model constitution", Option: 2, Text: "raw c", FileID: "file-2"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO company_records").
		WithArgs("rec-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("rec-1", now, now))
	mock.ExpectExec("DELETE FROM company_slots").
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Slots are written in declaration order: companyActivities first.
	mock.ExpectExec("INSERT INTO company_slots").
		WithArgs("rec-1", "companyActivities", "retail trade", nil, "raw", "file-1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO company_slots").
		WithArgs("rec-1", "constitution", "model constitution", int64(2), "raw c", "file-2").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	got, err := repo.Upsert(context.Background(), rec)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps from the database")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
