package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"medium-digest/internal/domain/entity"
	pg "medium-digest/internal/infra/adapter/persistence/postgres"
)

func summaryRow(r *entity.SummaryRecord) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "account_id", "url", "original_text_length", "summary_text", "created_at",
	}).AddRow(r.ID, *r.AccountID, r.URL, r.OriginalTextLength, r.SummaryText, r.CreatedAt)
}

func newRecord(accountID int64) *entity.SummaryRecord {
	return &entity.SummaryRecord{
		AccountID:          &accountID,
		URL:                "https://medium.com/@a/post",
		OriginalTextLength: 1200,
		SummaryText:        "- point one\n- point two",
		CreatedAt:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSummaryRepo_CreateConsumingQuota(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	record := newRecord(1)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_uses"}).AddRow(9))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO summaries")).
		WithArgs(int64(1), record.URL, record.OriginalTextLength,
			record.SummaryText, record.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectCommit()

	repo := pg.NewSummaryRepo(db)
	remaining, err := repo.CreateConsumingQuota(context.Background(), record)
	if err != nil {
		t.Fatalf("CreateConsumingQuota err=%v", err)
	}
	if remaining != 9 {
		t.Fatalf("remaining=%d, want 9", remaining)
	}
	if record.ID != 5 {
		t.Fatalf("record.ID=%d, want 5", record.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_CreateConsumingQuota_Exhausted(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// The conditional decrement matches zero rows at zero remaining uses,
	// so no INSERT runs and the transaction rolls back.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_uses"}))
	mock.ExpectRollback()

	repo := pg.NewSummaryRepo(db)
	_, err := repo.CreateConsumingQuota(context.Background(), newRecord(1))
	if !errors.Is(err, entity.ErrQuotaExhausted) {
		t.Fatalf("err=%v, want entity.ErrQuotaExhausted", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_CreateConsumingQuota_InsertFails(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	record := newRecord(1)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_uses"}).AddRow(9))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO summaries")).
		WithArgs(int64(1), record.URL, record.OriginalTextLength,
			record.SummaryText, record.CreatedAt).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := pg.NewSummaryRepo(db)
	if _, err := repo.CreateConsumingQuota(context.Background(), record); err == nil {
		t.Fatal("CreateConsumingQuota = nil, want error")
	}
	// The rollback must undo the decrement so the quota is not consumed.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_CreateConsumingQuota_NilAccount(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := pg.NewSummaryRepo(db)
	record := newRecord(1)
	record.AccountID = nil
	if _, err := repo.CreateConsumingQuota(context.Background(), record); err == nil {
		t.Fatal("CreateConsumingQuota = nil, want error for nil account")
	}
}

func TestSummaryRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	record := newRecord(1)
	record.AccountID = nil

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO summaries")).
		WithArgs(nil, record.URL, record.OriginalTextLength,
			record.SummaryText, record.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	repo := pg.NewSummaryRepo(db)
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if record.ID != 11 {
		t.Fatalf("record.ID=%d, want 11", record.ID)
	}
}

func TestSummaryRepo_List_AllAccounts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	first := newRecord(1)
	first.ID = 4
	second := newRecord(2)
	second.ID = 3

	rows := summaryRow(first)
	rows.AddRow(second.ID, *second.AccountID, second.URL,
		second.OriginalTextLength, second.SummaryText, second.CreatedAt)

	mock.ExpectQuery("FROM summaries").WillReturnRows(rows)

	repo := pg.NewSummaryRepo(db)
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if *got[0].AccountID != 1 || *got[1].AccountID != 2 {
		t.Fatalf("records not returned across accounts: %+v", got)
	}
}

func TestSummaryRepo_ListByAccount(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	record := newRecord(1)
	record.ID = 3

	mock.ExpectQuery("FROM summaries").
		WithArgs(int64(1)).
		WillReturnRows(summaryRow(record))

	repo := pg.NewSummaryRepo(db)
	got, err := repo.ListByAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByAccount err=%v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("got %d records, first=%+v", len(got), got)
	}
}

func TestSummaryRepo_ListByAccount_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM summaries").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "account_id", "url", "original_text_length", "summary_text", "created_at",
		}))

	repo := pg.NewSummaryRepo(db)
	got, err := repo.ListByAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByAccount err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
}

func TestSummaryRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM summaries")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewSummaryRepo(db)
	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
}

func TestSummaryRepo_Delete_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM summaries")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewSummaryRepo(db)
	if err := repo.Delete(context.Background(), 404); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want entity.ErrNotFound", err)
	}
}
