package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"medium-digest/internal/domain/entity"
	pg "medium-digest/internal/infra/adapter/persistence/postgres"
)

func accountRow(a *entity.Account) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "remaining_uses", "created_at",
	}).AddRow(a.ID, a.Email, a.PasswordHash, a.RemainingUses, a.CreatedAt)
}

func TestAccountRepo_GetOrCreate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Account{
		ID: 1, Email: "demo@medium-digest.local",
		RemainingUses: entity.DefaultFreeUses, CreatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts")).
		WithArgs(want.Email, entity.DefaultFreeUses).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email")).
		WithArgs(want.Email).
		WillReturnRows(accountRow(want))

	repo := pg.NewAccountRepo(db)
	got, err := repo.GetOrCreate(context.Background(), want.Email)
	if err != nil {
		t.Fatalf("GetOrCreate err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAccountRepo_GetOrCreate_ExistingRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// ON CONFLICT DO NOTHING matches zero rows for an existing email.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts")).
		WithArgs("demo@medium-digest.local", entity.DefaultFreeUses).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email")).
		WithArgs("demo@medium-digest.local").
		WillReturnRows(accountRow(&entity.Account{
			ID: 7, Email: "demo@medium-digest.local",
			RemainingUses: 3, CreatedAt: time.Now(),
		}))

	repo := pg.NewAccountRepo(db)
	got, err := repo.GetOrCreate(context.Background(), "demo@medium-digest.local")
	if err != nil {
		t.Fatalf("GetOrCreate err=%v", err)
	}
	if got.ID != 7 || got.RemainingUses != 3 {
		t.Fatalf("got id=%d remaining=%d, want id=7 remaining=3", got.ID, got.RemainingUses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAccountRepo_AddUses(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WithArgs(entity.SubscriptionGrant, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_uses"}).AddRow(53))

	repo := pg.NewAccountRepo(db)
	remaining, err := repo.AddUses(context.Background(), 1, entity.SubscriptionGrant)
	if err != nil {
		t.Fatalf("AddUses err=%v", err)
	}
	if remaining != 53 {
		t.Fatalf("remaining=%d, want 53", remaining)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAccountRepo_AddUses_UnknownAccount(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts")).
		WithArgs(50, int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_uses"}))

	repo := pg.NewAccountRepo(db)
	if _, err := repo.AddUses(context.Background(), 99, 50); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want entity.ErrNotFound", err)
	}
}

func TestAccountRepo_Remaining(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT remaining_uses")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_uses"}).AddRow(4))

	repo := pg.NewAccountRepo(db)
	remaining, err := repo.Remaining(context.Background(), 1)
	if err != nil {
		t.Fatalf("Remaining err=%v", err)
	}
	if remaining != 4 {
		t.Fatalf("remaining=%d, want 4", remaining)
	}
}

func TestAccountRepo_Remaining_UnknownAccount(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT remaining_uses")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_uses"}))

	repo := pg.NewAccountRepo(db)
	if _, err := repo.Remaining(context.Background(), 42); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err=%v, want entity.ErrNotFound", err)
	}
}
