package account

import (
	"context"
	"errors"
	"testing"

	"medium-digest/internal/domain/entity"
)

type recordingAccountRepo struct {
	lastEmail string
	account   *entity.Account
	err       error
}

func (r *recordingAccountRepo) GetOrCreate(ctx context.Context, email string) (*entity.Account, error) {
	r.lastEmail = email
	return r.account, r.err
}

func (r *recordingAccountRepo) AddUses(ctx context.Context, accountID int64, n int) (int, error) {
	return 0, errors.New("not implemented")
}

func (r *recordingAccountRepo) Remaining(ctx context.Context, accountID int64) (int, error) {
	return 0, errors.New("not implemented")
}

func TestMockResolver_Resolve(t *testing.T) {
	repo := &recordingAccountRepo{
		account: &entity.Account{ID: 1, Email: "custom@example.com", RemainingUses: entity.DefaultFreeUses},
	}
	resolver := &MockResolver{Repo: repo, Email: "custom@example.com"}

	acct, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve err=%v", err)
	}
	if repo.lastEmail != "custom@example.com" {
		t.Fatalf("lastEmail=%q", repo.lastEmail)
	}
	if acct.ID != 1 {
		t.Fatalf("acct=%+v", acct)
	}
}

func TestMockResolver_RepoError(t *testing.T) {
	repo := &recordingAccountRepo{err: errors.New("db down")}
	resolver := &MockResolver{Repo: repo, Email: DefaultMockEmail}

	if _, err := resolver.Resolve(context.Background()); err == nil {
		t.Fatal("Resolve = nil, want error")
	}
}

func TestNewMockResolver_EmailFromEnv(t *testing.T) {
	t.Setenv("MOCK_ACCOUNT_EMAIL", "ops@example.com")

	resolver := NewMockResolver(&recordingAccountRepo{})
	if resolver.Email != "ops@example.com" {
		t.Fatalf("Email=%q", resolver.Email)
	}
}

func TestNewMockResolver_DefaultEmail(t *testing.T) {
	t.Setenv("MOCK_ACCOUNT_EMAIL", "")

	resolver := NewMockResolver(&recordingAccountRepo{})
	if resolver.Email != DefaultMockEmail {
		t.Fatalf("Email=%q, want %q", resolver.Email, DefaultMockEmail)
	}
}
