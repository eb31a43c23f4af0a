package summarize

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"medium-digest/internal/domain/entity"
)

type stubResolver struct {
	account *entity.Account
	err     error
}

func (s *stubResolver) Resolve(ctx context.Context) (*entity.Account, error) {
	return s.account, s.err
}

type stubAccounts struct {
	remaining int
	err       error
}

func (s *stubAccounts) GetOrCreate(ctx context.Context, email string) (*entity.Account, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAccounts) AddUses(ctx context.Context, accountID int64, n int) (int, error) {
	return 0, errors.New("not implemented")
}

func (s *stubAccounts) Remaining(ctx context.Context, accountID int64) (int, error) {
	return s.remaining, s.err
}

type stubFetcher struct {
	text string
	err  error
}

func (s *stubFetcher) FetchContent(ctx context.Context, url string) (string, error) {
	return s.text, s.err
}

type stubSummarizer struct {
	summary string
	err     error
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.summary, s.err
}

// stubSummaryRepo counts CreateConsumingQuota calls against a seeded quota
// so concurrent callers can race for the last use.
type stubSummaryRepo struct {
	quota  int64
	nextID int64
	err    error
}

func (s *stubSummaryRepo) CreateConsumingQuota(ctx context.Context, record *entity.SummaryRecord) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	remaining := atomic.AddInt64(&s.quota, -1)
	if remaining < 0 {
		return 0, entity.ErrQuotaExhausted
	}
	record.ID = atomic.AddInt64(&s.nextID, 1)
	return int(remaining), nil
}

func (s *stubSummaryRepo) Create(ctx context.Context, record *entity.SummaryRecord) error {
	return errors.New("not implemented")
}

func (s *stubSummaryRepo) List(ctx context.Context) ([]*entity.SummaryRecord, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSummaryRepo) ListByAccount(ctx context.Context, accountID int64) ([]*entity.SummaryRecord, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSummaryRepo) Delete(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func testWorkflow() *Workflow {
	return &Workflow{
		Resolver:   &stubResolver{account: &entity.Account{ID: 1, RemainingUses: 5}},
		Accounts:   &stubAccounts{remaining: 5},
		Fetcher:    &stubFetcher{text: "long enough extracted article body text"},
		Summarizer: &stubSummarizer{summary: "- first point\n- second point"},
		Repo:       &stubSummaryRepo{quota: 5},
	}
}

func TestWorkflow_Run_Success(t *testing.T) {
	w := testWorkflow()

	result, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.NoError(t, err)
	assert.Equal(t, "- first point\n- second point", result.Record.SummaryText)
	assert.Equal(t, "https://medium.com/@a/post", result.Record.URL)
	assert.Equal(t, 4, result.RemainingUses)
	require.NotNil(t, result.Record.AccountID)
	assert.Equal(t, int64(1), *result.Record.AccountID)
	assert.NotZero(t, result.Record.ID)
}

func TestWorkflow_Run_SetsCreationTime(t *testing.T) {
	w := testWorkflow()
	before := time.Now().UTC()

	result, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.NoError(t, err)
	require.False(t, result.Record.CreatedAt.IsZero())
	assert.False(t, result.Record.CreatedAt.Before(before))
	assert.False(t, result.Record.CreatedAt.After(time.Now().UTC()))
}

func TestWorkflow_Run_OriginalLengthCountsRunes(t *testing.T) {
	w := testWorkflow()
	// Multi-byte text: the stored length is in runes, not bytes.
	const body = "güneş doğarken şehir hâlâ uykudaydı diyordu yazar burada"
	w.Fetcher = &stubFetcher{text: body}

	result, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.NoError(t, err)
	assert.Equal(t, utf8.RuneCountInString(body), result.Record.OriginalTextLength)
	assert.Less(t, result.Record.OriginalTextLength, len(body))
}

func TestWorkflow_Run_InvalidURL(t *testing.T) {
	w := testWorkflow()

	_, err := w.Run(context.Background(), "https://example.com/not-medium")

	require.ErrorIs(t, err, ErrInvalidURL)
	assert.Equal(t, StageValidating, FailureStage(err))
}

func TestWorkflow_Run_QuotaExhaustedPreCheck(t *testing.T) {
	w := testWorkflow()
	w.Accounts = &stubAccounts{remaining: 0}
	w.Fetcher = &stubFetcher{err: errors.New("fetch must not run")}

	_, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, StageQuotaChecking, FailureStage(err))
}

func TestWorkflow_Run_ResolveFails(t *testing.T) {
	w := testWorkflow()
	w.Resolver = &stubResolver{err: errors.New("db down")}

	_, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.ErrorIs(t, err, ErrPersistenceFailed)
}

func TestWorkflow_Run_FetchFails(t *testing.T) {
	w := testWorkflow()
	w.Fetcher = &stubFetcher{err: errors.New("404 from host")}

	_, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, StageFetching, FailureStage(err))
}

func TestWorkflow_Run_SummarizeFails(t *testing.T) {
	w := testWorkflow()
	w.Summarizer = &stubSummarizer{err: errors.New("llm unavailable")}

	_, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.ErrorIs(t, err, ErrSummarizationFailed)
	assert.Equal(t, StageSummarizing, FailureStage(err))
}

func TestWorkflow_Run_PersistFails(t *testing.T) {
	w := testWorkflow()
	w.Repo = &stubSummaryRepo{err: errors.New("connection reset")}

	_, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.ErrorIs(t, err, ErrPersistenceFailed)
	assert.Equal(t, StagePersisting, FailureStage(err))
}

func TestWorkflow_Run_QuotaRaceAtCommit(t *testing.T) {
	// The advisory pre-check reads a stale positive value; the transaction
	// itself rejects the decrement.
	w := testWorkflow()
	w.Repo = &stubSummaryRepo{quota: 0}

	_, err := w.Run(context.Background(), "https://medium.com/@a/post")

	require.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestWorkflow_Run_ConcurrentLastUse(t *testing.T) {
	// Ten concurrent requests race for three remaining uses. Exactly three
	// succeed; the rest fail with the quota error and nothing else.
	w := testWorkflow()
	repo := &stubSummaryRepo{quota: 3}
	w.Repo = repo

	var succeeded, exhausted int64
	g := new(errgroup.Group)
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := w.Run(context.Background(), "https://medium.com/@a/post")
			switch {
			case err == nil:
				atomic.AddInt64(&succeeded, 1)
			case errors.Is(err, ErrQuotaExhausted):
				atomic.AddInt64(&exhausted, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(3), atomic.LoadInt64(&succeeded))
	assert.Equal(t, int64(7), atomic.LoadInt64(&exhausted))
}

func TestFailureStage_UnknownError(t *testing.T) {
	assert.Equal(t, StagePersisting, FailureStage(errors.New("mystery")))
}
