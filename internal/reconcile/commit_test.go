package reconcile_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/reconcile"
)

var commitTarget = reconcile.CommitTarget{UserID: "u1", WatchlistID: "w1"}

func fixedClock() time.Time { return planNow }

func TestCommitter_Commit(t *testing.T) {
	t.Run("applies every write and reports success", func(t *testing.T) {
		store := newMemoryStore(model.Holding{ID: "h1", Code: "BHP", PortfolioShares: "10"})
		c := reconcile.NewCommitter(store, reconcile.WithClock(fixedClock))

		summary, err := c.Commit(context.Background(), commitTarget,
			[]model.MatchedUpdate{{HoldingID: "h1", Record: model.ParsedRecord{Code: "BHP", Quantity: 50, Price: f64(45.2)}}},
			[]model.NewHoldingCandidate{{NormalizedCode: "WES", Record: model.ParsedRecord{Code: "WES", Quantity: 3}, IsNew: true}},
		)

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Attempted)
		assert.Equal(t, 2, summary.Succeeded)
		assert.Equal(t, model.CommitStatusSucceeded, summary.Status())
		assert.Empty(t, summary.Failed())

		holdings := store.GetAllHoldings()
		require.Len(t, holdings, 2)
		assert.Equal(t, "50", holdings[0].PortfolioShares)
		assert.Equal(t, 45.2, holdings[0].PortfolioAvgPrice)
		assert.Equal(t, "WES", holdings[1].Code)
		assert.Equal(t, "w1", holdings[1].WatchlistID)
	})

	t.Run("aggregates a failed creation without rolling back the rest", func(t *testing.T) {
		store := newMemoryStore(
			model.Holding{ID: "h1", Code: "BHP"},
			model.Holding{ID: "h2", Code: "CBA"},
			model.Holding{ID: "h3", Code: "NAB"},
		)
		store.failCreate["ANZ"] = true
		c := reconcile.NewCommitter(store, reconcile.WithClock(fixedClock))

		matches := []model.MatchedUpdate{
			{HoldingID: "h1", Record: model.ParsedRecord{Code: "BHP", Quantity: 1}},
			{HoldingID: "h2", Record: model.ParsedRecord{Code: "CBA", Quantity: 2}},
			{HoldingID: "h3", Record: model.ParsedRecord{Code: "NAB", Quantity: 3}},
		}
		newHoldings := []model.NewHoldingCandidate{
			{NormalizedCode: "WES", Record: model.ParsedRecord{Code: "WES", Quantity: 4}},
			{NormalizedCode: "ANZ", Record: model.ParsedRecord{Code: "ANZ", Quantity: 5}},
		}

		summary, err := c.Commit(context.Background(), commitTarget, matches, newHoldings)

		require.Error(t, err)
		assert.ErrorIs(t, err, errStoreUnavailable)
		assert.Equal(t, 5, summary.Attempted)
		assert.Equal(t, 4, summary.Succeeded)
		assert.Equal(t, model.CommitStatusPartial, summary.Status())
		require.Len(t, summary.Failed(), 1)
		assert.Equal(t, "ANZ", summary.Failed()[0].Code)
		assert.Equal(t, model.CommitOperationCreate, summary.Failed()[0].Operation)

		holdings := store.GetAllHoldings()
		require.Len(t, holdings, 4)
		assert.Equal(t, "1", holdings[0].PortfolioShares)
		assert.Equal(t, "2", holdings[1].PortfolioShares)
		assert.Equal(t, "3", holdings[2].PortfolioShares)
		assert.Equal(t, "WES", holdings[3].Code)
	})

	t.Run("first error follows input order", func(t *testing.T) {
		store := newMemoryStore(model.Holding{ID: "h1", Code: "BHP"}, model.Holding{ID: "h2", Code: "CBA"})
		store.failUpdate["h2"] = true
		store.failCreate["WES"] = true
		c := reconcile.NewCommitter(store)

		summary, err := c.Commit(context.Background(), commitTarget,
			[]model.MatchedUpdate{
				{HoldingID: "h1", Record: model.ParsedRecord{Code: "BHP", Quantity: 1}},
				{HoldingID: "h2", Record: model.ParsedRecord{Code: "CBA", Quantity: 1}},
			},
			[]model.NewHoldingCandidate{{NormalizedCode: "WES", Record: model.ParsedRecord{Code: "WES", Quantity: 1}}},
		)

		require.Error(t, err)
		assert.Contains(t, summary.FirstError.Error(), "update h2")
		assert.Equal(t, 1, summary.Succeeded)
		assert.Len(t, summary.Failed(), 2)
	})

	t.Run("reports total failure", func(t *testing.T) {
		store := newMemoryStore()
		store.failCreate["WES"] = true
		c := reconcile.NewCommitter(store)

		summary, err := c.Commit(context.Background(), commitTarget, nil,
			[]model.NewHoldingCandidate{{NormalizedCode: "WES", Record: model.ParsedRecord{Code: "WES", Quantity: 1}}})

		require.Error(t, err)
		assert.Equal(t, model.CommitStatusFailed, summary.Status())
	})

	t.Run("rejects a missing user before writing", func(t *testing.T) {
		store := newMemoryStore(model.Holding{ID: "h1", Code: "BHP"})
		c := reconcile.NewCommitter(store)

		summary, err := c.Commit(context.Background(), reconcile.CommitTarget{WatchlistID: "w1"},
			[]model.MatchedUpdate{{HoldingID: "h1", Record: model.ParsedRecord{Code: "BHP", Quantity: 9}}}, nil)

		assert.ErrorIs(t, err, apperrors.ErrNoAuthenticatedUser)
		assert.Zero(t, summary.Attempted)
		assert.Equal(t, model.CommitStatusNotAttempted, summary.Status())
		assert.Empty(t, store.patches)
	})

	t.Run("rejects a missing holdings list before writing", func(t *testing.T) {
		c := reconcile.NewCommitter(newMemoryStore())

		summary, err := c.Commit(context.Background(), reconcile.CommitTarget{UserID: "u1"}, nil,
			[]model.NewHoldingCandidate{{NormalizedCode: "WES", Record: model.ParsedRecord{Code: "WES", Quantity: 1}}})

		assert.ErrorIs(t, err, apperrors.ErrNoHoldingsList)
		assert.Equal(t, model.CommitStatusNotAttempted, summary.Status())
	})

	t.Run("empty batch succeeds without writes", func(t *testing.T) {
		summary, err := reconcile.NewCommitter(newMemoryStore()).Commit(context.Background(), commitTarget, nil, nil)

		require.NoError(t, err)
		assert.Zero(t, summary.Attempted)
		assert.Equal(t, model.CommitStatusSucceeded, summary.Status())
	})
}

type countingStore struct {
	*memoryStore
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *countingStore) CreateHolding(ctx context.Context, userID string, h model.Holding) (string, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return s.memoryStore.CreateHolding(ctx, userID, h)
}

func TestCommitter_ConcurrencyLimit(t *testing.T) {
	store := &countingStore{memoryStore: newMemoryStore()}
	c := reconcile.NewCommitter(store, reconcile.WithConcurrencyLimit(2))

	var candidates []model.NewHoldingCandidate
	for _, code := range []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF"} {
		candidates = append(candidates, model.NewHoldingCandidate{NormalizedCode: code, Record: model.ParsedRecord{Code: code, Quantity: 1}})
	}

	summary, err := c.Commit(context.Background(), commitTarget, nil, candidates)

	require.NoError(t, err)
	assert.Equal(t, 6, summary.Succeeded)
	assert.LessOrEqual(t, store.peak.Load(), int32(2))
}
