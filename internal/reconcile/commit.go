package reconcile

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

// HoldingStore is the write side of the document store used by Committer.
type HoldingStore interface {
	UpdateHolding(ctx context.Context, userID, holdingID string, patch model.HoldingPatch) error
	CreateHolding(ctx context.Context, userID string, holding model.Holding) (string, error)
}

// CommitTarget identifies whose holdings a commit writes and where new holdings go.
type CommitTarget struct {
	UserID      string
	WatchlistID string
}

// Committer issues the writes for an approved classification.
type Committer struct {
	store HoldingStore
	limit int
	now   func() time.Time
}

// CommitterOption configures a Committer.
type CommitterOption func(*Committer)

// WithConcurrencyLimit caps the number of writes in flight. Zero or less means unbounded.
func WithConcurrencyLimit(n int) CommitterOption {
	return func(c *Committer) {
		c.limit = n
	}
}

// WithClock overrides the time source used for purchase dates and comment dates.
func WithClock(now func() time.Time) CommitterOption {
	return func(c *Committer) {
		c.now = now
	}
}

// NewCommitter creates a Committer writing to store.
func NewCommitter(store HoldingStore, opts ...CommitterOption) *Committer {
	c := &Committer{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Commit writes one partial update per match and one creation per new holding.
//
// All writes are launched together and Commit returns once every one has settled.
// A failed write does not stop its siblings, is not retried, and does not roll back
// writes that already succeeded. The returned error is the first failure in input
// order (matches before new holdings) and is nil only when every write succeeded.
// When target is incomplete nothing is written and the summary has zero attempts.
func (c *Committer) Commit(ctx context.Context, target CommitTarget, matches []model.MatchedUpdate, newHoldings []model.NewHoldingCandidate) (model.CommitSummary, error) {
	if target.UserID == "" {
		return model.CommitSummary{FirstError: apperrors.ErrNoAuthenticatedUser}, apperrors.ErrNoAuthenticatedUser
	}
	if target.WatchlistID == "" {
		return model.CommitSummary{FirstError: apperrors.ErrNoHoldingsList}, apperrors.ErrNoHoldingsList
	}

	now := c.now()
	outcomes := make([]model.CommitOutcome, len(matches)+len(newHoldings))

	// Writes never return an error to the group, so one failure cannot cancel the rest.
	var g errgroup.Group
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}

	for i, m := range matches {
		patch := PlanUpdate(m, now)
		g.Go(func() error {
			outcome := model.CommitOutcome{
				Operation: model.CommitOperationUpdate,
				Code:      m.Record.Code,
				HoldingID: m.HoldingID,
			}
			if err := c.store.UpdateHolding(ctx, target.UserID, m.HoldingID, patch); err != nil {
				outcome.Err = fmt.Errorf("update %s: %w", m.HoldingID, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}

	offset := len(matches)
	for i, candidate := range newHoldings {
		holding := PlanCreation(candidate, target, now)
		g.Go(func() error {
			outcome := model.CommitOutcome{
				Operation: model.CommitOperationCreate,
				Code:      holding.Code,
			}
			id, err := c.store.CreateHolding(ctx, target.UserID, holding)
			if err != nil {
				outcome.Err = fmt.Errorf("create %s: %w", holding.Code, err)
			} else {
				outcome.HoldingID = id
			}
			outcomes[offset+i] = outcome
			return nil
		})
	}

	_ = g.Wait()

	summary := model.CommitSummary{
		Attempted: len(outcomes),
		Outcomes:  outcomes,
	}
	for _, o := range outcomes {
		if o.Succeeded() {
			summary.Succeeded++
		} else if summary.FirstError == nil {
			summary.FirstError = o.Err
		}
	}
	return summary, summary.FirstError
}
