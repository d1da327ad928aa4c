package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/logging"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/reconcile"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
)

// SimulationResult is the classification of a report plus the token that confirms it.
type SimulationResult struct {
	model.ClassificationResult
	PreviewToken string    `json:"previewToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// ReconcileService runs simulate and commit against a user's stored holdings.
type ReconcileService struct {
	userRepo      *repository.UserRepository
	watchlistRepo *repository.WatchlistRepository
	holdingRepo   *repository.HoldingRepository
	committer     *reconcile.Committer
	previews      *PreviewSealer
	snapshots     *cache.Cache
	spent         *cache.Cache
	now           func() time.Time
}

// NewReconcileService creates a new ReconcileService.
// Holdings snapshots are cached per user for snapshotTTL; commitConcurrency caps
// the writes in flight per commit.
func NewReconcileService(
	userRepo *repository.UserRepository,
	watchlistRepo *repository.WatchlistRepository,
	holdingRepo *repository.HoldingRepository,
	previews *PreviewSealer,
	snapshotTTL time.Duration,
	commitConcurrency int,
) *ReconcileService {
	return &ReconcileService{
		userRepo:      userRepo,
		watchlistRepo: watchlistRepo,
		holdingRepo:   holdingRepo,
		committer:     reconcile.NewCommitter(holdingRepo, reconcile.WithConcurrencyLimit(commitConcurrency)),
		previews:      previews,
		snapshots:     cache.New(snapshotTTL, max(2*snapshotTTL, time.Minute)),
		spent:         cache.New(previews.TTL(), max(previews.TTL(), time.Minute)),
		now:           time.Now,
	}
}

// snapshot returns the user's holdings, served from cache when fresh.
func (s *ReconcileService) snapshot(ctx context.Context, userID string) ([]model.Holding, error) {
	if cached, ok := s.snapshots.Get(userID); ok {
		return cached.([]model.Holding), nil
	}
	holdings, err := s.holdingRepo.GetAllHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.snapshots.SetDefault(userID, holdings)
	return holdings, nil
}

// InvalidateSnapshot drops the cached holdings of a user.
func (s *ReconcileService) InvalidateSnapshot(userID string) {
	s.snapshots.Delete(userID)
}

// Simulate classifies a report against the user's holdings without writing anything.
// The result carries a preview token that CommitPreview accepts until it expires.
func (s *ReconcileService) Simulate(ctx context.Context, userID string, report model.Report) (SimulationResult, error) {
	if _, err := s.userRepo.GetUser(ctx, userID); err != nil {
		return SimulationResult{}, err
	}

	records, err := reconcile.RecordsForReport(report)
	if err != nil {
		return SimulationResult{}, err
	}

	holdings, err := s.snapshot(ctx, userID)
	if err != nil {
		return SimulationResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveHoldings, err)
	}

	result := reconcile.Classify(records, holdings)

	token, err := s.previews.seal(previewPayload{
		UserID:      userID,
		Matches:     result.Matches,
		NewHoldings: result.NewHoldings,
	})
	if err != nil {
		return SimulationResult{}, err
	}

	logging.FromContext(ctx).WithFields(logrus.Fields{
		"userId":      userID,
		"reportType":  report.Type,
		"records":     len(records),
		"matches":     len(result.Matches),
		"newHoldings": len(result.NewHoldings),
		"skipped":     len(result.Skipped),
	}).Info("reconcile simulated")

	return SimulationResult{
		ClassificationResult: result,
		PreviewToken:         token,
		ExpiresAt:            s.now().Add(s.previews.TTL()).UTC(),
	}, nil
}

// Commit writes matches and new holdings for the user.
// New holdings go into the user's primary watchlist; without one nothing is written and
// the committer reports apperrors.ErrNoHoldingsList. See reconcile.Committer for the
// aggregation rules.
func (s *ReconcileService) Commit(ctx context.Context, userID string, matches []model.MatchedUpdate, newHoldings []model.NewHoldingCandidate) (model.CommitSummary, error) {
	target := reconcile.CommitTarget{UserID: userID}

	if userID != "" {
		if _, err := s.userRepo.GetUser(ctx, userID); err != nil {
			return model.CommitSummary{}, err
		}
		watchlist, err := s.watchlistRepo.GetPrimaryWatchlist(ctx, userID)
		switch {
		case err == nil:
			target.WatchlistID = watchlist.ID
		case !errors.Is(err, apperrors.ErrWatchlistNotFound):
			return model.CommitSummary{}, err
		}
	}

	summary, err := s.committer.Commit(ctx, target, matches, newHoldings)

	if summary.Attempted > 0 {
		s.InvalidateSnapshot(userID)
	}

	logger := logging.FromContext(ctx).WithFields(logrus.Fields{
		"userId":    userID,
		"status":    summary.Status(),
		"attempted": summary.Attempted,
		"succeeded": summary.Succeeded,
	})
	if err != nil {
		for _, o := range summary.Failed() {
			logger.WithField("code", o.Code).WithError(o.Err).Warn("reconcile write failed")
		}
		logger.WithError(err).Warn("reconcile commit incomplete")
	} else {
		logger.Info("reconcile committed")
	}

	return summary, err
}

// CommitPreview commits a classification previously returned by Simulate.
// Entries whose normalized code appears in excludeCodes are dropped first.
// A token is accepted once: resubmitting it returns apperrors.ErrPreviewAlreadyUsed so
// new holdings are not created twice. A commit that attempted no writes releases it.
func (s *ReconcileService) CommitPreview(ctx context.Context, userID, token string, excludeCodes []string) (model.CommitSummary, error) {
	payload, err := s.previews.open(token)
	if err != nil {
		return model.CommitSummary{}, err
	}
	if payload.UserID != userID {
		return model.CommitSummary{}, apperrors.ErrPreviewUserMismatch
	}

	sum := sha256.Sum256([]byte(token))
	tokenKey := hex.EncodeToString(sum[:])
	if err := s.spent.Add(tokenKey, struct{}{}, cache.DefaultExpiration); err != nil {
		return model.CommitSummary{}, apperrors.ErrPreviewAlreadyUsed
	}

	excluded := make(map[string]bool, len(excludeCodes))
	for _, code := range excludeCodes {
		excluded[reconcile.Normalize(code)] = true
	}

	matches := make([]model.MatchedUpdate, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		if !excluded[reconcile.Normalize(m.Record.Code)] {
			matches = append(matches, m)
		}
	}
	newHoldings := make([]model.NewHoldingCandidate, 0, len(payload.NewHoldings))
	for _, c := range payload.NewHoldings {
		if !excluded[c.NormalizedCode] {
			newHoldings = append(newHoldings, c)
		}
	}

	summary, err := s.Commit(ctx, userID, matches, newHoldings)
	if err != nil && summary.Attempted == 0 {
		s.spent.Delete(tokenKey)
	}
	return summary, err
}
