package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

// WatchlistRepository provides data access methods for the watchlist table.
type WatchlistRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewWatchlistRepository creates a new WatchlistRepository with the provided database connection.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// WithTx returns a new WatchlistRepository scoped to the provided transaction.
func (r *WatchlistRepository) WithTx(tx *sql.Tx) *WatchlistRepository {
	return &WatchlistRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *WatchlistRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetPrimaryWatchlist returns the watchlist new holdings are placed in.
// Returns apperrors.ErrWatchlistNotFound when the user has none.
func (r *WatchlistRepository) GetPrimaryWatchlist(ctx context.Context, userID string) (model.Watchlist, error) {
	query := `
		SELECT id, user_id, name, is_primary, created_at
		FROM watchlist
		WHERE user_id = ? AND is_primary
	`

	var w model.Watchlist
	var createdAt string

	err := r.getQuerier().QueryRowContext(ctx, query, userID).Scan(
		&w.ID,
		&w.UserID,
		&w.Name,
		&w.IsPrimary,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Watchlist{}, apperrors.ErrWatchlistNotFound
	}
	if err != nil {
		return model.Watchlist{}, fmt.Errorf("failed to query watchlist: %w", err)
	}

	if w.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Watchlist{}, fmt.Errorf("failed to parse watchlist created_at: %w", err)
	}

	return w, nil
}
