package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

// HoldingRepository provides data access methods for the holding table.
// It is the document store the reconcile committer writes to.
type HoldingRepository struct {
	db  *sql.DB
	tx  *sql.Tx
	now func() time.Time
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db, now: time.Now}
}

// WithTx returns a new HoldingRepository scoped to the provided transaction.
func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{
		db:  r.db,
		tx:  tx,
		now: r.now,
	}
}

func (r *HoldingRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const holdingColumns = `
	id, user_id, watchlist_id, share_name, code, share_code, symbol,
	portfolio_shares, portfolio_avg_price, purchase_date, share_sight_code, brokerage,
	star_rating, target_price, buy_sell, target_direction, dividend_amount, franking_credits,
	comments, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHolding(row rowScanner) (model.Holding, error) {
	var h model.Holding
	var comments, createdAt, updatedAt string

	err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.WatchlistID,
		&h.ShareName,
		&h.Code,
		&h.ShareCode,
		&h.Symbol,
		&h.PortfolioShares,
		&h.PortfolioAvgPrice,
		&h.PurchaseDate,
		&h.ShareSightCode,
		&h.Brokerage,
		&h.StarRating,
		&h.TargetPrice,
		&h.BuySell,
		&h.TargetDirection,
		&h.DividendAmount,
		&h.FrankingCredits,
		&comments,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.Holding{}, err
	}

	if h.Comments, err = decodeComments(comments); err != nil {
		return model.Holding{}, fmt.Errorf("holding %s: %w", h.ID, err)
	}
	if h.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Holding{}, fmt.Errorf("holding %s created_at: %w", h.ID, err)
	}
	if h.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.Holding{}, fmt.Errorf("holding %s updated_at: %w", h.ID, err)
	}

	return h, nil
}

func decodeComments(raw string) ([]model.Comment, error) {
	comments := []model.Comment{}
	if strings.TrimSpace(raw) == "" {
		return comments, nil
	}
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func encodeComments(comments []model.Comment) (string, error) {
	if comments == nil {
		comments = []model.Comment{}
	}
	b, err := json.Marshal(comments)
	if err != nil {
		return "", fmt.Errorf("failed to encode comments: %w", err)
	}
	return string(b), nil
}

// GetAllHoldings returns every holding of the user in insertion order.
// Returns an empty slice if the user has no holdings.
func (r *HoldingRepository) GetAllHoldings(ctx context.Context, userID string) ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE user_id = ? ORDER BY created_at, rowid`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetHolding retrieves one holding of the user.
// Returns apperrors.ErrHoldingNotFound if it does not exist or belongs to someone else.
func (r *HoldingRepository) GetHolding(ctx context.Context, userID, holdingID string) (model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE id = ? AND user_id = ?`

	h, err := scanHolding(r.getQuerier().QueryRowContext(ctx, query, holdingID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to query holding: %w", err)
	}
	return h, nil
}

// patchAssignments maps the set fields of a patch to SQL assignments.
func patchAssignments(patch model.HoldingPatch) ([]string, []any) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.PortfolioShares != nil {
		add("portfolio_shares", *patch.PortfolioShares)
	}
	if patch.PortfolioAvgPrice != nil {
		add("portfolio_avg_price", *patch.PortfolioAvgPrice)
	}
	if patch.PurchaseDate != nil {
		add("purchase_date", *patch.PurchaseDate)
	}
	if patch.ShareSightCode != nil {
		add("share_sight_code", *patch.ShareSightCode)
	}
	if patch.Brokerage != nil {
		add("brokerage", *patch.Brokerage)
	}
	if patch.StarRating != nil {
		add("star_rating", *patch.StarRating)
	}
	if patch.TargetPrice != nil {
		add("target_price", *patch.TargetPrice)
	}
	if patch.BuySell != nil {
		add("buy_sell", *patch.BuySell)
	}
	if patch.TargetDirection != nil {
		add("target_direction", *patch.TargetDirection)
	}
	if patch.DividendAmount != nil {
		add("dividend_amount", *patch.DividendAmount)
	}
	if patch.FrankingCredits != nil {
		add("franking_credits", *patch.FrankingCredits)
	}

	return sets, args
}

// UpdateHolding applies a sparse patch to one holding of the user.
// Only the fields set in the patch are written; comments are appended to the stored list.
// The read of existing comments and the write happen in one transaction.
func (r *HoldingRepository) UpdateHolding(ctx context.Context, userID, holdingID string, patch model.HoldingPatch) error {
	if patch.IsEmpty() {
		return apperrors.ErrEmptyPatch
	}

	tx := r.tx
	if tx == nil {
		var err error
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer rollback(tx)
	}

	sets, args := patchAssignments(patch)

	if len(patch.AppendComments) > 0 {
		var raw string
		err := tx.QueryRowContext(ctx, `SELECT comments FROM holding WHERE id = ? AND user_id = ?`, holdingID, userID).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrHoldingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read comments: %w", err)
		}
		comments, err := decodeComments(raw)
		if err != nil {
			return err
		}
		encoded, err := encodeComments(append(comments, patch.AppendComments...))
		if err != nil {
			return err
		}
		sets = append(sets, "comments = ?")
		args = append(args, encoded)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, formatTimestamp(r.now()), holdingID, userID)

	//#nosec G202 -- Safe: column names come from patchAssignments, values are bound
	query := `UPDATE holding SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	if r.tx == nil {
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit holding update: %w", err)
		}
	}

	return nil
}

// CreateHolding inserts a new holding for the user and returns its generated ID.
// The target watchlist must belong to the same user, otherwise
// apperrors.ErrDataInconsistency is returned and nothing is written.
func (r *HoldingRepository) CreateHolding(ctx context.Context, userID string, h model.Holding) (string, error) {
	id := uuid.New().String()

	comments, err := encodeComments(h.Comments)
	if err != nil {
		return "", err
	}

	now := formatTimestamp(r.now())

	// Inserting via SELECT ties the insert to watchlist ownership in a single statement.
	query := `
		INSERT INTO holding (` + holdingColumns + `)
		SELECT ?, ?, w.id, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		FROM watchlist w
		WHERE w.id = ? AND w.user_id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		id,
		userID,
		h.ShareName,
		h.Code,
		h.ShareCode,
		h.Symbol,
		h.PortfolioShares,
		h.PortfolioAvgPrice,
		h.PurchaseDate,
		h.ShareSightCode,
		h.Brokerage,
		h.StarRating,
		h.TargetPrice,
		h.BuySell,
		h.TargetDirection,
		h.DividendAmount,
		h.FrankingCredits,
		comments,
		now,
		now,
		h.WatchlistID,
		userID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return "", fmt.Errorf("%w: watchlist %s does not belong to user %s", apperrors.ErrDataInconsistency, h.WatchlistID, userID)
	}

	return id, nil
}
