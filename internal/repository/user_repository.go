package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a new UserRepository scoped to the provided transaction.
func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *UserRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// CreateUser inserts a user together with its primary watchlist in one transaction.
// When the repository is already scoped to a transaction, that transaction is used.
func (r *UserRepository) CreateUser(ctx context.Context, name, watchlistName string, now time.Time) (model.User, error) {
	user := model.User{
		ID:                 uuid.New().String(),
		Name:               name,
		PrimaryWatchlistID: uuid.New().String(),
		CreatedAt:          now.UTC(),
	}

	tx := r.tx
	if tx == nil {
		var err error
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer rollback(tx)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user (id, name, created_at) VALUES (?, ?, ?)`,
		user.ID, user.Name, formatTimestamp(user.CreatedAt),
	); err != nil {
		return model.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO watchlist (id, user_id, name, is_primary, created_at) VALUES (?, ?, ?, TRUE, ?)`,
		user.PrimaryWatchlistID, user.ID, watchlistName, formatTimestamp(user.CreatedAt),
	); err != nil {
		return model.User{}, fmt.Errorf("failed to insert primary watchlist: %w", err)
	}

	if r.tx == nil {
		if err := tx.Commit(); err != nil {
			return model.User{}, fmt.Errorf("failed to commit user creation: %w", err)
		}
	}

	return user, nil
}

// GetUser retrieves a user with its primary watchlist ID.
// Returns apperrors.ErrUserNotFound when no such user exists.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (model.User, error) {
	query := `
		SELECT u.id, u.name, u.created_at, COALESCE(w.id, '')
		FROM user u
		LEFT JOIN watchlist w ON w.user_id = u.id AND w.is_primary
		WHERE u.id = ?
	`

	var u model.User
	var createdAt string

	err := r.getQuerier().QueryRowContext(ctx, query, userID).Scan(
		&u.ID,
		&u.Name,
		&createdAt,
		&u.PrimaryWatchlistID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	if u.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.User{}, fmt.Errorf("failed to parse user created_at: %w", err)
	}

	return u, nil
}

// GetUserIDs returns the IDs of all users, oldest first.
func (r *UserRepository) GetUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.getQuerier().QueryContext(ctx, `SELECT id FROM user ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user table results: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return ids, nil
}
