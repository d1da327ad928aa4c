package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timestampLayout is fixed width so stored timestamps sort lexically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTime parses a stored timestamp, a "2006-01-02" date or an RFC3339 string.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{timestampLayout, "2006-01-02", time.RFC3339Nano} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// rollback is deferred after BeginTx; it is a no-op once the transaction committed.
func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
