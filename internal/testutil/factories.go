package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// A user with no primary watchlist
//	user := testutil.NewUser().WithoutWatchlist().Build(t, db)
type UserBuilder struct {
	Name          string
	WatchlistName string
	NoWatchlist   bool
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		Name:          MakeName("Test User"),
		WatchlistName: "Portfolio",
	}
}

// WithName sets a custom name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

// WithoutWatchlist removes the primary watchlist after creation.
func (b *UserBuilder) WithoutWatchlist() *UserBuilder {
	b.NoWatchlist = true
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	user, err := repository.NewUserRepository(db).CreateUser(context.Background(), b.Name, b.WatchlistName, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	if b.NoWatchlist {
		if _, err := db.Exec(`DELETE FROM watchlist WHERE id = ?`, user.PrimaryWatchlistID); err != nil {
			t.Fatalf("Failed to remove test watchlist: %v", err)
		}
		user.PrimaryWatchlistID = ""
	}

	return user
}

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	holding := testutil.NewHolding(user).WithCode("BHP").WithShares("10").Build(t, db)
//
//	// Code stored only in the symbol alias
//	holding := testutil.NewHolding(user).WithSymbol("ASX:CBA").Build(t, db)
type HoldingBuilder struct {
	holding model.Holding
}

// NewHolding creates a HoldingBuilder in the user's primary watchlist.
func NewHolding(user model.User) *HoldingBuilder {
	return &HoldingBuilder{
		holding: model.Holding{
			UserID:          user.ID,
			WatchlistID:     user.PrimaryWatchlistID,
			PortfolioShares: "1",
			BuySell:         "buy",
			TargetDirection: "below",
			Comments:        []model.Comment{},
		},
	}
}

// WithCode sets the code alias.
func (b *HoldingBuilder) WithCode(code string) *HoldingBuilder {
	b.holding.Code = code
	return b
}

// WithShareName sets the shareName alias.
func (b *HoldingBuilder) WithShareName(name string) *HoldingBuilder {
	b.holding.ShareName = name
	return b
}

// WithShareCode sets the shareCode alias.
func (b *HoldingBuilder) WithShareCode(code string) *HoldingBuilder {
	b.holding.ShareCode = code
	return b
}

// WithSymbol sets the symbol alias.
func (b *HoldingBuilder) WithSymbol(symbol string) *HoldingBuilder {
	b.holding.Symbol = symbol
	return b
}

// WithShares sets portfolioShares.
func (b *HoldingBuilder) WithShares(shares string) *HoldingBuilder {
	b.holding.PortfolioShares = shares
	return b
}

// WithAvgPrice sets portfolioAvgPrice.
func (b *HoldingBuilder) WithAvgPrice(price float64) *HoldingBuilder {
	b.holding.PortfolioAvgPrice = price
	return b
}

// WithBrokerage sets brokerage.
func (b *HoldingBuilder) WithBrokerage(brokerage float64) *HoldingBuilder {
	b.holding.Brokerage = brokerage
	return b
}

// WithPurchaseDate sets purchaseDate.
func (b *HoldingBuilder) WithPurchaseDate(date string) *HoldingBuilder {
	b.holding.PurchaseDate = date
	return b
}

// WithComment appends a comment.
func (b *HoldingBuilder) WithComment(body string) *HoldingBuilder {
	b.holding.Comments = append(b.holding.Comments, model.Comment{Body: body, Date: time.Now().UTC()})
	return b
}

// Build creates the holding in the database and returns it as stored.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	repo := repository.NewHoldingRepository(db)
	ctx := context.Background()

	id, err := repo.CreateHolding(ctx, b.holding.UserID, b.holding)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	holding, err := repo.GetHolding(ctx, b.holding.UserID, id)
	if err != nil {
		t.Fatalf("Failed to read back test holding: %v", err)
	}
	return holding
}

// Convenience functions

// CreateHoldings creates one holding per code, in order, using the code alias.
//
// Example usage:
//
//	holdings := testutil.CreateHoldings(t, db, user, "BHP", "CBA")
func CreateHoldings(t *testing.T, db *sql.DB, user model.User, codes ...string) []model.Holding {
	t.Helper()
	holdings := make([]model.Holding, 0, len(codes))
	for i, code := range codes {
		holdings = append(holdings, NewHolding(user).WithCode(code).WithShares(fmt.Sprint(i+1)).Build(t, db))
	}
	return holdings
}
