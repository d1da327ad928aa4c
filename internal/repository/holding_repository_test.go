package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/testutil"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

// WHY: the matcher returns the first holding in store order, so listing must be stable.
func TestHoldingRepository_GetAllHoldings(t *testing.T) {
	t.Run("returns empty slice for a user without holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().Build(t, db)

		holdings, err := repository.NewHoldingRepository(db).GetAllHoldings(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("GetAllHoldings() returned unexpected error: %v", err)
		}
		if holdings == nil || len(holdings) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", holdings)
		}
	})

	t.Run("returns holdings in insertion order and only for the user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().Build(t, db)
		other := testutil.NewUser().Build(t, db)

		created := testutil.CreateHoldings(t, db, user, "BHP", "CBA", "NAB")
		testutil.CreateHoldings(t, db, other, "WES")

		holdings, err := repository.NewHoldingRepository(db).GetAllHoldings(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("GetAllHoldings() returned unexpected error: %v", err)
		}
		if len(holdings) != 3 {
			t.Fatalf("Expected 3 holdings, got %d", len(holdings))
		}
		for i := range created {
			if holdings[i].ID != created[i].ID {
				t.Errorf("holdings[%d] = %s, want %s", i, holdings[i].Code, created[i].Code)
			}
		}
	})
}

func TestHoldingRepository_UpdateHolding(t *testing.T) {
	ctx := context.Background()

	t.Run("writes only the fields in the patch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().Build(t, db)
		h := testutil.NewHolding(user).WithCode("BHP").WithShares("10").WithAvgPrice(40).WithBrokerage(9.95).Build(t, db)
		repo := repository.NewHoldingRepository(db)

		err := repo.UpdateHolding(ctx, user.ID, h.ID, model.HoldingPatch{
			PortfolioShares:   str("50"),
			PortfolioAvgPrice: f64(45.2),
		})
		if err != nil {
			t.Fatalf("UpdateHolding() returned unexpected error: %v", err)
		}

		got, err := repo.GetHolding(ctx, user.ID, h.ID)
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if got.PortfolioShares != "50" || got.PortfolioAvgPrice != 45.2 {
			t.Errorf("shares/price = %s/%v, want 50/45.2", got.PortfolioShares, got.PortfolioAvgPrice)
		}
		if got.Brokerage != 9.95 {
			t.Errorf("Brokerage = %v, want untouched 9.95", got.Brokerage)
		}
	})

	t.Run("writes an explicit zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().Build(t, db)
		h := testutil.NewHolding(user).WithCode("BHP").WithBrokerage(9.95).Build(t, db)
		repo := repository.NewHoldingRepository(db)

		if err := repo.UpdateHolding(ctx, user.ID, h.ID, model.HoldingPatch{Brokerage: f64(0)}); err != nil {
			t.Fatalf("UpdateHolding() returned unexpected error: %v", err)
		}

		got, _ := repo.GetHolding(ctx, user.ID, h.ID)
		if got.Brokerage != 0 {
			t.Errorf("Brokerage = %v, want 0", got.Brokerage)
		}
	})

	t.Run("appends comments after existing ones", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().Build(t, db)
		h := testutil.NewHolding(user).WithCode("BHP").WithComment("first").Build(t, db)
		repo := repository.NewHoldingRepository(db)

		err := repo.UpdateHolding(ctx, user.ID, h.ID, model.HoldingPatch{
			AppendComments: []model.Comment{{Body: "second", Date: time.Now().UTC()}},
		})
		if err != nil {
			t.Fatalf("UpdateHolding() returned unexpected error: %v", err)
		}

		got, _ := repo.GetHolding(ctx, user.ID, h.ID)
		if len(got.Comments) != 2 || got.Comments[0].Body != "first" || got.Comments[1].Body != "second" {
			t.Errorf("Comments = %+v, want [first second]", got.Comments)
		}
	})

	t.Run("rejects another user's holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		owner := testutil.NewUser().Build(t, db)
		intruder := testutil.NewUser().Build(t, db)
		h := testutil.NewHolding(owner).WithCode("BHP").Build(t, db)

		err := repository.NewHoldingRepository(db).UpdateHolding(ctx, intruder.ID, h.ID, model.HoldingPatch{PortfolioShares: str("1")})
		if !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("UpdateHolding() error = %v, want ErrHoldingNotFound", err)
		}
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		err := repository.NewHoldingRepository(db).UpdateHolding(ctx, testutil.MakeID(), testutil.MakeID(), model.HoldingPatch{})
		if !errors.Is(err, apperrors.ErrEmptyPatch) {
			t.Errorf("UpdateHolding() error = %v, want ErrEmptyPatch", err)
		}
	})

	t.Run("rolls back with the caller's transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().Build(t, db)
		h := testutil.NewHolding(user).WithCode("BHP").WithShares("10").Build(t, db)
		repo := repository.NewHoldingRepository(db)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTx() returned error: %v", err)
		}
		if err := repo.WithTx(tx).UpdateHolding(ctx, user.ID, h.ID, model.HoldingPatch{PortfolioShares: str("99")}); err != nil {
			t.Fatalf("UpdateHolding() returned unexpected error: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("Rollback() returned error: %v", err)
		}

		got, _ := repo.GetHolding(ctx, user.ID, h.ID)
		if got.PortfolioShares != "10" {
			t.Errorf("PortfolioShares = %s, want 10 after rollback", got.PortfolioShares)
		}
	})
}

func TestHoldingRepository_CreateHolding(t *testing.T) {
	ctx := context.Background()

	t.Run("stores every field", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().Build(t, db)
		repo := repository.NewHoldingRepository(db)

		id, err := repo.CreateHolding(ctx, user.ID, model.Holding{
			WatchlistID:       user.PrimaryWatchlistID,
			ShareName:         "WES",
			Code:              "WES",
			ShareCode:         "WES",
			Symbol:            "WES",
			PortfolioShares:   "3",
			PortfolioAvgPrice: 60.5,
			PurchaseDate:      "2024-01-15",
			StarRating:        4,
			BuySell:           "buy",
			TargetDirection:   "below",
		})
		if err != nil {
			t.Fatalf("CreateHolding() returned unexpected error: %v", err)
		}
		if id == "" {
			t.Fatalf("CreateHolding() returned unexpected id %q", id)
		}

		got, err := repo.GetHolding(ctx, user.ID, id)
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if got.Symbol != "WES" || got.PortfolioShares != "3" || got.StarRating != 4 || got.PurchaseDate != "2024-01-15" {
			t.Errorf("stored holding = %+v", got)
		}
		if got.Comments == nil {
			t.Error("Comments should decode to an empty slice")
		}
		if got.CreatedAt.IsZero() {
			t.Error("CreatedAt should be set")
		}
	})

	t.Run("refuses a watchlist owned by someone else", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.NewUser().Build(t, db)
		other := testutil.NewUser().Build(t, db)

		_, err := repository.NewHoldingRepository(db).CreateHolding(ctx, user.ID, model.Holding{
			WatchlistID: other.PrimaryWatchlistID,
			Code:        "WES",
		})
		if !errors.Is(err, apperrors.ErrDataInconsistency) {
			t.Errorf("CreateHolding() error = %v, want ErrDataInconsistency", err)
		}
	})
}
