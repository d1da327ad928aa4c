package reconcile

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

// Defaults applied to new holdings when the record does not carry the field.
const (
	DefaultBuySell         = "buy"
	DefaultTargetDirection = "below"
)

// formatShares renders a quantity the way portfolioShares is stored: a plain decimal string.
func formatShares(quantity float64) string {
	return decimal.NewFromFloat(quantity).String()
}

func lower(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(*s)
	return &v
}

func ptr[T any](v T) *T {
	return &v
}

func notesComment(notes *string, now time.Time) []model.Comment {
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return nil
	}
	return []model.Comment{{Body: *notes, Date: now}}
}

// PlanUpdate builds the sparse patch for a matched record.
//
// Shares are always written. Cost basis (purchase date and average price) is only
// written for trade records that carry a price. Optional fields are written whenever
// the record provides them, including explicit zero values.
func PlanUpdate(match model.MatchedUpdate, now time.Time) model.HoldingPatch {
	rec := match.Record
	patch := model.HoldingPatch{
		PortfolioShares: ptr(formatShares(rec.Quantity)),
	}

	if !rec.IsHoldingsOnly && rec.Price != nil {
		patch.PortfolioAvgPrice = ptr(*rec.Price)
		patch.PurchaseDate = ptr(purchaseDate(rec.DateStr, now))
	}

	if rec.ShareSightCode != nil {
		patch.ShareSightCode = ptr(*rec.ShareSightCode)
	}
	if rec.Brokerage != nil {
		patch.Brokerage = ptr(*rec.Brokerage)
	}
	if rec.Rating != nil {
		patch.StarRating = ptr(*rec.Rating)
	}
	if rec.TargetPrice != nil {
		patch.TargetPrice = ptr(*rec.TargetPrice)
	}
	patch.BuySell = lower(rec.BuySell)
	patch.TargetDirection = lower(rec.TargetDirection)
	if rec.DividendAmount != nil {
		patch.DividendAmount = ptr(*rec.DividendAmount)
	}
	if rec.FrankingCredits != nil {
		patch.FrankingCredits = ptr(*rec.FrankingCredits)
	}

	patch.AppendComments = notesComment(rec.Notes, now)
	return patch
}

// PlanCreation builds the full holding for a new-holding candidate.
// The normalized code becomes both Code and ShareName and the holding is placed
// in the target's watchlist. The store assigns the ID.
func PlanCreation(candidate model.NewHoldingCandidate, target CommitTarget, now time.Time) model.Holding {
	rec := candidate.Record
	code := candidate.NormalizedCode
	if code == "" {
		code = Normalize(rec.Code)
	}

	h := model.Holding{
		UserID:          target.UserID,
		WatchlistID:     target.WatchlistID,
		Code:            code,
		ShareName:       code,
		PortfolioShares: formatShares(rec.Quantity),
		PurchaseDate:    purchaseDate(rec.DateStr, now),
		BuySell:         DefaultBuySell,
		TargetDirection: DefaultTargetDirection,
		Comments:        []model.Comment{},
	}

	if rec.Price != nil {
		h.PortfolioAvgPrice = *rec.Price
	}
	if rec.ShareSightCode != nil {
		h.ShareSightCode = *rec.ShareSightCode
	}
	if rec.Brokerage != nil {
		h.Brokerage = *rec.Brokerage
	}
	if rec.Rating != nil {
		h.StarRating = *rec.Rating
	}
	if rec.TargetPrice != nil {
		h.TargetPrice = *rec.TargetPrice
	}
	if rec.BuySell != nil {
		h.BuySell = strings.ToLower(*rec.BuySell)
	}
	if rec.TargetDirection != nil {
		h.TargetDirection = strings.ToLower(*rec.TargetDirection)
	}
	if rec.DividendAmount != nil {
		h.DividendAmount = *rec.DividendAmount
	}
	if rec.FrankingCredits != nil {
		h.FrankingCredits = *rec.FrankingCredits
	}
	if comments := notesComment(rec.Notes, now); comments != nil {
		h.Comments = comments
	}

	return h
}
