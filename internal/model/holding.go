package model

import "time"

// Holding is a user's current position in one instrument.
// The instrument code may live in any of the four alias fields (ShareName, Code,
// ShareCode, Symbol); an empty string means the alias is not populated.
type Holding struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	WatchlistID       string    `json:"watchlistId"`
	ShareName         string    `json:"shareName,omitempty"`
	Code              string    `json:"code,omitempty"`
	ShareCode         string    `json:"shareCode,omitempty"`
	Symbol            string    `json:"symbol,omitempty"`
	PortfolioShares   string    `json:"portfolioShares"`
	PortfolioAvgPrice float64   `json:"portfolioAvgPrice"`
	PurchaseDate      string    `json:"purchaseDate"`
	ShareSightCode    string    `json:"shareSightCode"`
	Brokerage         float64   `json:"brokerage"`
	StarRating        int       `json:"starRating"`
	TargetPrice       float64   `json:"targetPrice"`
	BuySell           string    `json:"buySell"`
	TargetDirection   string    `json:"targetDirection"`
	DividendAmount    float64   `json:"dividendAmount"`
	FrankingCredits   float64   `json:"frankingCredits"`
	Comments          []Comment `json:"comments"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Comment is a dated note attached to a holding. Comments are only ever appended.
type Comment struct {
	Body string    `json:"body"`
	Date time.Time `json:"date"`
}

// HoldingPatch is a sparse update for a single holding.
// Only non-nil fields are written; AppendComments are added after the existing comments.
type HoldingPatch struct {
	PortfolioShares   *string   `json:"portfolioShares,omitempty"`
	PortfolioAvgPrice *float64  `json:"portfolioAvgPrice,omitempty"`
	PurchaseDate      *string   `json:"purchaseDate,omitempty"`
	ShareSightCode    *string   `json:"shareSightCode,omitempty"`
	Brokerage         *float64  `json:"brokerage,omitempty"`
	StarRating        *int      `json:"starRating,omitempty"`
	TargetPrice       *float64  `json:"targetPrice,omitempty"`
	BuySell           *string   `json:"buySell,omitempty"`
	TargetDirection   *string   `json:"targetDirection,omitempty"`
	DividendAmount    *float64  `json:"dividendAmount,omitempty"`
	FrankingCredits   *float64  `json:"frankingCredits,omitempty"`
	AppendComments    []Comment `json:"appendComments,omitempty"`
}

// Fields returns the names of the fields the patch sets, in a fixed order.
func (p HoldingPatch) Fields() []string {
	var fields []string
	if p.PortfolioShares != nil {
		fields = append(fields, "portfolioShares")
	}
	if p.PortfolioAvgPrice != nil {
		fields = append(fields, "portfolioAvgPrice")
	}
	if p.PurchaseDate != nil {
		fields = append(fields, "purchaseDate")
	}
	if p.ShareSightCode != nil {
		fields = append(fields, "shareSightCode")
	}
	if p.Brokerage != nil {
		fields = append(fields, "brokerage")
	}
	if p.StarRating != nil {
		fields = append(fields, "starRating")
	}
	if p.TargetPrice != nil {
		fields = append(fields, "targetPrice")
	}
	if p.BuySell != nil {
		fields = append(fields, "buySell")
	}
	if p.TargetDirection != nil {
		fields = append(fields, "targetDirection")
	}
	if p.DividendAmount != nil {
		fields = append(fields, "dividendAmount")
	}
	if p.FrankingCredits != nil {
		fields = append(fields, "frankingCredits")
	}
	if len(p.AppendComments) > 0 {
		fields = append(fields, "comments")
	}
	return fields
}

// IsEmpty reports whether applying the patch would change nothing.
func (p HoldingPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}
