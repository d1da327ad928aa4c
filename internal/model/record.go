package model

import "strings"

// ParsedRecord is one row of a brokerage export after the external parser has typed it.
// Optional fields are pointers: nil means the export did not carry the column, a non-nil
// pointer means it did, even when the value is zero or empty.
type ParsedRecord struct {
	Code            string   `json:"code"`
	Quantity        float64  `json:"quantity"`
	Price           *float64 `json:"price,omitempty"`
	DateStr         *string  `json:"dateStr,omitempty"`
	IsHoldingsOnly  bool     `json:"isHoldingsOnly"`
	ShareSightCode  *string  `json:"shareSightCode,omitempty"`
	Brokerage       *float64 `json:"brokerage,omitempty"`
	Rating          *int     `json:"rating,omitempty"`
	TargetPrice     *float64 `json:"targetPrice,omitempty"`
	BuySell         *string  `json:"buySell,omitempty"`
	TargetDirection *string  `json:"targetDirection,omitempty"`
	DividendAmount  *float64 `json:"dividendAmount,omitempty"`
	FrankingCredits *float64 `json:"frankingCredits,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// ReportType identifies which kind of rows the parser collaborator produced.
type ReportType string

const (
	ReportTypeHoldings ReportType = "HOLDINGS"
	ReportTypeTrades   ReportType = "TRADES"
)

// ParseReportType canonicalizes a report type as sent by clients: trimmed and uppercased.
// The result is not checked against the known types.
func ParseReportType(raw string) ReportType {
	return ReportType(strings.ToUpper(strings.TrimSpace(raw)))
}

// ReportRow is a typed row returned by the parser collaborator.
// Side is only meaningful for trade reports ("buy" or "sell"; blank is treated as buy).
type ReportRow struct {
	Code            string   `json:"code" yaml:"code"`
	Quantity        float64  `json:"quantity" yaml:"quantity"`
	Price           *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Date            string   `json:"date,omitempty" yaml:"date,omitempty"`
	Side            string   `json:"side,omitempty" yaml:"side,omitempty"`
	ShareSightCode  *string  `json:"shareSightCode,omitempty" yaml:"shareSightCode,omitempty"`
	Brokerage       *float64 `json:"brokerage,omitempty" yaml:"brokerage,omitempty"`
	Rating          *int     `json:"rating,omitempty" yaml:"rating,omitempty"`
	TargetPrice     *float64 `json:"targetPrice,omitempty" yaml:"targetPrice,omitempty"`
	BuySell         *string  `json:"buySell,omitempty" yaml:"buySell,omitempty"`
	TargetDirection *string  `json:"targetDirection,omitempty" yaml:"targetDirection,omitempty"`
	DividendAmount  *float64 `json:"dividendAmount,omitempty" yaml:"dividendAmount,omitempty"`
	FrankingCredits *float64 `json:"frankingCredits,omitempty" yaml:"frankingCredits,omitempty"`
	Notes           *string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Report is the parser collaborator's output: classified rows of a single export.
type Report struct {
	Type ReportType  `json:"type" yaml:"type"`
	Rows []ReportRow `json:"rows" yaml:"rows"`
}
