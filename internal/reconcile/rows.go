package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

func recordFromRow(row model.ReportRow, holdingsOnly bool) model.ParsedRecord {
	rec := model.ParsedRecord{
		Code:            row.Code,
		Quantity:        row.Quantity,
		Price:           row.Price,
		IsHoldingsOnly:  holdingsOnly,
		ShareSightCode:  row.ShareSightCode,
		Brokerage:       row.Brokerage,
		Rating:          row.Rating,
		TargetPrice:     row.TargetPrice,
		BuySell:         row.BuySell,
		TargetDirection: row.TargetDirection,
		DividendAmount:  row.DividendAmount,
		FrankingCredits: row.FrankingCredits,
		Notes:           row.Notes,
	}
	if strings.TrimSpace(row.Date) != "" {
		date := row.Date
		rec.DateStr = &date
	}
	return rec
}

// RowsToHoldingsRecords converts a holdings report: one holdings-only record per row.
func RowsToHoldingsRecords(rows []model.ReportRow) []model.ParsedRecord {
	records := make([]model.ParsedRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row, true))
	}
	return records
}

func isBuy(side string) bool {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "", "buy", "b":
		return true
	}
	return false
}

// RowsToLatestPurchaseRecords converts a trades report into one record per instrument:
// its most recent buy. Sells are ignored. On equal dates the later row wins; rows with
// an unreadable date sort before every dated row. Output follows first appearance.
func RowsToLatestPurchaseRecords(rows []model.ReportRow) []model.ParsedRecord {
	type latest struct {
		row  model.ReportRow
		date time.Time
	}
	byCode := make(map[string]latest)
	var order []string

	for _, row := range rows {
		if !isBuy(row.Side) {
			continue
		}
		key := Normalize(row.Code)
		date, _ := parseReportDate(row.Date)

		current, ok := byCode[key]
		if !ok {
			order = append(order, key)
		}
		if !ok || !date.Before(current.date) {
			byCode[key] = latest{row: row, date: date}
		}
	}

	records := make([]model.ParsedRecord, 0, len(order))
	for _, key := range order {
		records = append(records, recordFromRow(byCode[key].row, false))
	}
	return records
}

// RecordsForReport picks the adapter matching the report type.
func RecordsForReport(report model.Report) ([]model.ParsedRecord, error) {
	switch model.ParseReportType(string(report.Type)) {
	case model.ReportTypeHoldings:
		return RowsToHoldingsRecords(report.Rows), nil
	case model.ReportTypeTrades:
		return RowsToLatestPurchaseRecords(report.Rows), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownReportType, report.Type)
	}
}
