package reconcile

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// reportDateLayouts are the date formats brokerage exports are known to use.
var reportDateLayouts = []string{
	dateLayout,
	"02/01/2006",
	time.RFC3339,
}

// parseReportDate parses a report date in any known layout.
func parseReportDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// purchaseDate returns the record date as YYYY-MM-DD, or now when the record has none.
// A date in an unknown layout is kept verbatim rather than replaced.
func purchaseDate(dateStr *string, now time.Time) string {
	if dateStr == nil || strings.TrimSpace(*dateStr) == "" {
		return now.Format(dateLayout)
	}
	if t, ok := parseReportDate(*dateStr); ok {
		return t.Format(dateLayout)
	}
	return strings.TrimSpace(*dateStr)
}
