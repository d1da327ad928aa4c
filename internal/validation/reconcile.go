package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/request"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

// MaxReportRows bounds the size of a single simulate request.
const MaxReportRows = 10000

// ValidateSimulate checks a simulate request: the type must name a known report after
// trimming and uppercasing, and the report must not exceed MaxReportRows rows.
// Row contents are not checked here; invalid rows are reported as skipped.
func ValidateSimulate(req request.SimulateRequest) error {
	errors := make(map[string]string)

	switch model.ParseReportType(req.Type) {
	case model.ReportTypeHoldings, model.ReportTypeTrades:
	case "":
		errors["type"] = "type is required"
	default:
		errors["type"] = fmt.Sprintf("type must be %s or %s", model.ReportTypeHoldings, model.ReportTypeTrades)
	}

	if len(req.Rows) > MaxReportRows {
		errors["rows"] = fmt.Sprintf("rows must contain %d entries or fewer", MaxReportRows)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCommit checks a commit request: a preview token is required and every
// excluded code must be non-blank.
func ValidateCommit(req request.CommitRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.PreviewToken) == "" {
		errors["previewToken"] = "previewToken is required"
	}

	for i, code := range req.ExcludeCodes {
		if strings.TrimSpace(code) == "" {
			errors["excludeCodes"] = fmt.Sprintf("excludeCodes[%d] cannot be empty", i)
			break
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
