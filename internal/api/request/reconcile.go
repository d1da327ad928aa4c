package request

import "github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"

// SimulateRequest carries a parsed brokerage report.
type SimulateRequest struct {
	Type string            `json:"type"`
	Rows []model.ReportRow `json:"rows"`
}

// CommitRequest confirms a previously simulated classification.
// Instruments listed in ExcludeCodes (any spelling that normalizes to the same code) are not written.
type CommitRequest struct {
	PreviewToken string   `json:"previewToken"`
	ExcludeCodes []string `json:"excludeCodes,omitempty"`
}
