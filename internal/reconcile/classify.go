package reconcile

import "github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"

// Classify partitions records into matches, new holdings and skipped records.
// Buckets keep the input order. The holdings snapshot is only read.
func Classify(records []model.ParsedRecord, holdings []model.Holding) model.ClassificationResult {
	result := model.ClassificationResult{
		Matches:     []model.MatchedUpdate{},
		NewHoldings: []model.NewHoldingCandidate{},
		Skipped:     []model.SkipReason{},
	}
	idx := NewHoldingIndex(holdings)

	for _, record := range records {
		outcome := Validate(record)
		if !outcome.Valid {
			result.Skipped = append(result.Skipped, model.SkipReason{
				Code:   record.Code,
				Reason: outcome.Reason,
			})
			continue
		}

		if holding, ok := idx.Find(outcome.NormalizedCode); ok {
			result.Matches = append(result.Matches, model.MatchedUpdate{
				Record:    record,
				HoldingID: holding.ID,
			})
			continue
		}

		result.NewHoldings = append(result.NewHoldings, model.NewHoldingCandidate{
			Record:         record,
			NormalizedCode: outcome.NormalizedCode,
			IsNew:          true,
		})
	}

	return result
}

// Simulate is the preview entry point for callers that render a classification
// before asking the user to confirm it. It has no side effects.
func Simulate(records []model.ParsedRecord, holdings []model.Holding) model.ClassificationResult {
	return Classify(records, holdings)
}
