package reconcile

import (
	"math"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

// minCodeLength is the shortest normalized code accepted.
const minCodeLength = 2

// ValidationOutcome is the result of Validate.
// Reason is only set when Valid is false.
type ValidationOutcome struct {
	Valid          bool
	NormalizedCode string
	Reason         model.SkipReasonCode
}

// Validate rejects records that cannot be reconciled.
// The code is checked before the quantity, which only affects the reported reason.
func Validate(record model.ParsedRecord) ValidationOutcome {
	code := Normalize(record.Code)
	if len(code) < minCodeLength {
		return ValidationOutcome{NormalizedCode: code, Reason: model.SkipInvalidCode}
	}
	// Written as a negation so NaN is rejected too. Infinite quantities share the
	// reason; they cannot be stored as a share count.
	if !(record.Quantity > 0) || math.IsInf(record.Quantity, 1) {
		return ValidationOutcome{NormalizedCode: code, Reason: model.SkipNonPositiveQuantity}
	}
	return ValidationOutcome{Valid: true, NormalizedCode: code}
}
