package model

import "encoding/json"

// SkipReasonCode explains why a parsed record was not reconciled.
type SkipReasonCode string

const (
	SkipInvalidCode         SkipReasonCode = "INVALID_CODE"
	SkipNonPositiveQuantity SkipReasonCode = "NON_POSITIVE_QUANTITY"
)

// MatchedUpdate pairs a parsed record with the existing holding it matched.
type MatchedUpdate struct {
	Record    ParsedRecord `json:"record"`
	HoldingID string       `json:"holdingId"`
}

// NewHoldingCandidate is a valid record for which no existing holding was found.
type NewHoldingCandidate struct {
	Record         ParsedRecord `json:"record"`
	NormalizedCode string       `json:"normalizedCode"`
	IsNew          bool         `json:"isNew"`
}

// SkipReason records a rejected record by its raw code.
type SkipReason struct {
	Code   string         `json:"code"`
	Reason SkipReasonCode `json:"reason"`
}

// ClassificationResult partitions a batch of parsed records.
// Every input record appears in exactly one of the three buckets.
type ClassificationResult struct {
	Matches     []MatchedUpdate       `json:"matches"`
	NewHoldings []NewHoldingCandidate `json:"newHoldings"`
	Skipped     []SkipReason          `json:"skipped"`
}

// Total returns the number of records that were classified.
func (r ClassificationResult) Total() int {
	return len(r.Matches) + len(r.NewHoldings) + len(r.Skipped)
}

// CommitOperation is the kind of write issued for one item of a commit.
type CommitOperation string

const (
	CommitOperationUpdate CommitOperation = "update"
	CommitOperationCreate CommitOperation = "create"
)

// CommitOutcome is the settled result of a single write.
// HoldingID is the matched holding for updates and the newly assigned ID for successful creations.
type CommitOutcome struct {
	Operation CommitOperation
	Code      string
	HoldingID string
	Err       error
}

// Succeeded reports whether the write was applied.
func (o CommitOutcome) Succeeded() bool {
	return o.Err == nil
}

func (o CommitOutcome) MarshalJSON() ([]byte, error) {
	out := struct {
		Operation CommitOperation `json:"operation"`
		Code      string          `json:"code"`
		HoldingID string          `json:"holdingId,omitempty"`
		Error     string          `json:"error,omitempty"`
	}{
		Operation: o.Operation,
		Code:      o.Code,
		HoldingID: o.HoldingID,
	}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return json.Marshal(out)
}

// CommitStatus summarizes a commit in a single word.
type CommitStatus string

const (
	CommitStatusNotAttempted CommitStatus = "not_attempted"
	CommitStatusSucceeded    CommitStatus = "succeeded"
	CommitStatusPartial      CommitStatus = "partial"
	CommitStatusFailed       CommitStatus = "failed"
)

// CommitSummary aggregates the outcomes of a commit.
// Outcomes are ordered as the input: matches first, then new holdings.
type CommitSummary struct {
	Attempted  int
	Succeeded  int
	FirstError error
	Outcomes   []CommitOutcome
}

// Status distinguishes "nothing attempted" from partial and complete results.
// An empty batch with no error counts as succeeded.
func (s CommitSummary) Status() CommitStatus {
	switch {
	case s.Attempted == 0 && s.FirstError != nil:
		return CommitStatusNotAttempted
	case s.Succeeded == s.Attempted:
		return CommitStatusSucceeded
	case s.Succeeded == 0:
		return CommitStatusFailed
	default:
		return CommitStatusPartial
	}
}

// Failed returns the outcomes that were not applied, so callers can retry only those.
func (s CommitSummary) Failed() []CommitOutcome {
	var failed []CommitOutcome
	for _, o := range s.Outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}
	return failed
}

func (s CommitSummary) MarshalJSON() ([]byte, error) {
	outcomes := s.Outcomes
	if outcomes == nil {
		outcomes = []CommitOutcome{}
	}
	out := struct {
		Status    CommitStatus    `json:"status"`
		Attempted int             `json:"attempted"`
		Succeeded int             `json:"succeeded"`
		Error     string          `json:"error,omitempty"`
		Outcomes  []CommitOutcome `json:"outcomes"`
	}{
		Status:    s.Status(),
		Attempted: s.Attempted,
		Succeeded: s.Succeeded,
		Outcomes:  outcomes,
	}
	if s.FirstError != nil {
		out.Error = s.FirstError.Error()
	}
	return json.Marshal(out)
}
