package reconcile

import "github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"

// aliasAccessors lists, in order, the holding fields that may carry the instrument code.
var aliasAccessors = []func(model.Holding) string{
	func(h model.Holding) string { return h.ShareName },
	func(h model.Holding) string { return h.Code },
	func(h model.Holding) string { return h.ShareCode },
	func(h model.Holding) string { return h.Symbol },
}

// aliasKeys returns the normalized, non-empty aliases of a holding.
func aliasKeys(h model.Holding) []string {
	keys := make([]string, 0, len(aliasAccessors))
	for _, alias := range aliasAccessors {
		raw := alias(h)
		if raw == "" {
			continue
		}
		if key := Normalize(raw); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

type indexedHolding struct {
	holding model.Holding
	keys    []string
}

// HoldingIndex is a holdings snapshot with every alias normalized once.
// Lookups keep the snapshot order, so the first holding carrying a code wins.
type HoldingIndex struct {
	entries []indexedHolding
}

// NewHoldingIndex normalizes the aliases of each holding. The slice is not retained.
func NewHoldingIndex(holdings []model.Holding) *HoldingIndex {
	entries := make([]indexedHolding, len(holdings))
	for i, h := range holdings {
		entries[i] = indexedHolding{holding: h, keys: aliasKeys(h)}
	}
	return &HoldingIndex{entries: entries}
}

// Find returns the first holding whose aliases contain normalizedCode.
func (idx *HoldingIndex) Find(normalizedCode string) (model.Holding, bool) {
	if normalizedCode == "" {
		return model.Holding{}, false
	}
	for _, e := range idx.entries {
		for _, key := range e.keys {
			if key == normalizedCode {
				return e.holding, true
			}
		}
	}
	return model.Holding{}, false
}

// FindHolding searches holdings for normalizedCode with a first-match policy.
// If two holdings carry the same code only the first is ever returned;
// FindDuplicateAliases reports such cases.
func FindHolding(normalizedCode string, holdings []model.Holding) (model.Holding, bool) {
	return NewHoldingIndex(holdings).Find(normalizedCode)
}
