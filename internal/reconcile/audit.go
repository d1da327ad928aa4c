package reconcile

import "github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"

// DuplicateAlias is a normalized code carried by more than one holding.
// HoldingIDs is in snapshot order; the first ID is the one that receives updates.
type DuplicateAlias struct {
	Code       string   `json:"code"`
	HoldingIDs []string `json:"holdingIds"`
}

// FindDuplicateAliases reports codes that the first-match policy resolves silently.
// A holding repeating the same code across its own aliases is not a duplicate.
func FindDuplicateAliases(holdings []model.Holding) []DuplicateAlias {
	owners := make(map[string][]string)
	var order []string

	for _, h := range holdings {
		seen := make(map[string]bool)
		for _, key := range aliasKeys(h) {
			if seen[key] {
				continue
			}
			seen[key] = true
			if _, ok := owners[key]; !ok {
				order = append(order, key)
			}
			owners[key] = append(owners[key], h.ID)
		}
	}

	duplicates := []DuplicateAlias{}
	for _, code := range order {
		if ids := owners[code]; len(ids) > 1 {
			duplicates = append(duplicates, DuplicateAlias{Code: code, HoldingIDs: ids})
		}
	}
	return duplicates
}
