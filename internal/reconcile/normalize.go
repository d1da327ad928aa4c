// Package reconcile matches parsed brokerage-export records against a user's
// existing holdings and turns the approved result into store writes.
//
// Everything except Committer is pure: classification can be run any number of
// times on the same snapshot, for example to preview an import before it is committed.
package reconcile

import "strings"

const (
	exchangePrefix = "ASX:"
	exchangeSuffix = ".AX"
)

// Normalize maps a raw instrument code to the key used for every comparison.
// It uppercases, trims, and strips a leading "ASX:" and a trailing ".AX".
// Stripping repeats until nothing changes, so Normalize is idempotent.
func Normalize(raw string) string {
	code := strings.TrimSpace(strings.ToUpper(raw))
	for {
		next := strings.TrimPrefix(code, exchangePrefix)
		next = strings.TrimSuffix(next, exchangeSuffix)
		next = strings.TrimSpace(next)
		if next == code {
			return code
		}
		code = next
	}
}
