// Package version holds build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/ndewijer/Holdings-Reconciler-Backend/internal/version.Version=1.2.0"
package version

var (
	Version = "dev"
	Commit  = "unknown"
)
