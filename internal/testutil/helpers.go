package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
)

// TestPreviewTTL is the preview token lifetime used by test services.
const TestPreviewTTL = 10 * time.Minute

func NewTestPreviewSealer(t *testing.T) *service.PreviewSealer {
	t.Helper()

	sealer, err := service.NewPreviewSealer("", TestPreviewTTL)
	if err != nil {
		t.Fatalf("Failed to create preview sealer: %v", err)
	}
	return sealer
}

// NewTestReconcileService wires a ReconcileService with an uncached snapshot so
// tests always see the database as written.
func NewTestReconcileService(t *testing.T, db *sql.DB) *service.ReconcileService {
	t.Helper()

	return service.NewReconcileService(
		repository.NewUserRepository(db),
		repository.NewWatchlistRepository(db),
		repository.NewHoldingRepository(db),
		NewTestPreviewSealer(t),
		time.Nanosecond,
		4,
	)
}

func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()

	return service.NewHoldingService(
		repository.NewUserRepository(db),
		repository.NewHoldingRepository(db),
	)
}

func NewTestUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()

	return service.NewUserService(repository.NewUserRepository(db))
}

func NewTestAuditService(t *testing.T, db *sql.DB) *service.AuditService {
	t.Helper()

	return service.NewAuditService(
		repository.NewUserRepository(db),
		repository.NewHoldingRepository(db),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeName generates a unique display name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Alice")
//	// Returns: "Alice ABC123"
func MakeName(base string) string {
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))] //#nosec G404 -- test data only
	}
	return string(b)
}
