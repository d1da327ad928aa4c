package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
func num(v int) *int         { return &v }

// memoryStore is an in-memory HoldingStore. Codes listed in failCreate or IDs listed
// in failUpdate are rejected with errStoreUnavailable.
type memoryStore struct {
	mu         sync.Mutex
	holdings   []model.Holding
	patches    map[string][]model.HoldingPatch
	failCreate map[string]bool
	failUpdate map[string]bool
	nextID     int
}

var errStoreUnavailable = errors.New("store unavailable")

func newMemoryStore(holdings ...model.Holding) *memoryStore {
	return &memoryStore{
		holdings:   holdings,
		patches:    make(map[string][]model.HoldingPatch),
		failCreate: make(map[string]bool),
		failUpdate: make(map[string]bool),
	}
}

func (s *memoryStore) UpdateHolding(_ context.Context, _ string, holdingID string, patch model.HoldingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdate[holdingID] {
		return errStoreUnavailable
	}
	for i := range s.holdings {
		if s.holdings[i].ID != holdingID {
			continue
		}
		if patch.PortfolioShares != nil {
			s.holdings[i].PortfolioShares = *patch.PortfolioShares
		}
		if patch.PortfolioAvgPrice != nil {
			s.holdings[i].PortfolioAvgPrice = *patch.PortfolioAvgPrice
		}
		s.holdings[i].Comments = append(s.holdings[i].Comments, patch.AppendComments...)
		s.patches[holdingID] = append(s.patches[holdingID], patch)
		return nil
	}
	return fmt.Errorf("holding %s not found", holdingID)
}

func (s *memoryStore) CreateHolding(_ context.Context, userID string, holding model.Holding) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate[holding.Code] {
		return "", errStoreUnavailable
	}
	s.nextID++
	holding.ID = fmt.Sprintf("new-%d", s.nextID)
	holding.UserID = userID
	s.holdings = append(s.holdings, holding)
	return holding.ID, nil
}

func (s *memoryStore) GetAllHoldings() []model.Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}
