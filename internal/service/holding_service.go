package service

import (
	"context"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/reconcile"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
)

// HoldingService exposes a user's stored holdings.
type HoldingService struct {
	userRepo    *repository.UserRepository
	holdingRepo *repository.HoldingRepository
}

// NewHoldingService creates a new HoldingService.
func NewHoldingService(userRepo *repository.UserRepository, holdingRepo *repository.HoldingRepository) *HoldingService {
	return &HoldingService{
		userRepo:    userRepo,
		holdingRepo: holdingRepo,
	}
}

// GetHoldings returns the user's holdings in insertion order.
func (s *HoldingService) GetHoldings(ctx context.Context, userID string) ([]model.Holding, error) {
	if _, err := s.userRepo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.holdingRepo.GetAllHoldings(ctx, userID)
}

// GetDuplicateAliases lists normalized codes that more than one of the user's holdings answer to.
// Reconciliation updates only the first of them.
func (s *HoldingService) GetDuplicateAliases(ctx context.Context, userID string) ([]reconcile.DuplicateAlias, error) {
	holdings, err := s.GetHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reconcile.FindDuplicateAliases(holdings), nil
}
