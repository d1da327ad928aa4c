package service

import (
	"context"
	"strings"
	"time"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
)

// DefaultWatchlistName names the primary watchlist when the caller does not.
const DefaultWatchlistName = "Portfolio"

// UserService handles user lifecycle operations.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser creates a user together with the primary watchlist that receives new holdings.
func (s *UserService) CreateUser(ctx context.Context, name, watchlistName string) (model.User, error) {
	if strings.TrimSpace(watchlistName) == "" {
		watchlistName = DefaultWatchlistName
	}
	return s.userRepo.CreateUser(ctx, strings.TrimSpace(name), strings.TrimSpace(watchlistName), time.Now())
}

func (s *UserService) GetUser(ctx context.Context, userID string) (model.User, error) {
	return s.userRepo.GetUser(ctx, userID)
}
