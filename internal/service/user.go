package service

import (
	"errors"
	"fmt"
	"log/slog"

	"imgvault/internal/model"
	"imgvault/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	tierRepo repository.TierRepository
}

func NewUserService(userRepo repository.UserRepository, tierRepo repository.TierRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		tierRepo: tierRepo,
	}
}

// ByID loads a user with their account tier resolved. A user without a tier
// (or with a dangling tier reference) is returned with a nil Tier; all policy
// queries on a nil tier fail closed.
func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.userRepo.ByID(id)
	if err != nil {
		return nil, err
	}

	if user.TierID != nil {
		tier, err := s.tierRepo.ByID(*user.TierID)
		if err != nil {
			if !errors.Is(err, repository.ErrTierNotFound) {
				return nil, fmt.Errorf("failed to load tier: %w", err)
			}
			slog.Warn("user references missing tier, treating as no permissions", "user_id", user.ID, "tier_id", *user.TierID)
		} else {
			user.Tier = tier
		}
	}

	return user, nil
}

// AssignTierByName sets the user's account tier, e.g. after a completed
// checkout.
func (s *UserService) AssignTierByName(userID, tierName string) error {
	tier, err := s.tierRepo.ByName(tierName)
	if err != nil {
		return fmt.Errorf("failed to look up tier %q: %w", tierName, err)
	}

	err = s.userRepo.UpdateTier(userID, &tier.ID)
	if err != nil {
		return fmt.Errorf("failed to assign tier: %w", err)
	}

	slog.Info("tier assigned", "user_id", userID, "tier", tierName)
	return nil
}
