package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
)

type FetchOrCreateProfileUseCase struct {
	Profiles entity.ProfileRepositoryInterface
}

func NewFetchOrCreateProfileUseCase(profiles entity.ProfileRepositoryInterface) *FetchOrCreateProfileUseCase {
	return &FetchOrCreateProfileUseCase{Profiles: profiles}
}

// Execute never fails for an authenticated caller. The bool reports whether
// the returned profile is persisted or an ephemeral default.
func (uc *FetchOrCreateProfileUseCase) Execute(ctx context.Context, userID, email string) (*entity.UserProfile, bool) {
	profile, err := uc.Profiles.FindByID(ctx, userID)
	if err == nil {
		return profile, true
	}

	if !errors.Is(err, entity.ErrProfileNotFound) {
		log.Printf("profile lookup failed for %s: %v", userID, err)
	}

	profile = entity.DefaultProfile(userID, email)

	if err := uc.Profiles.Insert(ctx, profile); err != nil {
		// Degrade to the in-memory default rather than failing the request.
		return profile, false
	}

	return profile, true
}
