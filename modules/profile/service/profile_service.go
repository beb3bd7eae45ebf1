package service

import (
	"context"

	"hr-dashboard-api/modules/profile/entity"
	"hr-dashboard-api/modules/profile/repository"

	"github.com/google/uuid"
)

type ProfileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByIDs returns the profiles that exist among ids, in no particular order.
func (s *ProfileService) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Profile, error) {
	return s.repo.GetByIDs(ctx, ids)
}
