package service

import (
	"context"
	"errors"
	"time"

	"farmmarket-be/internal/dto"
	"farmmarket-be/internal/entity"
	"farmmarket-be/internal/repository/specification"
	"farmmarket-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProfileService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory) IProfileService {
	return &profileService{
		uowFactory: uowFactory,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}

	return toProfileResponse(profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}

	profile.FullName = req.FullName
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.Address != nil {
		profile.Address = req.Address
	}
	profile.UpdatedAt = time.Now()

	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return nil, err
	}

	return toProfileResponse(profile), nil
}

func toProfileResponse(profile *entity.Profile) *dto.ProfileResponse {
	res := &dto.ProfileResponse{
		Id:        profile.Id,
		FullName:  profile.FullName,
		IsFarmer:  profile.IsFarmer,
		CreatedAt: profile.CreatedAt,
	}
	if profile.AvatarURL != nil {
		res.AvatarURL = *profile.AvatarURL
	}
	if profile.Phone != nil {
		res.Phone = *profile.Phone
	}
	if profile.Address != nil {
		res.Address = *profile.Address
	}
	return res
}
