package services

import (
	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
)

type ProfileService interface {
	Create(profile *models.Profile) error
	GetByID(id uint) (*models.Profile, error)
	GetByUserID(userID uint) (*models.Profile, error)
	GetAll() ([]models.Profile, error)
	Update(profile *models.Profile) error
	Delete(id uint) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Create(profile *models.Profile) error {
	return s.profileRepo.Create(profile)
}

func (s *profileService) GetByID(id uint) (*models.Profile, error) {
	return s.profileRepo.GetByID(id)
}

func (s *profileService) GetByUserID(userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(userID)
}

func (s *profileService) GetAll() ([]models.Profile, error) {
	return s.profileRepo.GetAll()
}

func (s *profileService) Update(profile *models.Profile) error {
	return s.profileRepo.Update(profile)
}

func (s *profileService) Delete(id uint) error {
	return s.profileRepo.Delete(id)
}
