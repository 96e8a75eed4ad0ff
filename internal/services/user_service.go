package services

import (
	"errors"
	"strings"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSuperuserImmutable = errors.New("no está permitido modificar al superusuario")
	ErrSelfDeactivate     = errors.New("no puedes desactivarte a ti mismo")
)

// UserUpdate is what an admin may change on an account.
type UserUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
	IsActive  bool
}

type UserService interface {
	GetByID(id uint) (*models.User, error)
	Search(filter repository.UserFilter) ([]models.User, int64, error)
	// CreateUser hashes the password when given; an empty password leaves the
	// account unable to log in until an admin sets one.
	CreateUser(user *models.User, password string) error
	// UpdateUser applies an admin edit. The superuser is immutable and an
	// admin cannot flip their own active flag to false.
	UpdateUser(actorID, targetID uint, update UserUpdate) (*models.User, error)
	// ToggleActive flips the active flag, with the same self/superuser guards.
	ToggleActive(actorID, targetID uint) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) Search(filter repository.UserFilter) ([]models.User, int64, error) {
	return s.userRepo.Search(filter)
}

func (s *userService) CreateUser(user *models.User, password string) error {
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	if strings.TrimSpace(user.Role) == "" {
		user.Role = string(models.RoleClient)
	}
	return s.userRepo.Create(user)
}

func (s *userService) UpdateUser(actorID, targetID uint, update UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user.IsSuperuser {
		return nil, ErrSuperuserImmutable
	}
	if actorID == targetID && !update.IsActive {
		return nil, ErrSelfDeactivate
	}

	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Email = strings.TrimSpace(update.Email)
	if role := strings.TrimSpace(update.Role); role != "" {
		user.Role = role
	}
	user.IsActive = update.IsActive

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ToggleActive(actorID, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user.IsSuperuser {
		return nil, ErrSuperuserImmutable
	}
	if actorID == targetID && user.IsActive {
		return nil, ErrSelfDeactivate
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.SetActive(user.ID, user.IsActive); err != nil {
		return nil, err
	}
	return user, nil
}
