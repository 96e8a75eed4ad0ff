package repository

import (
	"fmt"
	"pilates_reserva/internal/models"

	"gorm.io/gorm"
)

// UserFilter narrows and orders the back-office user listing.
type UserFilter struct {
	Query    string // matches username, first/last name or email
	Estado   string // todos, activos, inactivos
	Sort     string // id, username, nombre, email, rol, estado
	Dir      string // asc, desc
	Page     int
	PageSize int
}

// sortColumns is the allow-list of orderable columns; anything else falls
// back to id.
var sortColumns = map[string]string{
	"id":       "id",
	"username": "username",
	"nombre":   "first_name",
	"email":    "email",
	"rol":      "role",
	"estado":   "is_active",
}

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Search(filter UserFilter) ([]models.User, int64, error)
	Update(user *models.User) error
	SetActive(id uint, active bool) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Search(filter UserFilter) ([]models.User, int64, error) {
	qs := r.db.Model(&models.User{})

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		qs = qs.Where(
			"LOWER(username) LIKE LOWER(?) OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			like, like, like, like,
		)
	}
	switch filter.Estado {
	case "activos":
		qs = qs.Where("is_active = ?", true)
	case "inactivos":
		qs = qs.Where("is_active = ?", false)
	}

	var total int64
	if err := qs.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[filter.Sort]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 10
	}

	var users []models.User
	err := qs.Order(fmt.Sprintf("%s %s, id ASC", col, dir)).
		Offset((page - 1) * size).
		Limit(size).
		Find(&users).Error
	return users, total, err
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active).Error
}
