package storage

import (
	"errors"

	"lecturehub/backend/internal/models"

	"gorm.io/gorm"
)

// ErrUserNotFound is returned when a lookup matches no user row.
var ErrUserNotFound = errors.New("storage: user not found")

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByLogin resolves a login identifier, which is either a lecturer
// email or a student matric number.
func (s *Service) FindUserByLogin(login string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ? OR matric_number = ?", login, login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
