package storage

import (
	"errors"
	"time"

	"lecturehub/backend/internal/models"

	"gorm.io/gorm"
)

// CreateSession activates a new current session for the user. Deactivating
// the previous sessions and creating the new one happen in one transaction,
// so there is never a window with zero or two current sessions.
func (s *Service) CreateSession(userID uint, token string) (*models.Session, error) {
	session := &models.Session{
		UserID:    userID,
		Token:     token,
		IsCurrent: true,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Session{}).
			Where("user_id = ?", userID).
			Count(&existing).Error; err != nil {
			return err
		}
		session.IsFirstLogin = existing == 0

		if err := tx.Model(&models.Session{}).
			Where("user_id = ? AND is_current = ?", userID, true).
			Update("is_current", false).Error; err != nil {
			return err
		}

		if err := tx.Create(session).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("last_login", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// InvalidateSession clears the current flag on logout. The session row
// itself is kept.
func (s *Service) InvalidateSession(userID uint) error {
	return s.DB.Model(&models.Session{}).
		Where("user_id = ? AND is_current = ?", userID, true).
		Update("is_current", false).Error
}

// ResolveSessionToken looks up the current session for the token and
// returns its owner. A missing or superseded token resolves to nil, which
// callers treat as anonymous.
func (s *Service) ResolveSessionToken(token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	var session models.Session
	err := s.DB.Preload("User").
		Where("token = ? AND is_current = ?", token, true).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session.User, nil
}
