package storage

import (
	"errors"
	"log"

	"lecturehub/backend/internal/models"

	"gorm.io/gorm"
)

// ErrMessageNotFound is returned when a message lookup matches no row.
var ErrMessageNotFound = errors.New("storage: message not found")

// SaveMessage appends a new message. The timestamp is assigned by the
// database; foreign keys reject unknown sender or recipient ids.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: failed to save message from %d to %d: %v", msg.SenderID, msg.RecipientID, err)
		return err
	}
	return nil
}

// GetConversation returns every message exchanged between the two users,
// ascending by timestamp. Safe to call repeatedly; there is no cursor.
func (s *Service) GetConversation(userA, userB uint) ([]models.Message, error) {
	var messages []models.Message
	pair := []uint{userA, userB}
	err := s.DB.Where("sender_id IN ? AND recipient_id IN ?", pair, pair).
		Order("timestamp asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: failed to load conversation %d/%d: %v", userA, userB, err)
		return nil, err
	}
	return messages, nil
}

// GetSentMessages returns the messages senderID sent to recipientID, for
// the direction-split REST mirror of the history.
func (s *Service) GetSentMessages(senderID, recipientID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		Order("timestamp asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Service) GetReceivedMessages(senderID, recipientID uint) ([]models.Message, error) {
	return s.GetSentMessages(recipientID, senderID)
}

func (s *Service) GetMessageByID(id uint) (*models.Message, error) {
	var msg models.Message
	err := s.DB.First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkMessageRead flips the read-tracking fields for the recipient.
// Idempotent: once is_read is set, further calls match no row and leave
// read_at untouched.
func (s *Service) MarkMessageRead(id, readerID uint) error {
	return s.DB.Model(&models.Message{}).
		Where("id = ? AND recipient_id = ? AND is_read = ?", id, readerID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": gorm.Expr("NOW()"),
		}).Error
}
