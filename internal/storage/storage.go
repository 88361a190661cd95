package storage

import (
	"context"

	"lecturehub/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence surface the rest of the backend depends on.
// The chat hub and the HTTP handlers only ever see this interface.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	FindUserByLogin(login string) (*models.User, error)

	// Sessions
	CreateSession(userID uint, token string) (*models.Session, error)
	InvalidateSession(userID uint) error
	// ResolveSessionToken returns the owner of the current session for the
	// token, or nil when the token matches no current session (anonymous).
	ResolveSessionToken(token string) (*models.User, error)

	// Messages
	SaveMessage(msg *models.Message) error
	GetConversation(userA, userB uint) ([]models.Message, error)
	GetSentMessages(senderID, recipientID uint) ([]models.Message, error)
	GetReceivedMessages(senderID, recipientID uint) ([]models.Message, error)
	GetMessageByID(id uint) (*models.Message, error)
	MarkMessageRead(id, readerID uint) error

	// Realtime
	PublishMessage(env models.BroadcastEnvelope) error
	AddOnlineUser(roomKey string, userID uint) error
	RemoveOnlineUser(roomKey string, userID uint) error
}

// Service implements Storage on top of PostgreSQL (via GORM) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
