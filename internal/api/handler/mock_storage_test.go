package handler_test

import (
	"lecturehub/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface for
// handler tests.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) FindUserByLogin(login string) (*models.User, error) {
	args := m.Called(login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) CreateSession(userID uint, token string) (*models.Session, error) {
	args := m.Called(userID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockStorage) InvalidateSession(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) ResolveSessionToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetConversation(userA, userB uint) ([]models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) GetSentMessages(senderID, recipientID uint) ([]models.Message, error) {
	args := m.Called(senderID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) GetReceivedMessages(senderID, recipientID uint) ([]models.Message, error) {
	args := m.Called(senderID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) GetMessageByID(id uint) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) MarkMessageRead(id, readerID uint) error {
	args := m.Called(id, readerID)
	return args.Error(0)
}

func (m *MockStorage) PublishMessage(env models.BroadcastEnvelope) error {
	args := m.Called(env)
	return args.Error(0)
}

func (m *MockStorage) AddOnlineUser(roomKey string, userID uint) error {
	args := m.Called(roomKey, userID)
	return args.Error(0)
}

func (m *MockStorage) RemoveOnlineUser(roomKey string, userID uint) error {
	args := m.Called(roomKey, userID)
	return args.Error(0)
}
