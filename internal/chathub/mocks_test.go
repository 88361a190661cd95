package chathub_test

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"lecturehub/backend/internal/auth"
	"lecturehub/backend/internal/models"
	"lecturehub/backend/internal/storage"
)

// fakeVerifier accepts every token string, or fails them all when err is
// set. Token signature checks have their own tests against the real
// manager; these doubles keep the fixtures on readable literal tokens.
type fakeVerifier struct {
	err error
}

func (v *fakeVerifier) Verify(string) (*auth.Claims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &auth.Claims{}, nil
}

var allowTokens = &fakeVerifier{}

// fakeStorage is an in-memory Storage with the same observable behavior as
// the real service: session rotation keeps one current session, message
// timestamps are strictly increasing in persist order, and unknown users
// fail writes. Failure switches let tests exercise the error paths.
type fakeStorage struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	sessions []*models.Session
	messages []*models.Message

	nextMsgID uint
	baseTime  time.Time

	failSave         bool
	failConversation bool
	failUsers        bool

	published []models.BroadcastEnvelope
	online    map[string]map[uint]bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:    make(map[uint]*models.User),
		online:   make(map[string]map[uint]bool),
		baseTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStorage) addUser(id uint, role models.Role) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{ID: id, Role: role}
	f.users[id] = u
	return u
}

func (f *fakeStorage) CreateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeStorage) GetUserByID(id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUsers {
		return nil, errors.New("storage unavailable")
	}
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStorage) FindUserByLogin(login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Login() == login {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeStorage) CreateSession(userID uint, token string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	first := true
	for _, s := range f.sessions {
		if s.UserID == userID {
			first = false
			s.IsCurrent = false
		}
	}
	session := &models.Session{
		ID:           uint(len(f.sessions) + 1),
		UserID:       userID,
		Token:        token,
		IsCurrent:    true,
		IsFirstLogin: first,
	}
	f.sessions = append(f.sessions, session)
	return session, nil
}

func (f *fakeStorage) InvalidateSession(userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.IsCurrent = false
		}
	}
	return nil
}

func (f *fakeStorage) ResolveSessionToken(token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Token == token && s.IsCurrent {
			return f.users[s.UserID], nil
		}
	}
	return nil, nil
}

func (f *fakeStorage) currentSessions(userID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsCurrent {
			n++
		}
	}
	return n
}

func (f *fakeStorage) SaveMessage(msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errors.New("storage unavailable")
	}
	if _, ok := f.users[msg.SenderID]; !ok {
		return fmt.Errorf("unknown sender %d", msg.SenderID)
	}
	if _, ok := f.users[msg.RecipientID]; !ok {
		return fmt.Errorf("unknown recipient %d", msg.RecipientID)
	}
	f.nextMsgID++
	msg.ID = f.nextMsgID
	msg.Timestamp = f.baseTime.Add(time.Duration(f.nextMsgID) * time.Second)
	stored := *msg
	f.messages = append(f.messages, &stored)
	return nil
}

func (f *fakeStorage) GetConversation(userA, userB uint) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failConversation {
		return nil, errors.New("storage unavailable")
	}
	var out []models.Message
	for _, m := range f.messages {
		pair := (m.SenderID == userA && m.RecipientID == userB) ||
			(m.SenderID == userB && m.RecipientID == userA)
		if pair {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStorage) GetSentMessages(senderID, recipientID uint) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Message
	for _, m := range f.messages {
		if m.SenderID == senderID && m.RecipientID == recipientID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStorage) GetReceivedMessages(senderID, recipientID uint) ([]models.Message, error) {
	return f.GetSentMessages(recipientID, senderID)
}

func (f *fakeStorage) GetMessageByID(id uint) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, storage.ErrMessageNotFound
}

func (f *fakeStorage) MarkMessageRead(id, readerID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.ID == id && m.RecipientID == readerID && !m.IsRead {
			now := f.baseTime.Add(time.Duration(f.nextMsgID+1) * time.Second)
			m.IsRead = true
			m.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeStorage) PublishMessage(env models.BroadcastEnvelope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, env)
	return nil
}

func (f *fakeStorage) AddOnlineUser(roomKey string, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.online[roomKey] == nil {
		f.online[roomKey] = make(map[uint]bool)
	}
	f.online[roomKey][userID] = true
	return nil
}

func (f *fakeStorage) RemoveOnlineUser(roomKey string, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.online[roomKey] != nil {
		delete(f.online[roomKey], userID)
	}
	return nil
}

// mockClient is an in-memory chathub.Client that records delivered frames.
type mockClient struct {
	id   uint
	peer uint
	room string
	recv chan []byte
}

func newMockClient(id, peer uint, room string) *mockClient {
	return &mockClient{id: id, peer: peer, room: room, recv: make(chan []byte, 64)}
}

func (c *mockClient) UserID() uint        { return c.id }
func (c *mockClient) PeerID() uint        { return c.peer }
func (c *mockClient) Room() string        { return c.room }
func (c *mockClient) Send() chan<- []byte { return c.recv }
func (c *mockClient) Close()              { close(c.recv) }

// receive returns the next delivered frame, or nil when none arrives in
// time. Already-buffered frames are returned immediately, so a zero
// timeout works for synchronous delivery paths.
func (c *mockClient) receive(timeout time.Duration) []byte {
	select {
	case payload := <-c.recv:
		return payload
	default:
	}
	select {
	case payload := <-c.recv:
		return payload
	case <-time.After(timeout):
		return nil
	}
}

// drain empties the receive queue and returns everything delivered so far.
func (c *mockClient) drain() [][]byte {
	var out [][]byte
	for {
		select {
		case payload := <-c.recv:
			out = append(out, payload)
		default:
			return out
		}
	}
}
