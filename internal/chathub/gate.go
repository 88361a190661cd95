package chathub

import (
	"errors"
	"fmt"

	"lecturehub/backend/internal/auth"
	"lecturehub/backend/internal/models"
	"lecturehub/backend/internal/storage"
)

// TokenVerifier checks a session token's signature and expiry before the
// session store is consulted. *auth.TokenManager satisfies it.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// GateState tracks where a connection is in the admission sequence.
type GateState int

const (
	StatePending GateState = iota
	StateAuthenticating
	StateRoleChecking
	StateRoomBinding
	StateAdmitted
	StateRejected
	StateClosed
)

func (s GateState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthenticating:
		return "authenticating"
	case StateRoleChecking:
		return "role_checking"
	case StateRoomBinding:
		return "room_binding"
	case StateAdmitted:
		return "admitted"
	case StateRejected:
		return "rejected"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Admission is the result of a successful gate run: the authenticated user,
// the validated peer, and the room key binding them.
type Admission struct {
	User *models.User
	Peer *models.User
	Room string
}

// Gate validates a single connection attempt before it may join a room.
// One gate is used per connection and is not safe for concurrent use.
type Gate struct {
	storage storage.Storage
	tokens  TokenVerifier
	state   GateState
}

func NewGate(s storage.Storage, tokens TokenVerifier) *Gate {
	return &Gate{storage: s, tokens: tokens, state: StatePending}
}

func (g *Gate) State() GateState { return g.state }

// Admit runs the admission sequence for a handshake carrying the given
// session token and naming peerID in its path. Any failure moves the gate
// to Rejected and returns one of the connection-level errors.
func (g *Gate) Admit(token string, peerID uint) (*Admission, error) {
	g.state = StateAuthenticating
	if _, err := g.tokens.Verify(token); err != nil {
		return g.reject(fmt.Errorf("%w: %v", ErrAuthentication, err))
	}
	user, err := g.storage.ResolveSessionToken(token)
	if err != nil {
		return g.reject(fmt.Errorf("%w: %v", ErrAuthentication, err))
	}
	if user == nil {
		return g.reject(fmt.Errorf("%w: no current session for token", ErrAuthentication))
	}

	g.state = StateRoleChecking
	peer, err := g.storage.GetUserByID(peerID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return g.reject(fmt.Errorf("%w: peer %d", ErrNotFound, peerID))
	}
	if err != nil {
		return g.reject(fmt.Errorf("%w: loading peer %d: %v", ErrPersistence, peerID, err))
	}
	if user.ID == peer.ID {
		return g.reject(fmt.Errorf("%w: cannot chat with yourself", ErrAuthorization))
	}
	if !allowedPairing(user.Role, peer.Role) {
		return g.reject(fmt.Errorf("%w: %s cannot chat with %s", ErrAuthorization, user.Role, peer.Role))
	}

	g.state = StateRoomBinding
	adm := &Admission{
		User: user,
		Peer: peer,
		Room: RoomKey(user.ID, peer.ID),
	}
	g.state = StateAdmitted
	return adm, nil
}

func (g *Gate) reject(err error) (*Admission, error) {
	g.state = StateRejected
	return nil, err
}

// allowedPairing admits exactly one lecturer and one class rep: both ends
// must hold a chat-capable role and the roles must differ.
func allowedPairing(a, b models.Role) bool {
	return a.CanChat() && b.CanChat() && a != b
}
