package chathub

import "errors"

// Connection-level errors are fatal to the connection they occur on and
// never touch other connections in the room. Per-operation errors
// (persistence, malformed frames) leave the connection open.
var (
	// ErrAuthentication: missing, malformed or superseded session token.
	ErrAuthentication = errors.New("chathub: authentication failed")
	// ErrAuthorization: role pairing not allowed, or self-chat.
	ErrAuthorization = errors.New("chathub: not authorized for this chat")
	// ErrNotFound: the named peer does not exist.
	ErrNotFound = errors.New("chathub: peer not found")
	// ErrPersistence: the message log failed to read or write.
	ErrPersistence = errors.New("chathub: persistence failure")
	// ErrMalformedFrame: an inbound frame failed to parse or was empty.
	ErrMalformedFrame = errors.New("chathub: malformed frame")
)
