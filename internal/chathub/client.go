package chathub

// Client is one admitted connection in a room. It abstracts the transport
// so the registry and hub can be exercised without real sockets.
type Client interface {
	// UserID returns the id of the user behind the connection.
	UserID() uint
	// PeerID returns the id of the user on the other side of the room.
	PeerID() uint
	// Room returns the key of the room the connection is bound to.
	Room() string

	// Send returns the channel the registry delivers outbound payloads on.
	// Payloads are pre-encoded frames.
	Send() chan<- []byte

	// Close releases the client's outbound channel. Called by the hub after
	// the client has left its room, never while it is still joined.
	Close()
}
