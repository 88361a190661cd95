package chathub

import "fmt"

// roomNamespace prefixes every room key so chat keys never collide with
// other Redis or registry keys.
const roomNamespace = "chat_room"

// RoomKey derives the canonical key for the room shared by two users.
// The smaller id always comes first, so RoomKey(a, b) == RoomKey(b, a) and
// the key is stable across restarts: it depends only on the pair.
func RoomKey(a, b uint) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s_%d_%d", roomNamespace, a, b)
}
