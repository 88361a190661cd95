package chathub

import (
	"log"
	"sync"
)

// room holds the live connections for one pair of users. Its mutex guards
// the member set and is also held across persist-and-broadcast, which gives
// each room a total order of messages without serializing other rooms.
type room struct {
	mu      sync.Mutex
	clients map[Client]bool
	// pruned marks a room that has been removed from the registry map. A
	// pruned room never gains members again; joiners look the key up anew.
	pruned bool
}

// Registry is the process-wide map from room key to connected clients.
// Join, Leave and Broadcast are safe to call concurrently from any number
// of connections.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*room)}
}

// get returns the room for key, creating it when create is set.
func (r *Registry) get(key string, create bool) *room {
	r.mu.RLock()
	rm := r.rooms[key]
	r.mu.RUnlock()
	if rm != nil || !create {
		return rm
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rm = r.rooms[key]; rm == nil {
		rm = &room{clients: make(map[Client]bool)}
		r.rooms[key] = rm
	}
	return rm
}

// lockLive returns the room for key with its mutex held, creating it when
// absent. A concurrent Leave can prune the room between the map lookup and
// the lock; landing in such a room would strand the member outside the
// registry, so the lookup retries until it holds a live room.
func (r *Registry) lockLive(key string) *room {
	for {
		rm := r.get(key, true)
		rm.mu.Lock()
		if !rm.pruned {
			return rm
		}
		rm.mu.Unlock()
	}
}

// Join adds the client to its room's broadcast group.
func (r *Registry) Join(key string, c Client) {
	rm := r.lockLive(key)
	rm.clients[c] = true
	rm.mu.Unlock()
}

// Leave removes the client from the room. An emptied room is pruned; room
// keys are derived, so dropping the entry costs nothing.
func (r *Registry) Leave(key string, c Client) {
	rm := r.get(key, false)
	if rm == nil {
		return
	}

	rm.mu.Lock()
	delete(rm.clients, c)
	empty := len(rm.clients) == 0
	rm.mu.Unlock()

	if empty {
		r.mu.Lock()
		if cur := r.rooms[key]; cur == rm {
			cur.mu.Lock()
			if len(cur.clients) == 0 {
				cur.pruned = true
				delete(r.rooms, key)
			}
			cur.mu.Unlock()
		}
		r.mu.Unlock()
	}
}

// Count returns how many clients are currently joined to the room.
func (r *Registry) Count(key string) int {
	rm := r.get(key, false)
	if rm == nil {
		return 0
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return len(rm.clients)
}

// Broadcast delivers the payload to every client joined to the room,
// including the sender's own connection. Clients whose outbound queue is
// full are skipped rather than blocking the room.
func (r *Registry) Broadcast(key string, payload []byte) {
	rm := r.get(key, false)
	if rm == nil {
		return
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.fanOut(payload)
}

// Publish runs persist under the room lock and fans its payload out to the
// room before releasing it. Concurrent senders in the same room therefore
// broadcast in exactly the order their messages persist; senders in other
// rooms are unaffected. The message is persisted even when the room has no
// live members left.
func (r *Registry) Publish(key string, persist func() ([]byte, error)) error {
	rm := r.lockLive(key)
	defer rm.mu.Unlock()

	payload, err := persist()
	if err != nil {
		return err
	}
	rm.fanOut(payload)
	return nil
}

// fanOut must be called with the room lock held.
func (rm *room) fanOut(payload []byte) {
	for c := range rm.clients {
		select {
		case c.Send() <- payload:
		default:
			log.Printf("dropping frame for slow client %d", c.UserID())
		}
	}
}
