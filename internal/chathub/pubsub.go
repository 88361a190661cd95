package chathub

import (
	"encoding/json"
	"log"

	"lecturehub/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RunPubSub consumes the cross-instance broadcast channel and fans foreign
// messages into local rooms. Payloads published by this instance are
// skipped; their room already received them on the inbound path. Runs until
// the subscription's channel closes.
func (h *Hub) RunPubSub(pubsub *redis.PubSub) {
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var env models.BroadcastEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Printf("ignoring malformed broadcast envelope: %v", err)
			continue
		}
		if env.Origin == h.instanceID {
			continue
		}

		payload, err := json.Marshal(env.Frame)
		if err != nil {
			log.Printf("failed to encode relayed frame: %v", err)
			continue
		}
		h.registry.Broadcast(env.Room, payload)
	}
}
