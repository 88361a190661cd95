package storage

import (
	"encoding/json"

	"lecturehub/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// broadcastChannel is the Redis channel every backend instance publishes
// live messages on, so rooms stay in sync across instances.
const broadcastChannel = "chat:broadcast"

// PublishMessage publishes a broadcast envelope for the other instances.
func (s *Service) PublishMessage(env models.BroadcastEnvelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, broadcastChannel, payload).Err()
}

// SubscribeBroadcast subscribes to the cross-instance broadcast channel.
func (s *Service) SubscribeBroadcast() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, broadcastChannel)
}

// AddOnlineUser records the user as connected in the room's presence set.
func (s *Service) AddOnlineUser(roomKey string, userID uint) error {
	return s.Redis.SAdd(s.Ctx, "online:"+roomKey, userID).Err()
}

// RemoveOnlineUser drops the user from the room's presence set.
func (s *Service) RemoveOnlineUser(roomKey string, userID uint) error {
	return s.Redis.SRem(s.Ctx, "online:"+roomKey, userID).Err()
}
