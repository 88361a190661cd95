package handler

import (
	"lecturehub/backend/internal/auth"
	"lecturehub/backend/internal/chathub"
	"lecturehub/backend/internal/storage"
)

// Handler carries the shared dependencies of the HTTP and websocket
// endpoints.
type Handler struct {
	Hub     *chathub.Hub
	Storage storage.Storage
	Tokens  *auth.TokenManager
}

func NewHandler(hub *chathub.Hub, s storage.Storage, tokens *auth.TokenManager) *Handler {
	return &Handler{Hub: hub, Storage: s, Tokens: tokens}
}
