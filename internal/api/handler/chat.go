// internal/api/handler/chat.go
package handler

import (
	"log/slog"
	"net/http"

	"mindmash-api/internal/service"
	"mindmash-api/internal/util"
)

// ChatHandler serves the chatbot fallback.
type ChatHandler struct {
	responder
	service service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(svc service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		responder: newResponder(logger),
		service:   svc,
	}
}

// ChatRequest represents the request body for chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat handles the chat request.
// POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithMessage(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := h.service.Reply(r.Context(), req.Message)
	if err != nil {
		if util.IsError(err, util.ErrInvalidInput) {
			h.respondWithMessage(w, http.StatusBadRequest, "Message is required")
			return
		}
		h.logger.Error("Unhandled service error", "error", err)
		h.respondWithMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respondWithJSON(w, http.StatusOK, reply)
}
