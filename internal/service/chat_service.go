// internal/service/chat_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"mindmash-api/internal/domain"
	"mindmash-api/internal/util"
)

// MaxQuotedRunes bounds how much of the user's message is echoed back.
const MaxQuotedRunes = 200

const fallbackTemplate = "Thanks for your message about %q! MindMash.ai's AI assistant is taking a short break. " +
	"Explore our NFT collection or connect your wallet to get started."

// ChatService defines the interface for the chatbot.
type ChatService interface {
	Reply(ctx context.Context, message string) (*domain.ChatReply, error)
}

type chatService struct{}

// NewChatService creates a ChatService that always answers with the fallback template.
func NewChatService() ChatService {
	return &chatService{}
}

// Reply returns the canned fallback reply quoting message.
func (s *chatService) Reply(_ context.Context, message string) (*domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, util.ErrInvalidInput
	}
	if utf8.RuneCountInString(message) > MaxQuotedRunes {
		message = string([]rune(message)[:MaxQuotedRunes])
	}
	return &domain.ChatReply{
		Reply:    fmt.Sprintf(fallbackTemplate, message),
		Fallback: true,
	}, nil
}
