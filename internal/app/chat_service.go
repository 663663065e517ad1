package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"calories/internal/domain"
)

var (
	// ErrEmptyMessage is returned when a chat message has no text.
	ErrEmptyMessage = errors.New("message must not be empty")
	// ErrChatUnavailable is returned when no assistant model is configured.
	ErrChatUnavailable = errors.New("assistant is not configured")
	// ErrAssistantFailed wraps errors returned by the assistant model.
	ErrAssistantFailed = errors.New("assistant request failed")
)

// ChatService relays diet questions to the assistant model.
type ChatService struct {
	model domain.ChatModel
}

// NewChatService creates a ChatService. model may be nil, in which case
// every Send fails with ErrChatUnavailable.
func NewChatService(model domain.ChatModel) *ChatService {
	return &ChatService{model: model}
}

// Send answers message in the context of history.
func (s *ChatService) Send(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if s.model == nil {
		return "", ErrChatUnavailable
	}

	turns := append(conversation(history), domain.ChatMessage{Role: domain.RoleUser, Text: message})
	reply, err := s.model.Generate(ctx, turns)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssistantFailed, err)
	}
	return reply, nil
}

// conversation drops everything before the first user turn, since the model
// requires conversations to open with the user, and normalises roles.
func conversation(history []domain.ChatMessage) []domain.ChatMessage {
	start := -1
	for i, m := range history {
		if m.Role == domain.RoleUser {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}

	out := make([]domain.ChatMessage, 0, len(history)-start)
	for _, m := range history[start:] {
		role := domain.RoleModel
		if m.Role == domain.RoleUser {
			role = domain.RoleUser
		}
		out = append(out, domain.ChatMessage{Role: role, Text: m.Text})
	}
	return out
}
