package chat

import (
	"context"
	"errors"
	"fmt"

	"chatbot-backend/internal/logger"
	"chatbot-backend/internal/service/llm"
	"chatbot-backend/internal/store"

	"github.com/sirupsen/logrus"
)

// Fallback replies persisted when the completion provider cannot deliver.
// A failed upstream call still shows up as a chat turn with an apologetic
// assistant message, never as a dropped turn.
const (
	fallbackUnavailable = "I'm experiencing technical difficulties. Please try again later."
	fallbackEmpty       = "I apologize, but I couldn't generate a response at this time. Please try again."
	fallbackUnexpected  = "An unexpected error occurred. Please try again."
)

// DirectResponse is the result of a storage-less single-shot exchange.
type DirectResponse struct {
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
}

// ChatService handles the business logic for chat turns
type ChatService struct {
	store    store.Store
	provider llm.Provider
}

// NewChatService creates a new ChatService
func NewChatService(st store.Store, provider llm.Provider) *ChatService {
	return &ChatService{
		store:    st,
		provider: provider,
	}
}

// SendMessage runs one chat turn against an existing conversation: persist
// the user message, ask the provider, persist the reply (or a fallback).
// It returns the freshly created user message record.
func (s *ChatService) SendMessage(ctx context.Context, conversationID int64, content string) (*store.Message, error) {
	// The conversation must exist before anything is written.
	if _, err := s.store.GetConversation(conversationID); err != nil {
		return nil, fmt.Errorf("conversation not found: %w", err)
	}

	userMsg, err := s.store.CreateMessage(conversationID, store.RoleUser, content)
	if err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	reply := s.complete(ctx, content)

	if _, err := s.store.CreateMessage(conversationID, store.RoleAssistant, reply); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"user_message_id": userMsg.ID,
	}).Debug("Completed chat turn")

	return userMsg, nil
}

// DirectMessage runs a single-shot exchange without touching the store and
// returns both sides of the turn.
func (s *ChatService) DirectMessage(ctx context.Context, content string) *DirectResponse {
	return &DirectResponse{
		UserMessage: content,
		AIResponse:  s.complete(ctx, content),
	}
}

// complete asks the provider for a reply, substituting a fallback text on
// any failure. Provider errors never propagate past this point.
func (s *ChatService) complete(ctx context.Context, content string) string {
	reply, err := s.provider.Complete(ctx, content)
	if err == nil {
		return reply
	}

	logger.Log.WithError(err).Warn("Completion call failed, using fallback reply")
	switch {
	case errors.Is(err, llm.ErrUnavailable):
		return fallbackUnavailable
	case errors.Is(err, llm.ErrEmptyResponse):
		return fallbackEmpty
	default:
		return fallbackUnexpected
	}
}
