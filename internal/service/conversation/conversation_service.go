package conversation

import (
	"fmt"

	"chatbot-backend/internal/store"
)

// ConversationService handles the business logic for conversation management
type ConversationService struct {
	store store.Store
}

// NewConversationService creates a new ConversationService
func NewConversationService(st store.Store) *ConversationService {
	return &ConversationService{
		store: st,
	}
}

// ListConversations retrieves all conversations for a user, most recently
// active first.
func (s *ConversationService) ListConversations(userID int64) []store.Conversation {
	return s.store.GetConversations(userID)
}

// CreateConversation creates a new conversation owned by the user.
func (s *ConversationService) CreateConversation(userID int64, title string) *store.Conversation {
	return s.store.CreateConversation(userID, title)
}

// UpdateConversation applies a partial update and returns the updated record.
func (s *ConversationService) UpdateConversation(id int64, upd store.ConversationUpdate) (*store.Conversation, error) {
	conv, err := s.store.UpdateConversation(id, upd)
	if err != nil {
		return nil, fmt.Errorf("conversation not found: %w", err)
	}
	return conv, nil
}

// DeleteConversation removes a conversation and all of its messages.
func (s *ConversationService) DeleteConversation(id int64) error {
	if !s.store.DeleteConversation(id) {
		return fmt.Errorf("conversation not found: %w", store.ErrNotFound)
	}
	return nil
}

// ListMessages retrieves all messages of a conversation in chronological
// order.
func (s *ConversationService) ListMessages(conversationID int64) []store.Message {
	return s.store.GetMessages(conversationID)
}
