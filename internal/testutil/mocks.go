package testutil

import (
	"context"
	"errors"

	"chatbot-backend/internal/store"
)

// MockStore is a mock implementation of store.Store for testing.
// Unset funcs fall back to zero values or a "not implemented" error.
type MockStore struct {
	// User mocks
	CreateUserFunc func(username, email string) *store.User
	GetUserFunc    func(id int64) (*store.User, error)
	UpdateUserFunc func(id int64, upd store.UserUpdate) (*store.User, error)

	// Conversation mocks
	CreateConversationFunc func(userID int64, title string) *store.Conversation
	GetConversationFunc    func(id int64) (*store.Conversation, error)
	GetConversationsFunc   func(userID int64) []store.Conversation
	UpdateConversationFunc func(id int64, upd store.ConversationUpdate) (*store.Conversation, error)
	DeleteConversationFunc func(id int64) bool

	// Message mocks
	CreateMessageFunc func(conversationID int64, role, content string) (*store.Message, error)
	GetMessagesFunc   func(conversationID int64) []store.Message
}

var errNotImplemented = errors.New("not implemented")

func (m *MockStore) CreateUser(username, email string) *store.User {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(username, email)
	}
	return nil
}

func (m *MockStore) GetUser(id int64) (*store.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(id)
	}
	return nil, errNotImplemented
}

func (m *MockStore) UpdateUser(id int64, upd store.UserUpdate) (*store.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(id, upd)
	}
	return nil, errNotImplemented
}

func (m *MockStore) CreateConversation(userID int64, title string) *store.Conversation {
	if m.CreateConversationFunc != nil {
		return m.CreateConversationFunc(userID, title)
	}
	return nil
}

func (m *MockStore) GetConversation(id int64) (*store.Conversation, error) {
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(id)
	}
	return nil, errNotImplemented
}

func (m *MockStore) GetConversations(userID int64) []store.Conversation {
	if m.GetConversationsFunc != nil {
		return m.GetConversationsFunc(userID)
	}
	return nil
}

func (m *MockStore) UpdateConversation(id int64, upd store.ConversationUpdate) (*store.Conversation, error) {
	if m.UpdateConversationFunc != nil {
		return m.UpdateConversationFunc(id, upd)
	}
	return nil, errNotImplemented
}

func (m *MockStore) DeleteConversation(id int64) bool {
	if m.DeleteConversationFunc != nil {
		return m.DeleteConversationFunc(id)
	}
	return false
}

func (m *MockStore) CreateMessage(conversationID int64, role, content string) (*store.Message, error) {
	if m.CreateMessageFunc != nil {
		return m.CreateMessageFunc(conversationID, role, content)
	}
	return nil, errNotImplemented
}

func (m *MockStore) GetMessages(conversationID int64) []store.Message {
	if m.GetMessagesFunc != nil {
		return m.GetMessagesFunc(conversationID)
	}
	return nil
}

// MockProvider is a mock implementation of llm.Provider for testing
type MockProvider struct {
	CompleteFunc func(ctx context.Context, content string) (string, error)
}

func (m *MockProvider) Complete(ctx context.Context, content string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, content)
	}
	return "", errNotImplemented
}
