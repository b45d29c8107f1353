package store

import (
	"sort"
	"sync"
	"time"
	"unicode/utf8"
)

// titleLimit is the number of leading characters of the first user message
// used when rewriting a default-titled conversation.
const titleLimit = 25

// Store defines the operations of the entity store. Services and handlers
// depend on this interface so tests can substitute a mock.
type Store interface {
	// Users
	CreateUser(username, email string) *User
	GetUser(id int64) (*User, error)
	UpdateUser(id int64, upd UserUpdate) (*User, error)

	// Conversations
	CreateConversation(userID int64, title string) *Conversation
	GetConversation(id int64) (*Conversation, error)
	GetConversations(userID int64) []Conversation
	UpdateConversation(id int64, upd ConversationUpdate) (*Conversation, error)
	DeleteConversation(id int64) bool

	// Messages
	CreateMessage(conversationID int64, role, content string) (*Message, error)
	GetMessages(conversationID int64) []Message
}

// MemStore is the in-memory implementation of Store. A single mutex guards
// the three entity maps and their ID counters, so cross-entity effects
// (cascade delete, touch-on-message-create) are atomic to every observer.
type MemStore struct {
	mu sync.RWMutex

	users         map[int64]*User
	conversations map[int64]*Conversation
	messages      map[int64]*Message

	nextUserID         int64
	nextConversationID int64
	nextMessageID      int64

	lastTick time.Time
}

// NewMemStore creates an empty store. Counters start at 1 and are never
// reused, even after deletion.
func NewMemStore() *MemStore {
	return &MemStore{
		users:              make(map[int64]*User),
		conversations:      make(map[int64]*Conversation),
		messages:           make(map[int64]*Message),
		nextUserID:         1,
		nextConversationID: 1,
		nextMessageID:      1,
	}
}

// now returns a strictly increasing timestamp. Wall clocks can tick coarsely,
// which would otherwise let two mutations share a timestamp and make recency
// ordering depend on tie-breaking alone. Callers must hold the write lock.
func (s *MemStore) now() time.Time {
	t := time.Now()
	if !t.After(s.lastTick) {
		t = s.lastTick.Add(time.Nanosecond)
	}
	s.lastTick = t
	return t
}

// --- Users ---

// CreateUser allocates the next user ID and inserts the user with the
// default role. Username uniqueness is not enforced in this scope.
func (s *MemStore) CreateUser(username, email string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &User{
		ID:       s.nextUserID,
		Username: username,
		Email:    email,
		Role:     "user",
	}
	s.nextUserID++
	s.users[user.ID] = user

	u := *user
	return &u
}

func (s *MemStore) GetUser(id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

// UpdateUser applies only the fields present in the update.
func (s *MemStore) UpdateUser(id int64, upd UserUpdate) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	u := *user
	return &u, nil
}

// --- Conversations ---

func (s *MemStore) CreateConversation(userID int64, title string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	conv := &Conversation{
		ID:        s.nextConversationID,
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextConversationID++
	s.conversations[conv.ID] = conv

	c := *conv
	return &c
}

func (s *MemStore) GetConversation(id int64) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *conv
	return &c, nil
}

// GetConversations returns the conversations owned by userID, most recently
// active first. Equal timestamps fall back to ID order, which follows
// insertion order within a process run.
func (s *MemStore) GetConversations(userID int64) []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Conversation, 0)
	for _, conv := range s.conversations {
		if conv.UserID == userID {
			result = append(result, *conv)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

// UpdateConversation applies the present fields and always refreshes
// UpdatedAt, even for a zero-field update. That zero-field form is the touch
// primitive used when a message is appended.
func (s *MemStore) UpdateConversation(id int64, upd ConversationUpdate) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.applyConversationUpdate(conv, upd)
	c := *conv
	return &c, nil
}

func (s *MemStore) applyConversationUpdate(conv *Conversation, upd ConversationUpdate) {
	if upd.Title != nil {
		conv.Title = *upd.Title
	}
	if upd.IsPinned != nil {
		conv.IsPinned = *upd.IsPinned
	}
	conv.UpdatedAt = s.now()
}

// DeleteConversation removes the conversation and all of its messages in one
// critical section. It reports false when the conversation did not exist,
// including on a repeated delete.
func (s *MemStore) DeleteConversation(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return false
	}
	for msgID, msg := range s.messages {
		if msg.ConversationID == id {
			delete(s.messages, msgID)
		}
	}
	delete(s.conversations, id)
	return true
}

// --- Messages ---

// CreateMessage inserts a message into an existing conversation. The parent
// conversation is touched, and a default-titled conversation is retitled
// from the first user message. A missing conversation is an error; no
// orphaned message is ever stored.
func (s *MemStore) CreateMessage(conversationID int64, role, content string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrNotFound
	}

	msg := &Message{
		ID:             s.nextMessageID,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      s.now(),
	}
	s.nextMessageID++
	s.messages[msg.ID] = msg

	s.applyConversationUpdate(conv, ConversationUpdate{})
	if conv.Title == DefaultTitle && role == RoleUser {
		conv.Title = truncateTitle(content)
	}

	m := *msg
	return &m, nil
}

// GetMessages returns all messages of a conversation in chronological order.
// Unknown or deleted conversations yield an empty slice.
func (s *MemStore) GetMessages(conversationID int64) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Message, 0)
	for _, msg := range s.messages {
		if msg.ConversationID == conversationID {
			result = append(result, *msg)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// truncateTitle shortens message content to a conversation title, marking
// truncation with an ellipsis.
func truncateTitle(content string) string {
	if utf8.RuneCountInString(content) <= titleLimit {
		return content
	}
	runes := []rune(content)
	return string(runes[:titleLimit]) + "..."
}
