package store

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultTitle is the placeholder conversation title. A conversation that
// still carries it is retitled from the first user message it receives.
const DefaultTitle = "New Conversation"

// User represents a chat user
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// Conversation represents a chat conversation owned by a user
type Conversation struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents a single chat message within a conversation
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserUpdate holds the mutable user fields. Nil means "leave unchanged".
type UserUpdate struct {
	Email *string
	Role  *string
}

// ConversationUpdate holds the mutable conversation fields. Nil means
// "leave unchanged"; a zero-field update still refreshes UpdatedAt.
type ConversationUpdate struct {
	Title    *string
	IsPinned *bool
}
