package validation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ChatRequestValidator validates chat-related requests
type ChatRequestValidator struct{}

// NewChatRequestValidator creates a new ChatRequestValidator
func NewChatRequestValidator() *ChatRequestValidator {
	return &ChatRequestValidator{}
}

// ValidateTitle validates a conversation title
func (v *ChatRequestValidator) ValidateTitle(title string) error {
	if title == "" {
		return errors.New("title cannot be empty")
	}
	return nil
}

// ValidateContent validates message content
func (v *ChatRequestValidator) ValidateContent(content string) error {
	if content == "" {
		return errors.New("content cannot be empty")
	}
	return nil
}

// ValidateRole validates a message role
func (v *ChatRequestValidator) ValidateRole(role string) error {
	if role != "user" && role != "assistant" {
		return fmt.Errorf("role must be one of: user, assistant; got %q", role)
	}
	return nil
}

// ValidateMessageRequest validates a complete create-message request
func (v *ChatRequestValidator) ValidateMessageRequest(role, content string) error {
	if err := v.ValidateRole(role); err != nil {
		return err
	}
	return v.ValidateContent(content)
}

// UserUpdateRequest enumerates exactly the mutable user fields. Nil means
// the field was absent from the request.
type UserUpdateRequest struct {
	Email *string
	Role  *string
}

// ParseUserUpdate decodes a user-update body, rejecting unknown fields and
// non-string values before any store mutation.
func (v *ChatRequestValidator) ParseUserUpdate(body []byte) (*UserUpdateRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errors.New("invalid request body")
	}

	upd := &UserUpdateRequest{}
	for key, raw := range fields {
		switch key {
		case "email":
			var email string
			if err := json.Unmarshal(raw, &email); err != nil {
				return nil, errors.New("email must be a string")
			}
			upd.Email = &email
		case "role":
			var role string
			if err := json.Unmarshal(raw, &role); err != nil {
				return nil, errors.New("role must be a string")
			}
			upd.Role = &role
		default:
			return nil, fmt.Errorf("unknown field %q", key)
		}
	}
	return upd, nil
}
