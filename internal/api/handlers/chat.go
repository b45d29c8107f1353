package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"chatbot-backend/internal/app"
	"chatbot-backend/internal/logger"
	chatService "chatbot-backend/internal/service/chat"
	conversationService "chatbot-backend/internal/service/conversation"
	"chatbot-backend/internal/service/llm"
	"chatbot-backend/internal/store"
	"chatbot-backend/pkg/validation"

	"github.com/sirupsen/logrus"
)

// Request/Response types

type ConversationCreateRequest struct {
	Title string `json:"title"`
}

type ConversationUpdateRequest struct {
	Title    *string `json:"title,omitempty"`
	IsPinned *bool   `json:"is_pinned,omitempty"`
}

type MessageCreateRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	// Attachments are accepted but not persisted in this scope.
	Attachments []string `json:"attachments,omitempty"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ChatHandlers translates the HTTP surface into service and store calls
type ChatHandlers struct {
	config              *app.Config
	validator           *validation.ChatRequestValidator
	chatService         *chatService.ChatService
	conversationService *conversationService.ConversationService
}

// NewChatHandlers creates a new ChatHandlers with the service layer wired up
func NewChatHandlers(config *app.Config, provider llm.Provider) *ChatHandlers {
	return &ChatHandlers{
		config:              config,
		validator:           validation.NewChatRequestValidator(),
		chatService:         chatService.NewChatService(config.Store, provider),
		conversationService: conversationService.NewConversationService(config.Store),
	}
}

// Routes registers all API routes on the mux using Go 1.22+ method and
// path-parameter patterns.
func (ch *ChatHandlers) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", ch.HealthHandler)
	mux.HandleFunc("POST /api/chat", ch.ChatHandler)

	mux.HandleFunc("GET /api/conversations", ch.GetConversationsHandler)
	mux.HandleFunc("POST /api/conversations", ch.CreateConversationHandler)
	mux.HandleFunc("PATCH /api/conversations/{id}", ch.UpdateConversationHandler)
	mux.HandleFunc("DELETE /api/conversations/{id}", ch.DeleteConversationHandler)
	mux.HandleFunc("GET /api/conversations/{id}/messages", ch.GetMessagesHandler)
	mux.HandleFunc("POST /api/conversations/{id}/messages", ch.CreateMessageHandler)

	mux.HandleFunc("GET /api/user", ch.GetUserHandler)
	mux.HandleFunc("PATCH /api/user", ch.UpdateUserHandler)
}

// HealthHandler reports process liveness
func (ch *ChatHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// GetConversationsHandler returns the configured user's conversations,
// most recently active first
func (ch *ChatHandlers) GetConversationsHandler(w http.ResponseWriter, r *http.Request) {
	conversations := ch.conversationService.ListConversations(ch.config.AppConfig.Chat.DefaultUserID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conversations)
}

// CreateConversationHandler creates a new conversation for the configured user
func (ch *ChatHandlers) CreateConversationHandler(w http.ResponseWriter, r *http.Request) {
	var req ConversationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := ch.validator.ValidateTitle(req.Title); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	conv := ch.conversationService.CreateConversation(ch.config.AppConfig.Chat.DefaultUserID, req.Title)
	logger.Log.WithFields(logrus.Fields{"conversation_id": conv.ID}).Info("Conversation created")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conv)
}

// UpdateConversationHandler applies a partial update to a conversation
func (ch *ChatHandlers) UpdateConversationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := ch.conversationID(w, r)
	if !ok {
		return
	}

	var req ConversationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	conv, err := ch.conversationService.UpdateConversation(id, store.ConversationUpdate{
		Title:    req.Title,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		ch.sendError(w, http.StatusNotFound, "Conversation not found", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conv)
}

// DeleteConversationHandler deletes a conversation and all of its messages
func (ch *ChatHandlers) DeleteConversationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := ch.conversationID(w, r)
	if !ok {
		return
	}

	if err := ch.conversationService.DeleteConversation(id); err != nil {
		ch.sendError(w, http.StatusNotFound, "Conversation not found", err)
		return
	}
	logger.Log.WithFields(logrus.Fields{"conversation_id": id}).Info("Conversation deleted")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DeleteResponse{
		Success: true,
		Message: "Conversation deleted successfully",
	})
}

// GetMessagesHandler returns all messages of a conversation in
// chronological order
func (ch *ChatHandlers) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := ch.conversationID(w, r)
	if !ok {
		return
	}

	messages := ch.conversationService.ListMessages(id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// CreateMessageHandler runs one chat turn against a conversation and
// returns the created user message
func (ch *ChatHandlers) CreateMessageHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := ch.conversationID(w, r)
	if !ok {
		return
	}

	var req MessageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := ch.validator.ValidateMessageRequest(req.Role, req.Content); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"conversation_id": id,
		"content_chars":   len(req.Content),
	}).Info("Chat message received")

	userMsg, err := ch.chatService.SendMessage(r.Context(), id, req.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ch.sendError(w, http.StatusNotFound, "Conversation not found", err)
			return
		}
		logger.Log.WithError(err).Error("Error from chat service")
		ch.sendError(w, http.StatusInternalServerError, "Error processing message", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userMsg)
}

// ChatHandler is the storage-less single-shot chat endpoint
func (ch *ChatHandlers) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := ch.validator.ValidateContent(req.Message); err != nil {
		ch.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	resp := ch.chatService.DirectMessage(r.Context(), req.Message)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetUserHandler returns the configured user's record
func (ch *ChatHandlers) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := ch.config.Store.GetUser(ch.config.AppConfig.Chat.DefaultUserID)
	if err != nil {
		ch.sendError(w, http.StatusNotFound, "User not found", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// UpdateUserHandler applies a whitelisted partial update to the configured
// user's record
func (ch *ChatHandlers) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	upd, err := ch.validator.ParseUserUpdate(body)
	if err != nil {
		ch.sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	user, err := ch.config.Store.UpdateUser(ch.config.AppConfig.Chat.DefaultUserID, store.UserUpdate{
		Email: upd.Email,
		Role:  upd.Role,
	})
	if err != nil {
		ch.sendError(w, http.StatusNotFound, "User not found", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// Helper methods

// conversationID parses the {id} path parameter, answering 400 on garbage.
func (ch *ChatHandlers) conversationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		ch.sendError(w, http.StatusBadRequest, "Invalid conversation ID", err)
		return 0, false
	}
	return id, true
}

// sendError sends a standardized JSON error response
func (ch *ChatHandlers) sendError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := ErrorResponse{
		Code:    status,
		Message: message,
	}
	if err != nil {
		errResp.Error = err.Error()
	}
	json.NewEncoder(w).Encode(errResp)
}
