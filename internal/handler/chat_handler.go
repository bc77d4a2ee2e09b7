package handler

import (
	"net/http"
	"time"

	"agentboard/internal/model"
	"agentboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type SessionResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

type AddMessageRequest struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type MessageResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// AddMessageResponse carries the persisted message plus the run summary when
// a completion was triggered; run is null for assistant-authored messages.
type AddMessageResponse struct {
	Message MessageResponse     `json:"message"`
	Run     *service.RunSummary `json:"run"`
}

func sessionResponse(session *model.ChatSession) SessionResponse {
	return SessionResponse{
		ID:        session.ID.String(),
		Title:     session.Title,
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
	}
}

func messageResponse(message *model.ChatMessage) MessageResponse {
	return MessageResponse{
		ID:        message.ID.String(),
		SessionID: message.SessionID.String(),
		Role:      string(message.Role),
		Content:   message.Content,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session, err := h.chat.CreateSession(c.Request.Context(), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(session))
}

func (h *ChatHandler) ListSessions(c *gin.Context) {
	sessions, err := h.chat.ListSessions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]SessionResponse, len(sessions))
	for i := range sessions {
		response[i] = sessionResponse(&sessions[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	messages, err := h.chat.ListMessages(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]MessageResponse, len(messages))
	for i := range messages {
		response[i] = messageResponse(&messages[i])
	}
	c.JSON(http.StatusOK, response)
}

// AddMessage posts a message to the session. User messages trigger a
// completion run; the response carries the assistant reply and run summary.
func (h *ChatHandler) AddMessage(c *gin.Context) {
	sessionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	message, run, err := h.chat.AddMessage(c.Request.Context(), sessionID, model.MessageRole(req.Role), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, AddMessageResponse{
		Message: messageResponse(message),
		Run:     run,
	})
}
