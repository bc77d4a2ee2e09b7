package service

import (
	"context"
	"fmt"

	"agentboard/internal/llm"
	"agentboard/internal/model"
	"agentboard/internal/telemetry"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RunSummary is returned alongside the assistant reply for user messages.
type RunSummary struct {
	ID       uuid.UUID        `json:"id"`
	Status   model.RunStatus  `json:"status"`
	Provider string           `json:"provider"`
	Model    string           `json:"model"`
	TraceID  string           `json:"trace_id"`
}

// ChatService drives the run lifecycle: one run per user message, delegated
// to the completion provider with the session's full message history.
type ChatService struct {
	store    ChatStore
	client   llm.Client
	tracer   telemetry.Tracer
	provider string
	model    string
}

func NewChatService(store ChatStore, client llm.Client, tracer telemetry.Tracer, provider, modelName string) *ChatService {
	return &ChatService{
		store:    store,
		client:   client,
		tracer:   tracer,
		provider: provider,
		model:    modelName,
	}
}

func (s *ChatService) CreateSession(ctx context.Context, title string) (*model.ChatSession, error) {
	if title == "" {
		title = "New Chat"
	}
	session := &model.ChatSession{ID: uuid.New(), Title: title}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ChatService) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	return s.store.ListSessions(ctx)
}

func (s *ChatService) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return s.store.ListMessages(ctx, sessionID)
}

// AddMessage persists the inbound message. For a user message it then opens a
// trace, creates a run in running status, invokes the provider with the full
// ordered session history and returns the persisted assistant reply plus a
// run summary. Assistant-authored messages are persisted and returned as-is,
// with no run. On provider failure the run is marked failed, the trace closed
// and the error propagated; the user's message stays persisted.
func (s *ChatService) AddMessage(ctx context.Context, sessionID uuid.UUID, role model.MessageRole, content string) (*model.ChatMessage, *RunSummary, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	message := &model.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	if err := s.store.AddMessage(ctx, message); err != nil {
		return nil, nil, err
	}

	switch role {
	case model.RoleAssistant:
		return message, nil, nil
	case model.RoleUser:
		return s.runCompletion(ctx, message)
	default:
		return nil, nil, fmt.Errorf("unsupported message role %q", role)
	}
}

func (s *ChatService) runCompletion(ctx context.Context, userMessage *model.ChatMessage) (*model.ChatMessage, *RunSummary, error) {
	trace := s.tracer.Start("chat.completion")

	// Runs start synchronously, so they are created directly in running
	// status; queued is reserved.
	run := &model.Run{
		ID:        uuid.New(),
		SessionID: userMessage.SessionID,
		MessageID: userMessage.ID,
		Status:    model.RunRunning,
		Provider:  s.provider,
		Model:     s.model,
		TraceID:   trace.TraceID,
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		s.tracer.End(trace, "failed")
		return nil, nil, err
	}

	// Full session history in chronological order, ending with the message
	// that triggered this run.
	messages, err := s.store.ListMessages(ctx, userMessage.SessionID)
	if err != nil {
		return nil, nil, s.failRun(ctx, run, trace, err)
	}
	history := make([]llm.Message, len(messages))
	for i, m := range messages {
		history[i] = llm.Message{Role: m.Role, Content: m.Content}
	}

	reply, err := s.client.GenerateReply(ctx, history)
	if err != nil {
		return nil, nil, s.failRun(ctx, run, trace, fmt.Errorf("%w: %v", ErrProvider, err))
	}

	assistant := &model.ChatMessage{
		ID:        uuid.New(),
		SessionID: userMessage.SessionID,
		Role:      model.RoleAssistant,
		Content:   reply.Content,
	}
	if err := s.store.AddMessage(ctx, assistant); err != nil {
		return nil, nil, s.failRun(ctx, run, trace, err)
	}

	if _, err := s.store.UpdateRunStatus(ctx, run.ID, model.RunSucceeded); err != nil {
		return nil, nil, s.failRun(ctx, run, trace, err)
	}
	s.tracer.End(trace, "succeeded")

	return assistant, &RunSummary{
		ID:       run.ID,
		Status:   model.RunSucceeded,
		Provider: reply.Provider,
		Model:    reply.Model,
		TraceID:  trace.TraceID,
	}, nil
}

// failRun marks the run failed and closes the trace before the error is
// propagated. The trigger message is deliberately left in place.
func (s *ChatService) failRun(ctx context.Context, run *model.Run, trace telemetry.TraceContext, cause error) error {
	if _, err := s.store.UpdateRunStatus(ctx, run.ID, model.RunFailed); err != nil {
		log.WithFields(log.Fields{"run_id": run.ID, "error": err}).Error("Failed to mark run as failed")
	}
	s.tracer.End(trace, "failed")
	return cause
}
