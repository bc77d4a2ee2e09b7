package repository

import (
	"context"
	"errors"

	"agentboard/internal/model"
	"agentboard/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

var (
	_ service.ChatStore = (*ChatRepository)(nil)
	_ service.RunStore  = (*ChatRepository)(nil)
)

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateSession(ctx context.Context, session *model.ChatSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *ChatRepository) GetSession(ctx context.Context, id uuid.UUID) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ChatRepository) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&sessions).Error
	return sessions, err
}

func (r *ChatRepository) AddMessage(ctx context.Context, message *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *ChatRepository) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at").Find(&messages).Error
	return messages, err
}

func (r *ChatRepository) CreateRun(ctx context.Context, run *model.Run) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// UpdateRunStatus transitions the run unless it already reached a terminal
// status; terminal runs are returned unchanged.
func (r *ChatRepository) UpdateRunStatus(ctx context.Context, id uuid.UUID, status model.RunStatus) (*model.Run, error) {
	var run model.Run
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&run).Error; err != nil {
			return err
		}
		if run.Status.Terminal() {
			return nil
		}
		run.Status = status
		return tx.Save(&run).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *ChatRepository) ListRunsByStatus(ctx context.Context, status model.RunStatus) ([]model.Run, error) {
	var runs []model.Run
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at").Find(&runs).Error
	return runs, err
}

func (r *ChatRepository) LatestRun(ctx context.Context) (*model.Run, error) {
	var run model.Run
	err := r.db.WithContext(ctx).Order("created_at desc").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
