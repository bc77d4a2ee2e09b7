// Package repository holds the gorm-backed persistence layer. Repositories
// return (nil, nil) for missing-by-id lookups; multi-row writes that must
// land together run inside a single transaction.
package repository

import (
	"context"
	"encoding/json"
	"errors"

	"agentboard/internal/model"
	"agentboard/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func createdPayload(title string) string {
	payload, _ := json.Marshal(map[string]string{"title": title})
	return string(payload)
}

type BoardRepository struct {
	db *gorm.DB
}

var _ service.BoardStore = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateBoard creates the board and its fixed column set in one transaction.
func (r *BoardRepository) CreateBoard(ctx context.Context, name string) (*model.Board, error) {
	board := &model.Board{ID: uuid.New(), Name: name}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		for i, col := range model.DefaultColumns {
			column := &model.Column{
				ID:       uuid.New(),
				BoardID:  board.ID,
				Key:      col.Key,
				Name:     col.Label,
				Position: i,
			}
			if err := tx.Create(column).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, service.ErrBoardNameTaken
	}
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (r *BoardRepository) ListBoards(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at").Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) GetBoard(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) RenameBoard(ctx context.Context, id uuid.UUID, name string) (*model.Board, error) {
	board, err := r.GetBoard(ctx, id)
	if err != nil || board == nil {
		return nil, err
	}
	board.Name = name
	if err := r.db.WithContext(ctx).Save(board).Error; err != nil {
		return nil, err
	}
	return board, nil
}

func (r *BoardRepository) ListColumns(ctx context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position").Find(&columns).Error
	return columns, err
}

func (r *BoardRepository) GetColumn(ctx context.Context, id uuid.UUID) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// CreateTask writes the task and its "created" audit event atomically.
func (r *BoardRepository) CreateTask(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		event := &model.TaskEvent{
			ID:        uuid.New(),
			TaskID:    task.ID,
			EventType: model.EventCreated,
			Payload:   createdPayload(task.Title),
		}
		return tx.Create(event).Error
	})
}

func (r *BoardRepository) ListTasks(ctx context.Context, boardID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (r *BoardRepository) GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// MutateTask loads the task, applies fn and writes the audit event, all in
// one transaction. An error from fn rolls the whole mutation back, leaving
// the task and its history untouched.
func (r *BoardRepository) MutateTask(ctx context.Context, id uuid.UUID, eventType string, fn service.TaskMutator) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}
		payload, err := fn(&task)
		if err != nil {
			return err
		}
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		event := &model.TaskEvent{
			ID:        uuid.New(),
			TaskID:    task.ID,
			EventType: eventType,
			Payload:   payload,
		}
		return tx.Create(event).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *BoardRepository) TaskHistory(ctx context.Context, taskID uuid.UUID) ([]model.TaskEvent, error) {
	var events []model.TaskEvent
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at").Find(&events).Error
	return events, err
}
