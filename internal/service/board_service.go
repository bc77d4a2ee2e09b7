package service

import (
	"context"
	"encoding/json"

	"agentboard/internal/model"

	"github.com/google/uuid"
)

// BoardService owns the task workflow: board/column reads, task mutations
// validated against the status transition graph, and the audit trail written
// transactionally with every mutation.
type BoardService struct {
	store BoardStore
}

func NewBoardService(store BoardStore) *BoardService {
	return &BoardService{store: store}
}

func (s *BoardService) CreateBoard(ctx context.Context, name string) (*model.Board, error) {
	return s.store.CreateBoard(ctx, name)
}

func (s *BoardService) ListBoards(ctx context.Context) ([]model.Board, error) {
	return s.store.ListBoards(ctx)
}

// GetBoard returns the board and its columns in position order.
func (s *BoardService) GetBoard(ctx context.Context, id uuid.UUID) (*model.Board, []model.Column, error) {
	board, err := s.store.GetBoard(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if board == nil {
		return nil, nil, ErrBoardNotFound
	}
	columns, err := s.store.ListColumns(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return board, columns, nil
}

func (s *BoardService) RenameBoard(ctx context.Context, id uuid.UUID, name string) (*model.Board, error) {
	board, err := s.store.RenameBoard(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	return board, nil
}

type CreateTaskParams struct {
	BoardID     uuid.UUID
	ColumnID    uuid.UUID
	Title       string
	Description string
	Priority    model.TaskPriority
	Status      model.TaskStatus
}

func (s *BoardService) CreateTask(ctx context.Context, params CreateTaskParams) (*model.Task, error) {
	board, err := s.store.GetBoard(ctx, params.BoardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	if err := s.checkColumn(ctx, params.ColumnID, params.BoardID); err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          uuid.New(),
		BoardID:     params.BoardID,
		ColumnID:    params.ColumnID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Status:      params.Status,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityP2
	}
	if task.Status == "" {
		task.Status = model.StatusBacklog
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *BoardService) ListTasks(ctx context.Context, boardID uuid.UUID) ([]model.Task, error) {
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	return s.store.ListTasks(ctx, boardID)
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	Priority    *model.TaskPriority
	Status      *model.TaskStatus
	ColumnID    *uuid.UUID
}

// UpdateTask applies a partial patch. A requested status change is validated
// against the persisted status inside the same transaction that writes the
// "updated" audit event; an invalid transition rolls everything back.
func (s *BoardService) UpdateTask(ctx context.Context, id uuid.UUID, patch UpdateTaskParams) (*model.Task, error) {
	if patch.ColumnID != nil {
		task, err := s.store.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		if task == nil {
			return nil, ErrTaskNotFound
		}
		if err := s.checkColumn(ctx, *patch.ColumnID, task.BoardID); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.MutateTask(ctx, id, model.EventUpdated, func(task *model.Task) (string, error) {
		if patch.Status != nil && !model.CanTransition(task.Status, *patch.Status) {
			return "", &model.InvalidTransitionError{From: task.Status, To: *patch.Status}
		}
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Priority != nil {
			task.Priority = *patch.Priority
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		if patch.ColumnID != nil {
			task.ColumnID = *patch.ColumnID
		}
		payload, _ := json.Marshal(map[string]string{"task_id": id.String()})
		return string(payload), nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTaskNotFound
	}
	return updated, nil
}

// MoveTask sets column and status together, writing a "moved" audit event.
func (s *BoardService) MoveTask(ctx context.Context, id uuid.UUID, columnID uuid.UUID, status model.TaskStatus) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if err := s.checkColumn(ctx, columnID, task.BoardID); err != nil {
		return nil, err
	}

	moved, err := s.store.MutateTask(ctx, id, model.EventMoved, func(task *model.Task) (string, error) {
		if !model.CanTransition(task.Status, status) {
			return "", &model.InvalidTransitionError{From: task.Status, To: status}
		}
		task.ColumnID = columnID
		task.Status = status
		payload, _ := json.Marshal(map[string]string{
			"column_id": columnID.String(),
			"status":    string(status),
		})
		return string(payload), nil
	})
	if err != nil {
		return nil, err
	}
	if moved == nil {
		return nil, ErrTaskNotFound
	}
	return moved, nil
}

// TaskHistory returns the task's audit events ordered by creation time.
func (s *BoardService) TaskHistory(ctx context.Context, taskID uuid.UUID) ([]model.TaskEvent, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return s.store.TaskHistory(ctx, taskID)
}

func (s *BoardService) checkColumn(ctx context.Context, columnID, boardID uuid.UUID) error {
	column, err := s.store.GetColumn(ctx, columnID)
	if err != nil {
		return err
	}
	if column == nil {
		return ErrColumnNotFound
	}
	if column.BoardID != boardID {
		return ErrColumnBoardMismatch
	}
	return nil
}
