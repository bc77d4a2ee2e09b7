package service

import (
	"context"
	"testing"

	"agentboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBoard(t *testing.T) (*BoardService, *fakeStore, *model.Board, map[string]model.Column) {
	t.Helper()
	store := newFakeStore()
	svc := NewBoardService(store)

	board, err := svc.CreateBoard(context.Background(), "Sprint 12")
	require.NoError(t, err)

	columns, err := store.ListColumns(context.Background(), board.ID)
	require.NoError(t, err)
	byKey := make(map[string]model.Column, len(columns))
	for _, c := range columns {
		byKey[c.Key] = c
	}
	return svc, store, board, byKey
}

func TestCreateBoardProvisionsDefaultColumns(t *testing.T) {
	_, store, board, byKey := setupBoard(t)

	columns, err := store.ListColumns(context.Background(), board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 6)

	for i, want := range model.DefaultColumns {
		assert.Equal(t, want.Key, columns[i].Key)
		assert.Equal(t, want.Label, columns[i].Name)
		assert.Equal(t, i, columns[i].Position)
	}
	assert.Contains(t, byKey, "backlog")
	assert.Contains(t, byKey, "done")
}

func TestCreateBoardDuplicateName(t *testing.T) {
	svc, _, _, _ := setupBoard(t)

	_, err := svc.CreateBoard(context.Background(), "Sprint 12")
	assert.ErrorIs(t, err, ErrBoardNameTaken)
}

func TestGetBoardNotFound(t *testing.T) {
	svc, _, _, _ := setupBoard(t)

	_, _, err := svc.GetBoard(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestCreateTaskDefaultsAndAudit(t *testing.T) {
	svc, store, board, byKey := setupBoard(t)

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		BoardID:  board.ID,
		ColumnID: byKey["backlog"].ID,
		Title:    "Wire up health checks",
	})
	require.NoError(t, err)

	assert.Equal(t, model.PriorityP2, task.Priority)
	assert.Equal(t, model.StatusBacklog, task.Status)

	history, err := store.TaskHistory(context.Background(), task.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.EventCreated, history[0].EventType)
	assert.Contains(t, history[0].Payload, "Wire up health checks")
}

func TestCreateTaskRejectsForeignColumn(t *testing.T) {
	svc, _, board, _ := setupBoard(t)

	other, err := svc.CreateBoard(context.Background(), "Other")
	require.NoError(t, err)
	_, otherColumns, err := svc.GetBoard(context.Background(), other.ID)
	require.NoError(t, err)

	_, err = svc.CreateTask(context.Background(), CreateTaskParams{
		BoardID:  board.ID,
		ColumnID: otherColumns[0].ID,
		Title:    "Misfiled",
	})
	assert.ErrorIs(t, err, ErrColumnBoardMismatch)
}

func TestUpdateTaskWritesUpdatedEvent(t *testing.T) {
	svc, store, board, byKey := setupBoard(t)

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		BoardID:  board.ID,
		ColumnID: byKey["backlog"].ID,
		Title:    "Initial",
	})
	require.NoError(t, err)

	title := "Renamed"
	status := model.StatusTodo
	updated, err := svc.UpdateTask(context.Background(), task.ID, UpdateTaskParams{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, model.StatusTodo, updated.Status)

	history, err := store.TaskHistory(context.Background(), task.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.EventUpdated, history[1].EventType)
	assert.Contains(t, history[1].Payload, task.ID.String())
}

func TestUpdateTaskInvalidTransitionRollsBack(t *testing.T) {
	svc, store, board, byKey := setupBoard(t)

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		BoardID:  board.ID,
		ColumnID: byKey["backlog"].ID,
		Title:    "Stuck",
	})
	require.NoError(t, err)

	done := model.StatusDone
	_, err = svc.UpdateTask(context.Background(), task.ID, UpdateTaskParams{Status: &done})

	var invalid *model.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, model.StatusBacklog, invalid.From)
	assert.Equal(t, model.StatusDone, invalid.To)

	// Status unchanged, no event written.
	persisted, err := store.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusBacklog, persisted.Status)

	history, err := store.TaskHistory(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMoveTaskWritesMovedEvent(t *testing.T) {
	svc, store, board, byKey := setupBoard(t)

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		BoardID:  board.ID,
		ColumnID: byKey["backlog"].ID,
		Title:    "Movable",
	})
	require.NoError(t, err)

	moved, err := svc.MoveTask(context.Background(), task.ID, byKey["todo"].ID, model.StatusTodo)
	require.NoError(t, err)
	assert.Equal(t, byKey["todo"].ID, moved.ColumnID)
	assert.Equal(t, model.StatusTodo, moved.Status)

	history, err := store.TaskHistory(context.Background(), task.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.EventMoved, history[1].EventType)
	assert.Contains(t, history[1].Payload, byKey["todo"].ID.String())
	assert.Contains(t, history[1].Payload, string(model.StatusTodo))
}

func TestMoveTaskSameStatusIsNoOpTransition(t *testing.T) {
	svc, _, board, byKey := setupBoard(t)

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		BoardID:  board.ID,
		ColumnID: byKey["backlog"].ID,
		Title:    "Reparked",
	})
	require.NoError(t, err)

	// Moving within the same status never trips transition validation.
	moved, err := svc.MoveTask(context.Background(), task.ID, byKey["backlog"].ID, model.StatusBacklog)
	require.NoError(t, err)
	assert.Equal(t, model.StatusBacklog, moved.Status)
}

func TestTaskHistoryUnknownTask(t *testing.T) {
	svc, _, _, _ := setupBoard(t)

	_, err := svc.TaskHistory(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestRenameBoard(t *testing.T) {
	svc, _, board, _ := setupBoard(t)

	renamed, err := svc.RenameBoard(context.Background(), board.ID, "Sprint 13")
	require.NoError(t, err)
	assert.Equal(t, "Sprint 13", renamed.Name)

	_, err = svc.RenameBoard(context.Background(), uuid.New(), "Ghost")
	assert.ErrorIs(t, err, ErrBoardNotFound)
}
