// Package service holds the core operations behind the HTTP boundary: the
// task workflow, the chat run lifecycle, the retrieval index and the agent
// status projection. Services depend on narrow store interfaces so storage
// can be substituted in tests.
package service

import (
	"context"

	"agentboard/internal/model"

	"github.com/google/uuid"
)

// TaskMutator is applied to a task inside the storage transaction that also
// writes the audit event. It returns the event payload, or an error to roll
// the whole mutation back.
type TaskMutator func(task *model.Task) (payload string, err error)

// BoardStore persists boards, columns, tasks and task events. Missing-by-id
// lookups return (nil, nil).
type BoardStore interface {
	CreateBoard(ctx context.Context, name string) (*model.Board, error)
	ListBoards(ctx context.Context) ([]model.Board, error)
	GetBoard(ctx context.Context, id uuid.UUID) (*model.Board, error)
	RenameBoard(ctx context.Context, id uuid.UUID, name string) (*model.Board, error)
	ListColumns(ctx context.Context, boardID uuid.UUID) ([]model.Column, error)
	GetColumn(ctx context.Context, id uuid.UUID) (*model.Column, error)

	// CreateTask writes the task and its "created" event in one transaction.
	CreateTask(ctx context.Context, task *model.Task) error
	ListTasks(ctx context.Context, boardID uuid.UUID) ([]model.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*model.Task, error)
	// MutateTask fetches the task, applies fn and writes the audit event as a
	// single atomic unit. It returns (nil, nil) when the task does not exist
	// and rolls back without writing anything when fn fails.
	MutateTask(ctx context.Context, id uuid.UUID, eventType string, fn TaskMutator) (*model.Task, error)
	TaskHistory(ctx context.Context, taskID uuid.UUID) ([]model.TaskEvent, error)
}

// ChatStore persists sessions, messages and runs.
type ChatStore interface {
	CreateSession(ctx context.Context, session *model.ChatSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*model.ChatSession, error)
	ListSessions(ctx context.Context) ([]model.ChatSession, error)
	AddMessage(ctx context.Context, message *model.ChatMessage) error
	ListMessages(ctx context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error)
	CreateRun(ctx context.Context, run *model.Run) error
	// UpdateRunStatus leaves runs already in a terminal status untouched.
	UpdateRunStatus(ctx context.Context, id uuid.UUID, status model.RunStatus) (*model.Run, error)
}

// RunStore is the read side the agent status projection is built from.
type RunStore interface {
	ListRunsByStatus(ctx context.Context, status model.RunStatus) ([]model.Run, error)
	LatestRun(ctx context.Context) (*model.Run, error)
}

// MemoryStore persists documents, chunks and their embeddings.
type MemoryStore interface {
	CreateDocument(ctx context.Context, doc *model.MemoryDocument) error
	// AddChunk writes the chunk and its embedding entry together.
	AddChunk(ctx context.Context, chunk *model.MemoryChunk, vector []float64) error
	ListEmbeddings(ctx context.Context) ([]model.EmbeddingRecord, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*model.MemoryDocument, error)
}
