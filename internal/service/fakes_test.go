package service

import (
	"context"
	"sort"
	"time"

	"agentboard/internal/model"

	"github.com/google/uuid"
)

// fakeStore is a single in-memory implementation of all the store interfaces,
// keeping the transactional guarantees the gorm-backed store provides: task
// mutations and their events commit together or not at all.
type fakeStore struct {
	boards    map[uuid.UUID]*model.Board
	columns   map[uuid.UUID]*model.Column
	tasks     map[uuid.UUID]*model.Task
	events    []model.TaskEvent
	sessions  map[uuid.UUID]*model.ChatSession
	messages  []model.ChatMessage
	runs      map[uuid.UUID]*model.Run
	runOrder  []uuid.UUID
	documents map[uuid.UUID]*model.MemoryDocument
	chunks    []model.MemoryChunk
	vectors   map[uuid.UUID][]float64

	seq int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		boards:    make(map[uuid.UUID]*model.Board),
		columns:   make(map[uuid.UUID]*model.Column),
		tasks:     make(map[uuid.UUID]*model.Task),
		sessions:  make(map[uuid.UUID]*model.ChatSession),
		runs:      make(map[uuid.UUID]*model.Run),
		documents: make(map[uuid.UUID]*model.MemoryDocument),
		vectors:   make(map[uuid.UUID][]float64),
	}
}

// tick produces strictly increasing timestamps so ordering assertions are
// deterministic.
func (f *fakeStore) tick() time.Time {
	f.seq++
	return time.Unix(1700000000, int64(f.seq)*int64(time.Millisecond))
}

func (f *fakeStore) CreateBoard(_ context.Context, name string) (*model.Board, error) {
	for _, b := range f.boards {
		if b.Name == name {
			return nil, ErrBoardNameTaken
		}
	}
	board := &model.Board{ID: uuid.New(), Name: name, CreatedAt: f.tick()}
	f.boards[board.ID] = board
	for i, col := range model.DefaultColumns {
		column := &model.Column{
			ID:       uuid.New(),
			BoardID:  board.ID,
			Key:      col.Key,
			Name:     col.Label,
			Position: i,
		}
		f.columns[column.ID] = column
	}
	return board, nil
}

func (f *fakeStore) ListBoards(_ context.Context) ([]model.Board, error) {
	boards := make([]model.Board, 0, len(f.boards))
	for _, b := range f.boards {
		boards = append(boards, *b)
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].CreatedAt.Before(boards[j].CreatedAt) })
	return boards, nil
}

func (f *fakeStore) GetBoard(_ context.Context, id uuid.UUID) (*model.Board, error) {
	board, ok := f.boards[id]
	if !ok {
		return nil, nil
	}
	copied := *board
	return &copied, nil
}

func (f *fakeStore) RenameBoard(_ context.Context, id uuid.UUID, name string) (*model.Board, error) {
	board, ok := f.boards[id]
	if !ok {
		return nil, nil
	}
	board.Name = name
	copied := *board
	return &copied, nil
}

func (f *fakeStore) ListColumns(_ context.Context, boardID uuid.UUID) ([]model.Column, error) {
	var columns []model.Column
	for _, c := range f.columns {
		if c.BoardID == boardID {
			columns = append(columns, *c)
		}
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Position < columns[j].Position })
	return columns, nil
}

func (f *fakeStore) GetColumn(_ context.Context, id uuid.UUID) (*model.Column, error) {
	column, ok := f.columns[id]
	if !ok {
		return nil, nil
	}
	copied := *column
	return &copied, nil
}

func (f *fakeStore) CreateTask(_ context.Context, task *model.Task) error {
	task.CreatedAt = f.tick()
	copied := *task
	f.tasks[task.ID] = &copied
	f.events = append(f.events, model.TaskEvent{
		ID:        uuid.New(),
		TaskID:    task.ID,
		EventType: model.EventCreated,
		Payload:   `{"title":"` + task.Title + `"}`,
		CreatedAt: f.tick(),
	})
	return nil
}

func (f *fakeStore) ListTasks(_ context.Context, boardID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	for _, t := range f.tasks {
		if t.BoardID == boardID {
			tasks = append(tasks, *t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks, nil
}

func (f *fakeStore) GetTask(_ context.Context, id uuid.UUID) (*model.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (f *fakeStore) MutateTask(_ context.Context, id uuid.UUID, eventType string, fn TaskMutator) (*model.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	working := *task
	payload, err := fn(&working)
	if err != nil {
		return nil, err
	}
	working.UpdatedAt = f.tick()
	f.tasks[id] = &working
	f.events = append(f.events, model.TaskEvent{
		ID:        uuid.New(),
		TaskID:    id,
		EventType: eventType,
		Payload:   payload,
		CreatedAt: f.tick(),
	})
	copied := working
	return &copied, nil
}

func (f *fakeStore) TaskHistory(_ context.Context, taskID uuid.UUID) ([]model.TaskEvent, error) {
	var events []model.TaskEvent
	for _, e := range f.events {
		if e.TaskID == taskID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (f *fakeStore) CreateSession(_ context.Context, session *model.ChatSession) error {
	session.CreatedAt = f.tick()
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeStore) GetSession(_ context.Context, id uuid.UUID) (*model.ChatSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (f *fakeStore) ListSessions(_ context.Context) ([]model.ChatSession, error) {
	sessions := make([]model.ChatSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		sessions = append(sessions, *s)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.Before(sessions[j].CreatedAt) })
	return sessions, nil
}

func (f *fakeStore) AddMessage(_ context.Context, message *model.ChatMessage) error {
	message.CreatedAt = f.tick()
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeStore) ListMessages(_ context.Context, sessionID uuid.UUID) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	for _, m := range f.messages {
		if m.SessionID == sessionID {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

func (f *fakeStore) CreateRun(_ context.Context, run *model.Run) error {
	run.CreatedAt = f.tick()
	copied := *run
	f.runs[run.ID] = &copied
	f.runOrder = append(f.runOrder, run.ID)
	return nil
}

func (f *fakeStore) UpdateRunStatus(_ context.Context, id uuid.UUID, status model.RunStatus) (*model.Run, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, nil
	}
	if !run.Status.Terminal() {
		run.Status = status
		run.UpdatedAt = f.tick()
	}
	copied := *run
	return &copied, nil
}

func (f *fakeStore) ListRunsByStatus(_ context.Context, status model.RunStatus) ([]model.Run, error) {
	var runs []model.Run
	for _, id := range f.runOrder {
		if f.runs[id].Status == status {
			runs = append(runs, *f.runs[id])
		}
	}
	return runs, nil
}

func (f *fakeStore) LatestRun(_ context.Context) (*model.Run, error) {
	if len(f.runOrder) == 0 {
		return nil, nil
	}
	copied := *f.runs[f.runOrder[len(f.runOrder)-1]]
	return &copied, nil
}

func (f *fakeStore) CreateDocument(_ context.Context, doc *model.MemoryDocument) error {
	doc.CreatedAt = f.tick()
	copied := *doc
	f.documents[doc.ID] = &copied
	return nil
}

func (f *fakeStore) AddChunk(_ context.Context, chunk *model.MemoryChunk, vector []float64) error {
	chunk.CreatedAt = f.tick()
	f.chunks = append(f.chunks, *chunk)
	stored := make([]float64, len(vector))
	copy(stored, vector)
	f.vectors[chunk.ID] = stored
	return nil
}

func (f *fakeStore) ListEmbeddings(_ context.Context) ([]model.EmbeddingRecord, error) {
	records := make([]model.EmbeddingRecord, 0, len(f.chunks))
	for _, chunk := range f.chunks {
		records = append(records, model.EmbeddingRecord{
			Entry:    model.EmbeddingEntry{ID: uuid.New(), ChunkID: chunk.ID, Vector: f.vectors[chunk.ID]},
			Chunk:    chunk,
			Document: *f.documents[chunk.DocumentID],
		})
	}
	return records, nil
}

func (f *fakeStore) GetDocument(_ context.Context, id uuid.UUID) (*model.MemoryDocument, error) {
	doc, ok := f.documents[id]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}
