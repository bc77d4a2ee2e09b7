package handler

import (
	"net/http"
	"time"

	"agentboard/internal/model"
	"agentboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	boards *service.BoardService
}

func NewTaskHandler(boards *service.BoardService) *TaskHandler {
	return &TaskHandler{boards: boards}
}

type CreateTaskRequest struct {
	BoardID     string `json:"board_id" binding:"required,uuid"`
	ColumnID    string `json:"column_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=p0 p1 p2 p3"`
	Status      string `json:"status" binding:"omitempty,oneof=backlog todo in_progress blocked review done"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=p0 p1 p2 p3"`
	Status      *string `json:"status" binding:"omitempty,oneof=backlog todo in_progress blocked review done"`
	ColumnID    *string `json:"column_id" binding:"omitempty,uuid"`
}

type MoveTaskRequest struct {
	ColumnID string `json:"column_id" binding:"required,uuid"`
	Status   string `json:"status" binding:"required,oneof=backlog todo in_progress blocked review done"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	BoardID     string `json:"board_id"`
	ColumnID    string `json:"column_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type TaskEventResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	EventType string `json:"event_type"`
	Payload   string `json:"payload"`
	CreatedAt string `json:"created_at"`
}

func taskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		BoardID:     task.BoardID.String(),
		ColumnID:    task.ColumnID.String(),
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	boardID, _ := uuid.Parse(req.BoardID)
	columnID, _ := uuid.Parse(req.ColumnID)

	task, err := h.boards.CreateTask(c.Request.Context(), service.CreateTaskParams{
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.TaskPriority(req.Priority),
		Status:      model.TaskStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskResponse(task))
}

func (h *TaskHandler) ListByBoard(c *gin.Context) {
	boardID, ok := parseID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.boards.ListTasks(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.ColumnID != nil {
		columnID, err := uuid.Parse(*req.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column_id"})
			return
		}
		patch.ColumnID = &columnID
	}

	task, err := h.boards.UpdateTask(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse(task))
}

func (h *TaskHandler) Move(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	columnID, _ := uuid.Parse(req.ColumnID)
	task, err := h.boards.MoveTask(c.Request.Context(), id, columnID, model.TaskStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse(task))
}

// History returns the task's audit trail, oldest first.
func (h *TaskHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	events, err := h.boards.TaskHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]TaskEventResponse, len(events))
	for i, e := range events {
		response[i] = TaskEventResponse{
			ID:        e.ID.String(),
			TaskID:    e.TaskID.String(),
			EventType: e.EventType,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, response)
}
