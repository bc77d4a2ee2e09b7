package handler

import (
	"net/http"
	"time"

	"agentboard/internal/model"
	"agentboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards *service.BoardService
}

func NewBoardHandler(boards *service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type ColumnResponse struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type BoardResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt string           `json:"created_at"`
	Columns   []ColumnResponse `json:"columns,omitempty"`
}

func boardResponse(board *model.Board, columns []model.Column) BoardResponse {
	resp := BoardResponse{
		ID:        board.ID.String(),
		Name:      board.Name,
		CreatedAt: board.CreatedAt.Format(time.RFC3339),
	}
	for _, col := range columns {
		resp.Columns = append(resp.Columns, ColumnResponse{
			ID:       col.ID.String(),
			Key:      col.Key,
			Name:     col.Name,
			Position: col.Position,
		})
	}
	return resp
}

func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.CreateBoard(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, boardResponse(board, nil))
}

func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.boards.ListBoards(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = boardResponse(&boards[i], nil)
	}
	c.JSON(http.StatusOK, response)
}

// Get returns the board with its columns in position order.
func (h *BoardHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	board, columns, err := h.boards.GetBoard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardResponse(board, columns))
}

func (h *BoardHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.boards.RenameBoard(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardResponse(board, nil))
}
