package handler

import (
	"net/http"
	"time"

	"agentboard/internal/service"

	"github.com/gin-gonic/gin"
)

type MemoryHandler struct {
	memory       *service.MemoryService
	defaultLimit int
}

func NewMemoryHandler(memory *service.MemoryService, defaultLimit int) *MemoryHandler {
	return &MemoryHandler{memory: memory, defaultLimit: defaultLimit}
}

type IngestRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	SourceRef string `json:"source_ref"`
}

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

type DocumentResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	SourceRef string `json:"source_ref"`
	CreatedAt string `json:"created_at"`
}

func (h *MemoryHandler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.memory.Ingest(c.Request.Context(), req.Title, req.Content, req.SourceRef)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *MemoryHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Limit == 0 {
		req.Limit = h.defaultLimit
	}

	results, err := h.memory.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *MemoryHandler) GetDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.memory.GetDocument(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DocumentResponse{
		ID:        doc.ID.String(),
		Title:     doc.Title,
		Content:   doc.Content,
		SourceRef: doc.SourceRef,
		CreatedAt: doc.CreatedAt.Format(time.RFC3339),
	})
}
