// Package handler exposes the HTTP surface. Handlers bind and validate
// request bodies, delegate to services, and translate service errors into
// status codes.
package handler

import (
	"errors"
	"net/http"

	"agentboard/internal/model"
	"agentboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// respondError maps service errors onto HTTP status codes. Unknown errors
// become an opaque 500; the cause is logged, never leaked.
func respondError(c *gin.Context, err error) {
	var invalid *model.InvalidTransitionError

	switch {
	case errors.Is(err, service.ErrBoardNotFound),
		errors.Is(err, service.ErrColumnNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	case errors.Is(err, service.ErrColumnBoardMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBoardNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProvider):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseID reads a uuid path parameter, responding 400 on malformed input.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
