package handler

import (
	"net/http"

	"agentboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	agent *service.AgentService
}

func NewAgentHandler(agent *service.AgentService) *AgentHandler {
	return &AgentHandler{agent: agent}
}

// Status reports the live run projection: active/idle, per-model subagents
// and the timestamp of the most recent run.
func (h *AgentHandler) Status(c *gin.Context) {
	status, err := h.agent.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
