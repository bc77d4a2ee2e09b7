package handler

import (
	"net/http"

	"agentboard/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Default owner identity for the single-tenant deployment.
const (
	OwnerEmail = "owner@local"
	OwnerName  = "Local Owner"
)

type SystemHandler struct {
	db    *gorm.DB
	users *repository.UserRepository
}

func NewSystemHandler(db *gorm.DB, users *repository.UserRepository) *SystemHandler {
	return &SystemHandler{db: db, users: users}
}

// Health is pure liveness: no dependencies touched.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings the database; a failed ping reports 503 so load balancers stop
// routing here.
func (h *SystemHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Me returns the owner user, creating it on first call.
func (h *SystemHandler) Me(c *gin.Context) {
	user, err := h.users.EnsureOwner(c.Request.Context(), OwnerEmail, OwnerName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
	})
}
