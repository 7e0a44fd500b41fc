package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/sessions"
)

type HealthHandler struct {
	db       *gorm.DB
	sessions sessions.Store
}

func NewHealthHandler(db *gorm.DB, sessionStore sessions.Store) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessionStore}
}

// HealthCheck pings postgres and redis concurrently; any failure turns the
// whole check unhealthy.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sqlDB, err := h.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(gctx)
	})
	g.Go(func() error {
		return h.sessions.Ping(gctx)
	})

	if err := g.Wait(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
