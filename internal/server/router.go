package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/transferdesk/advising-backend/internal/handlers"
	"github.com/transferdesk/advising-backend/internal/middleware"
	"github.com/transferdesk/advising-backend/internal/observability"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	HealthHandler   *handlers.HealthHandler
	ProgramHandler  *handlers.ProgramHandler
	ContentHandler  *handlers.ContentHandler
	TemplateHandler *handlers.TemplateHandler
	RequestHandler  *handlers.RequestHandler
	PacketHandler   *handlers.PacketHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	if observability.Enabled() {
		router.Use(otelgin.Middleware("advising-backend"))
	}

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	router.POST("/api/auth/login", cfg.AuthHandler.Login)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.POST("/auth/logout", cfg.AuthHandler.Logout)
	api.GET("/auth/me", cfg.AuthHandler.Me)

	api.GET("/programs", cfg.ProgramHandler.List)
	api.GET("/content", cfg.ContentHandler.List)
	api.GET("/templates", cfg.TemplateHandler.List)
	api.GET("/templates/:id/builder", cfg.TemplateHandler.BuilderView)

	api.POST("/requests", cfg.RequestHandler.Create)
	api.GET("/requests", cfg.RequestHandler.List)

	api.POST("/packets/generate", cfg.PacketHandler.Generate)
	api.GET("/packets/:id", cfg.PacketHandler.Get)
	api.POST("/packets/finalize", cfg.PacketHandler.Finalize)
	api.PUT("/packets/:id/sections/:sid", cfg.PacketHandler.UpdateSection)
	api.POST("/packets/:id/info-blocks", cfg.PacketHandler.AddInfoBlock)
	api.POST("/packets/export", cfg.PacketHandler.Export)
	api.POST("/packets/:id/send", cfg.PacketHandler.Send)

	// Admin-only mutations of shared catalogs
	admin := api.Group("/")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())

	admin.POST("/auth/register", cfg.AuthHandler.Register)
	admin.POST("/programs", cfg.ProgramHandler.Create)
	admin.POST("/content", cfg.ContentHandler.Create)
	admin.PUT("/content/:id", cfg.ContentHandler.Update)
	admin.POST("/content/:id/deactivate", cfg.ContentHandler.Deactivate)
	admin.POST("/templates", cfg.TemplateHandler.Create)
	admin.POST("/templates/:id/sections", cfg.TemplateHandler.AddSection)
	admin.PUT("/templates/:id/sections/:sid", cfg.TemplateHandler.UpdateSection)
	admin.DELETE("/templates/:id/sections/:sid", cfg.TemplateHandler.DeleteSection)
	admin.DELETE("/templates/:id", cfg.TemplateHandler.Delete)

	return router
}

func corsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS"))
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:5173"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
