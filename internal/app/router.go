package app

import (
	"github.com/gin-gonic/gin"

	"github.com/transferdesk/advising-backend/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		HealthHandler:   handlers.Health,
		ProgramHandler:  handlers.Program,
		ContentHandler:  handlers.Content,
		TemplateHandler: handlers.Template,
		RequestHandler:  handlers.Request,
		PacketHandler:   handlers.Packet,
	})
}
