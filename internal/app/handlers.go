package app

import (
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/handlers"
	"github.com/transferdesk/advising-backend/internal/logger"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
	Program  *handlers.ProgramHandler
	Content  *handlers.ContentHandler
	Template *handlers.TemplateHandler
	Request  *handlers.RequestHandler
	Packet   *handlers.PacketHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(services.Auth),
		Health:   handlers.NewHealthHandler(db, services.Sessions),
		Program:  handlers.NewProgramHandler(services.Program),
		Content:  handlers.NewContentHandler(services.Content),
		Template: handlers.NewTemplateHandler(services.Template),
		Request:  handlers.NewRequestHandler(services.Request),
		Packet:   handlers.NewPacketHandler(services.Assembler, services.Packet, services.Export, services.Notify),
	}
}
