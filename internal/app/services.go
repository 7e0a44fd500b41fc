package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/assembler"
	"github.com/transferdesk/advising-backend/internal/email"
	"github.com/transferdesk/advising-backend/internal/export"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/services"
	"github.com/transferdesk/advising-backend/internal/sessions"
)

type Services struct {
	Auth      services.AuthService
	Program   services.ProgramService
	Content   services.ContentService
	Template  services.TemplateService
	Request   services.RequestService
	Assembler assembler.Service
	Packet    services.PacketService
	Export    services.ExportService
	Notify    services.NotifyService

	Sessions sessions.Store
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	sessionStore := sessions.NewRedisStore(log, cfg.SessionTTL)

	authService := services.NewAuthService(db, log, repos.User, sessionStore, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	programService := services.NewProgramService(db, log, repos.SourceProgram)
	contentService := services.NewContentService(db, log, repos.ContentBlock)
	templateService := services.NewTemplateService(db, log, repos.SourceProgram, repos.Template, repos.TemplateSection, repos.ContentBlock)
	requestService := services.NewRequestService(db, log, repos.StudentRequest, repos.Packet)
	assemblerService := assembler.NewService(db, log, repos.StudentRequest, repos.Template, repos.TemplateSection, repos.ContentBlock, repos.Packet, repos.PacketSection)
	packetService := services.NewPacketService(db, log, repos.Packet, repos.PacketSection, repos.ContentBlock)

	docxRenderer := export.NewDOCXRenderer(log)
	var latexRenderer *export.LatexRenderer
	if cfg.LatexEnabled {
		lr, err := export.NewLatexRenderer(log, cfg.LatexBin)
		if err != nil {
			return Services{}, fmt.Errorf("init latex renderer: %w", err)
		}
		latexRenderer = lr
	}
	exportService := services.NewExportService(db, log, packetService, docxRenderer, latexRenderer, cfg.ExportDir)

	var mailClient email.Client
	if cfg.EmailEnabled {
		mc, err := email.New(log, email.ConfigFromEnv(log))
		if err != nil {
			return Services{}, fmt.Errorf("init email client: %w", err)
		}
		mailClient = mc
	}
	notifyService := services.NewNotifyService(db, log, packetService, exportService, mailClient)

	return Services{
		Auth:      authService,
		Program:   programService,
		Content:   contentService,
		Template:  templateService,
		Request:   requestService,
		Assembler: assemblerService,
		Packet:    packetService,
		Export:    exportService,
		Notify:    notifyService,
		Sessions:  sessionStore,
	}, nil
}
