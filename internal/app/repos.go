package app

import (
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/repos"
)

type Repos struct {
	User            repos.UserRepo
	SourceProgram   repos.SourceProgramRepo
	ContentBlock    repos.ContentBlockRepo
	StudentRequest  repos.StudentRequestRepo
	Template        repos.TemplateRepo
	TemplateSection repos.TemplateSectionRepo
	Packet          repos.PacketRepo
	PacketSection   repos.PacketSectionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		SourceProgram:   repos.NewSourceProgramRepo(db, log),
		ContentBlock:    repos.NewContentBlockRepo(db, log),
		StudentRequest:  repos.NewStudentRequestRepo(db, log),
		Template:        repos.NewTemplateRepo(db, log),
		TemplateSection: repos.NewTemplateSectionRepo(db, log),
		Packet:          repos.NewPacketRepo(db, log),
		PacketSection:   repos.NewPacketSectionRepo(db, log),
	}
}
