package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
	"github.com/transferdesk/advising-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "advising", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.SourceProgram{},
		&types.StudentRequest{},
		&types.ContentBlock{},
		&types.Template{},
		&types.TemplateSection{},
		&types.Packet{},
		&types.PacketSection{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	// Parent-owns-children: deleting a template or packet removes its
	// sections at the database level as well.
	stmts := []string{
		`ALTER TABLE "template_section" DROP CONSTRAINT IF EXISTS "fk_template_section_template_id";`,
		`ALTER TABLE "template_section"
		   ADD CONSTRAINT "fk_template_section_template_id"
		   FOREIGN KEY ("template_id") REFERENCES "template"("id") ON DELETE CASCADE;`,
		`ALTER TABLE "packet_section" DROP CONSTRAINT IF EXISTS "fk_packet_section_packet_id";`,
		`ALTER TABLE "packet_section"
		   ADD CONSTRAINT "fk_packet_section_packet_id"
		   FOREIGN KEY ("packet_id") REFERENCES "packet"("id") ON DELETE CASCADE;`,
	}
	for _, stmt := range stmts {
		if err := s.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to configure foreign keys: %w", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
