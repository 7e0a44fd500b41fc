package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/repos"
	"github.com/transferdesk/advising-backend/internal/types"
)

type ProgramService interface {
	Create(ctx context.Context, tx *gorm.DB, name string) (*types.SourceProgram, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.SourceProgram, error)
}

type programService struct {
	db          *gorm.DB
	log         *logger.Logger
	programRepo repos.SourceProgramRepo
}

func NewProgramService(db *gorm.DB, baseLog *logger.Logger, programRepo repos.SourceProgramRepo) ProgramService {
	return &programService{
		db:          db,
		log:         baseLog.With("service", "ProgramService"),
		programRepo: programRepo,
	}
}

func (s *programService) Create(ctx context.Context, tx *gorm.DB, name string) (*types.SourceProgram, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.InvalidInput("program name is required")
	}
	existing, err := s.programRepo.GetByNames(ctx, tx, []string{name})
	if err != nil {
		return nil, fmt.Errorf("check program name: %w", err)
	}
	if len(existing) > 0 {
		return nil, apierr.InvalidInput("program %q already exists", name)
	}
	program := &types.SourceProgram{
		ID:     uuid.New(),
		Name:   name,
		Active: true,
	}
	if _, err := s.programRepo.Create(ctx, tx, []*types.SourceProgram{program}); err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}
	return program, nil
}

func (s *programService) List(ctx context.Context, tx *gorm.DB) ([]*types.SourceProgram, error) {
	return s.programRepo.List(ctx, tx)
}
