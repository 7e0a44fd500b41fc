package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/repos"
	"github.com/transferdesk/advising-backend/internal/requestdata"
	"github.com/transferdesk/advising-backend/internal/types"
)

type CreateRequestInput struct {
	StudentName       string `json:"student_name"`
	StudentEmail      string `json:"student_email"`
	SourceInstitution string `json:"source_institution"`
	TargetProgram     string `json:"target_program"`
}

// RequestListItem decorates a student request with the newest packet's
// status for the advisor's worklist.
type RequestListItem struct {
	*types.StudentRequest
	LatestPacketStatus    *types.PacketStatus `json:"latest_packet_status"`
	LatestPacketCreatedAt *time.Time          `json:"latest_packet_created_at"`
}

type RequestService interface {
	Create(ctx context.Context, tx *gorm.DB, in CreateRequestInput) (*types.StudentRequest, error)
	List(ctx context.Context, tx *gorm.DB) ([]*RequestListItem, error)
}

type requestService struct {
	db          *gorm.DB
	log         *logger.Logger
	requestRepo repos.StudentRequestRepo
	packetRepo  repos.PacketRepo
}

func NewRequestService(db *gorm.DB, baseLog *logger.Logger, requestRepo repos.StudentRequestRepo, packetRepo repos.PacketRepo) RequestService {
	return &requestService{
		db:          db,
		log:         baseLog.With("service", "RequestService"),
		requestRepo: requestRepo,
		packetRepo:  packetRepo,
	}
}

func (s *requestService) Create(ctx context.Context, tx *gorm.DB, in CreateRequestInput) (*types.StudentRequest, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthorized("not authenticated")
	}
	name := strings.TrimSpace(in.StudentName)
	if name == "" {
		return nil, apierr.InvalidInput("student name is required")
	}
	email := strings.TrimSpace(in.StudentEmail)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apierr.InvalidInput("invalid student email")
	}

	req := &types.StudentRequest{
		ID:                uuid.New(),
		StudentName:       name,
		StudentEmail:      email,
		SourceInstitution: strings.TrimSpace(in.SourceInstitution),
		TargetProgram:     strings.TrimSpace(in.TargetProgram),
		AdvisorID:         rd.UserID,
	}
	if _, err := s.requestRepo.Create(ctx, tx, []*types.StudentRequest{req}); err != nil {
		return nil, fmt.Errorf("create student request: %w", err)
	}
	return req, nil
}

func (s *requestService) List(ctx context.Context, tx *gorm.DB) ([]*RequestListItem, error) {
	requests, err := s.requestRepo.ListNewestFirst(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("list student requests: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	packets, err := s.packetRepo.GetByRequestIDs(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("load packets: %w", err)
	}
	// Newest-first ordering means the first packet seen per request wins.
	latest := make(map[uuid.UUID]*types.Packet, len(requests))
	for _, p := range packets {
		if _, ok := latest[p.RequestID]; !ok {
			latest[p.RequestID] = p
		}
	}

	items := make([]*RequestListItem, 0, len(requests))
	for _, r := range requests {
		item := &RequestListItem{StudentRequest: r}
		if p, ok := latest[r.ID]; ok {
			status := p.Status
			created := p.CreatedAt
			item.LatestPacketStatus = &status
			item.LatestPacketCreatedAt = &created
		}
		items = append(items, item)
	}
	return items, nil
}
