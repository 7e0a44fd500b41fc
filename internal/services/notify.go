package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/email"
	"github.com/transferdesk/advising-backend/internal/logger"
)

// NotifyService exports a packet and mails the artifact to the student on
// the underlying request.
type NotifyService interface {
	SendPacket(ctx context.Context, tx *gorm.DB, packetID uuid.UUID, format string) error
}

type notifyService struct {
	db            *gorm.DB
	log           *logger.Logger
	packetService PacketService
	exportService ExportService
	mail          email.Client
}

func NewNotifyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	packetService PacketService,
	exportService ExportService,
	mailClient email.Client,
) NotifyService {
	return &notifyService{
		db:            db,
		log:           baseLog.With("service", "NotifyService"),
		packetService: packetService,
		exportService: exportService,
		mail:          mailClient,
	}
}

var contentTypeByExt = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":  "application/pdf",
}

func (s *notifyService) SendPacket(ctx context.Context, tx *gorm.DB, packetID uuid.UUID, format string) error {
	if s.mail == nil {
		return apierr.New(http.StatusServiceUnavailable, "email_disabled", fmt.Errorf("outbound email is not configured"))
	}
	packet, err := s.packetService.Get(ctx, tx, packetID)
	if err != nil {
		return err
	}
	if packet.Request == nil {
		return fmt.Errorf("packet %s has no request", packetID)
	}

	path, err := s.exportService.Export(ctx, tx, packetID, format)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read export artifact: %w", err)
	}
	ext := filepath.Ext(path)
	contentType := contentTypeByExt[ext]

	req := email.SendRequest{
		ToEmail:   packet.Request.StudentEmail,
		ToName:    packet.Request.StudentName,
		Subject:   "Your transfer advising packet",
		PlainText: fmt.Sprintf("Hi %s,\n\nYour advising packet is attached.\n", packet.Request.StudentName),
		Attachments: []email.Attachment{{
			Filename:    filepath.Base(path),
			ContentType: contentType,
			Data:        data,
		}},
	}
	if err := s.mail.Send(ctx, req); err != nil {
		return fmt.Errorf("send packet email: %w", err)
	}
	s.log.Info("Packet sent", "packet_id", packetID, "format", format)
	return nil
}
