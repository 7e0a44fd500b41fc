package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/export"
	"github.com/transferdesk/advising-backend/internal/logger"
)

const (
	ExportFormatDOCX = "docx"
	ExportFormatPDF  = "pdf"
)

// ExportService freezes nothing itself; it hands an already-frozen packet
// to a document renderer and reports the artifact path or a structured
// failure.
type ExportService interface {
	Export(ctx context.Context, tx *gorm.DB, packetID uuid.UUID, format string) (string, error)
}

type exportService struct {
	db            *gorm.DB
	log           *logger.Logger
	packetService PacketService
	docx          *export.DOCXRenderer
	latex         *export.LatexRenderer
	exportDir     string
}

func NewExportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	packetService PacketService,
	docxRenderer *export.DOCXRenderer,
	latexRenderer *export.LatexRenderer,
	exportDir string,
) ExportService {
	return &exportService{
		db:            db,
		log:           baseLog.With("service", "ExportService"),
		packetService: packetService,
		docx:          docxRenderer,
		latex:         latexRenderer,
		exportDir:     exportDir,
	}
}

func (s *exportService) Export(ctx context.Context, tx *gorm.DB, packetID uuid.UUID, format string) (string, error) {
	if format == "" {
		format = ExportFormatDOCX
	}
	packet, err := s.packetService.Get(ctx, tx, packetID)
	if err != nil {
		return "", err
	}

	switch format {
	case ExportFormatPDF:
		if s.latex == nil {
			return "", apierr.New(http.StatusServiceUnavailable, "latex_disabled", fmt.Errorf("pdf export is not enabled"))
		}
		path, err := s.latex.Render(ctx, packet, packet.Sections, s.exportDir)
		if err != nil {
			return "", fmt.Errorf("pdf export: %w", err)
		}
		return path, nil
	case ExportFormatDOCX:
		path, err := s.docx.Render(ctx, packet, packet.Sections, s.exportDir)
		if err != nil {
			return "", fmt.Errorf("docx export: %w", err)
		}
		return path, nil
	default:
		return "", apierr.InvalidInput("unknown export format %q", format)
	}
}
