package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

// DOCXRenderer turns a frozen packet into a Word document. Layout fidelity
// is best-effort: tables render as grouped, pipe-separated lines that Word
// users clean up as needed.
type DOCXRenderer struct {
	log *logger.Logger
}

func NewDOCXRenderer(baseLog *logger.Logger) *DOCXRenderer {
	return &DOCXRenderer{log: baseLog.With("service", "DOCXRenderer")}
}

func (r *DOCXRenderer) Render(ctx context.Context, packet *types.Packet, sections []*types.PacketSection, exportDir string) (string, error) {
	if packet == nil || packet.Request == nil {
		return "", fmt.Errorf("packet with request required")
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(exportDir, fmt.Sprintf("packet_%s.docx", packet.ID))

	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Transfer Advising Packet").Size("36")
	doc.AddParagraph().AddText(fmt.Sprintf("Student: %s <%s>", packet.Request.StudentName, packet.Request.StudentEmail))
	doc.AddParagraph().AddText(fmt.Sprintf("Source Institution: %s", orDash(packet.Request.SourceInstitution)))
	doc.AddParagraph().AddText(fmt.Sprintf("Target Program: %s", orDash(packet.Request.TargetProgram)))
	doc.AddParagraph()

	for _, s := range sections {
		doc.AddParagraph().AddText(s.Title).Size("28")
		switch s.ContentKind {
		case types.ContentTable, types.ContentAuditTable:
			r.writeTable(doc, s.Content)
		default:
			for _, line := range strings.Split(s.Content, "\n") {
				doc.AddParagraph().AddText(line)
			}
		}
		doc.AddParagraph()
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create docx file: %w", err)
	}
	defer f.Close()
	if _, err := doc.WriteTo(f); err != nil {
		return "", fmt.Errorf("write docx: %w", err)
	}
	r.log.Info("Rendered packet docx", "packet_id", packet.ID, "path", path)
	return path, nil
}

func (r *DOCXRenderer) writeTable(doc *docx.Docx, raw string) {
	body, err := ParseTableBody(raw)
	if err != nil {
		doc.AddParagraph().AddText("[Could not parse table]")
		return
	}
	if len(body.Columns) == 0 || len(body.Rows) == 0 {
		doc.AddParagraph().AddText("[No table data]")
		return
	}

	visible := VisibleColumns(body)
	for _, group := range GroupPlanRows(body) {
		doc.AddParagraph().AddText(group.Term).Size("24")
		doc.AddParagraph().AddText(strings.Join(visible, " | "))
		for _, row := range group.Rows {
			doc.AddParagraph().AddText(strings.Join(row, " | "))
		}
		for _, note := range group.Benchmarks {
			doc.AddParagraph().AddText("Benchmarks: " + note)
		}
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
