package services

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/export"
)

func newExportFixture(t *testing.T) (ExportService, *packetFixture) {
	t.Helper()
	f := newPacketFixture(t)
	log := newTestLogger(t)

	// No latex renderer wired: pdf requests exercise the disabled branch.
	svc := NewExportService(f.db, log, f.svc, export.NewDOCXRenderer(log), nil, t.TempDir())
	return svc, f
}

func TestExportDefaultsToDocx(t *testing.T) {
	t.Parallel()
	svc, f := newExportFixture(t)

	path, err := svc.Export(context.Background(), nil, f.packet.ID, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(path, ".docx") {
		t.Fatalf("unexpected artifact path: %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat artifact: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("artifact is empty")
	}
}

func TestExportPDFDisabled(t *testing.T) {
	t.Parallel()
	svc, f := newExportFixture(t)

	_, err := svc.Export(context.Background(), nil, f.packet.ID, ExportFormatPDF)
	status, code := apierr.StatusOf(err)
	if status != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: got=%d want=%d", status, http.StatusServiceUnavailable)
	}
	if code != "latex_disabled" {
		t.Fatalf("unexpected code: got=%q want=%q", code, "latex_disabled")
	}
}

func TestExportUnknownFormat(t *testing.T) {
	t.Parallel()
	svc, f := newExportFixture(t)

	_, err := svc.Export(context.Background(), nil, f.packet.ID, "odt")
	status, _ := apierr.StatusOf(err)
	if status != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", status, http.StatusBadRequest)
	}
}

func TestExportUnknownPacket(t *testing.T) {
	t.Parallel()
	svc, _ := newExportFixture(t)

	_, err := svc.Export(context.Background(), nil, uuid.New(), "")
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
