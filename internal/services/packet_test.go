package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/repos"
	"github.com/transferdesk/advising-backend/internal/types"
)

type packetFixture struct {
	db       *gorm.DB
	svc      PacketService
	blocks   repos.ContentBlockRepo
	pktSecs  repos.PacketSectionRepo
	packet   *types.Packet
	sections []*types.PacketSection
}

func newPacketFixture(t *testing.T) *packetFixture {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()

	userRepo := repos.NewUserRepo(db, log)
	requestRepo := repos.NewStudentRequestRepo(db, log)
	programRepo := repos.NewSourceProgramRepo(db, log)
	templateRepo := repos.NewTemplateRepo(db, log)
	blockRepo := repos.NewContentBlockRepo(db, log)
	packetRepo := repos.NewPacketRepo(db, log)
	packetSectionRepo := repos.NewPacketSectionRepo(db, log)

	advisor := &types.User{ID: uuid.New(), Email: "advisor@umbc.edu", PasswordHash: "x", Role: "advisor"}
	if _, err := userRepo.Create(ctx, nil, []*types.User{advisor}); err != nil {
		t.Fatalf("create advisor: %v", err)
	}
	req := &types.StudentRequest{
		ID: uuid.New(), StudentName: "Dana Smith", StudentEmail: "dana@example.edu", AdvisorID: advisor.ID,
	}
	if _, err := requestRepo.Create(ctx, nil, []*types.StudentRequest{req}); err != nil {
		t.Fatalf("create request: %v", err)
	}
	program := &types.SourceProgram{ID: uuid.New(), Name: "Computer Science BS", Active: true}
	if _, err := programRepo.Create(ctx, nil, []*types.SourceProgram{program}); err != nil {
		t.Fatalf("create program: %v", err)
	}
	tpl := &types.Template{ID: uuid.New(), ProgramID: program.ID, Name: "CS v1", Active: true}
	if _, err := templateRepo.Create(ctx, nil, []*types.Template{tpl}); err != nil {
		t.Fatalf("create template: %v", err)
	}

	packet := &types.Packet{ID: uuid.New(), RequestID: req.ID, TemplateID: tpl.ID, Status: types.PacketDraft}
	if _, err := packetRepo.Create(ctx, nil, []*types.Packet{packet}); err != nil {
		t.Fatalf("create packet: %v", err)
	}
	sections := []*types.PacketSection{
		{ID: uuid.New(), PacketID: packet.ID, Title: "Introduction", DisplayOrder: 0, SectionKind: types.SectionIntro, ContentKind: types.ContentText, Content: "hello"},
		{ID: uuid.New(), PacketID: packet.ID, Title: "Preliminary Degree Audit", DisplayOrder: 1, SectionKind: types.SectionDegreeAudit, ContentKind: types.ContentAuditTable, Content: `{"columns":["Requirement","Satisfied By","Status","Credits"],"rows":[]}`},
		{ID: uuid.New(), PacketID: packet.ID, Title: "Advisor Notes", DisplayOrder: 2, SectionKind: types.SectionAdvisorNotes, ContentKind: types.ContentText, Content: ""},
		{ID: uuid.New(), PacketID: packet.ID, Title: "Conclusion", DisplayOrder: 3, SectionKind: types.SectionConclusion, ContentKind: types.ContentText, Content: "bye"},
	}
	if _, err := packetSectionRepo.Create(ctx, nil, sections); err != nil {
		t.Fatalf("create sections: %v", err)
	}

	return &packetFixture{
		db:       db,
		svc:      NewPacketService(db, log, packetRepo, packetSectionRepo, blockRepo),
		blocks:   blockRepo,
		pktSecs:  packetSectionRepo,
		packet:   packet,
		sections: sections,
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)
	ctx := context.Background()

	first, err := f.svc.Finalize(ctx, nil, f.packet.ID)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if first.Status != types.PacketFinalized {
		t.Fatalf("unexpected status: got=%q want=%q", first.Status, types.PacketFinalized)
	}
	second, err := f.svc.Finalize(ctx, nil, f.packet.ID)
	if err != nil {
		t.Fatalf("re-finalize must succeed: %v", err)
	}
	if second.Status != types.PacketFinalized {
		t.Fatalf("unexpected status on repeat: got=%q", second.Status)
	}
}

func TestFinalizeUnknownPacket(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)

	_, err := f.svc.Finalize(context.Background(), nil, uuid.New())
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateSectionContentMutableKinds(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)
	ctx := context.Background()

	audit := f.sections[1]
	newBody := `{"columns":["Requirement"],"rows":[["CMSC 201"]]}`
	updated, err := f.svc.UpdateSectionContent(ctx, nil, f.packet.ID, audit.ID, newBody)
	if err != nil {
		t.Fatalf("update degree audit: %v", err)
	}
	if updated.Content != newBody {
		t.Fatalf("content not updated: got=%q", updated.Content)
	}

	notes := f.sections[2]
	if _, err := f.svc.UpdateSectionContent(ctx, nil, f.packet.ID, notes.ID, "Reviewed transcripts."); err != nil {
		t.Fatalf("update advisor notes: %v", err)
	}
}

func TestUpdateSectionContentRejectsImmutableKinds(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)
	ctx := context.Background()

	intro := f.sections[0]
	_, err := f.svc.UpdateSectionContent(ctx, nil, f.packet.ID, intro.ID, "tampered")
	if err == nil {
		t.Fatalf("intro edit must be rejected")
	}
	status, _ := apierr.StatusOf(err)
	if status != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", status, http.StatusBadRequest)
	}
}

func TestUpdateSectionContentRejectsFinalizedPacket(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Finalize(ctx, nil, f.packet.ID); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	_, err := f.svc.UpdateSectionContent(ctx, nil, f.packet.ID, f.sections[2].ID, "late edit")
	status, _ := apierr.StatusOf(err)
	if status != http.StatusForbidden {
		t.Fatalf("unexpected status: got=%d want=%d", status, http.StatusForbidden)
	}
}

func TestUpdateSectionContentWrongPacket(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)

	_, err := f.svc.UpdateSectionContent(context.Background(), nil, uuid.New(), f.sections[2].ID, "x")
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddInfoBlockAppendsWithoutReflow(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)
	ctx := context.Background()

	block := &types.ContentBlock{ID: uuid.New(), Title: "Housing Info", Kind: types.ContentText, Body: "details", Active: true}
	if _, err := f.blocks.Create(ctx, nil, []*types.ContentBlock{block}); err != nil {
		t.Fatalf("create block: %v", err)
	}

	section, err := f.svc.AddInfoBlock(ctx, nil, f.packet.ID, block.ID, nil, nil)
	if err != nil {
		t.Fatalf("add info block: %v", err)
	}
	// Appended after the conclusion (order 3): no other section moves.
	if section.DisplayOrder != 4 {
		t.Fatalf("unexpected order: got=%d want=4", section.DisplayOrder)
	}
	if section.Title != "Housing Info" {
		t.Fatalf("unexpected title: got=%q", section.Title)
	}
	if section.Content != "details" {
		t.Fatalf("unexpected content: got=%q", section.Content)
	}

	reloaded, err := f.pktSecs.GetByPacketID(ctx, nil, f.packet.ID)
	if err != nil {
		t.Fatalf("reload sections: %v", err)
	}
	for i, want := range []int{0, 1, 2, 3, 4} {
		if reloaded[i].DisplayOrder != want {
			t.Fatalf("position %d: got order=%d want=%d", i, reloaded[i].DisplayOrder, want)
		}
	}
	if reloaded[3].SectionKind != types.SectionConclusion {
		t.Fatalf("conclusion must not move: got kind=%q at position 3", reloaded[3].SectionKind)
	}
}

func TestAddInfoBlockExplicitOrderCanCollide(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)
	ctx := context.Background()

	block := &types.ContentBlock{ID: uuid.New(), Title: "Parking Info", Kind: types.ContentText, Body: "lots", Active: true}
	if _, err := f.blocks.Create(ctx, nil, []*types.ContentBlock{block}); err != nil {
		t.Fatalf("create block: %v", err)
	}
	order := 1
	title := "Parking"
	section, err := f.svc.AddInfoBlock(ctx, nil, f.packet.ID, block.ID, &title, &order)
	if err != nil {
		t.Fatalf("add info block: %v", err)
	}
	if section.DisplayOrder != 1 {
		t.Fatalf("explicit order not honored: got=%d", section.DisplayOrder)
	}
	if section.Title != "Parking" {
		t.Fatalf("title override not honored: got=%q", section.Title)
	}
	// Existing section at order 1 keeps its order; the collision is the
	// caller's to avoid.
	reloaded, err := f.pktSecs.GetByIDs(ctx, nil, []uuid.UUID{f.sections[1].ID})
	if err != nil {
		t.Fatalf("reload section: %v", err)
	}
	if reloaded[0].DisplayOrder != 1 {
		t.Fatalf("existing section shifted: got=%d want=1", reloaded[0].DisplayOrder)
	}
}

func TestAddInfoBlockRequiresActiveBlock(t *testing.T) {
	t.Parallel()
	f := newPacketFixture(t)
	ctx := context.Background()

	inactive := &types.ContentBlock{ID: uuid.New(), Title: "Retired", Kind: types.ContentText, Body: "old", Active: false}
	if _, err := f.blocks.Create(ctx, nil, []*types.ContentBlock{inactive}); err != nil {
		t.Fatalf("create block: %v", err)
	}
	_, err := f.svc.AddInfoBlock(ctx, nil, f.packet.ID, inactive.ID, nil, nil)
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found for inactive block, got %v", err)
	}
}
