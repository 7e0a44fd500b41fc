package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/repos"
	"github.com/transferdesk/advising-backend/internal/types"
)

type templateFixture struct {
	db      *gorm.DB
	svc     TemplateService
	blocks  repos.ContentBlockRepo
	program *types.SourceProgram
	block   *types.ContentBlock
}

func newTemplateFixture(t *testing.T) *templateFixture {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	ctx := context.Background()

	programRepo := repos.NewSourceProgramRepo(db, log)
	templateRepo := repos.NewTemplateRepo(db, log)
	sectionRepo := repos.NewTemplateSectionRepo(db, log)
	blockRepo := repos.NewContentBlockRepo(db, log)

	program := &types.SourceProgram{ID: uuid.New(), Name: "Computer Science BS", Active: true}
	if _, err := programRepo.Create(ctx, nil, []*types.SourceProgram{program}); err != nil {
		t.Fatalf("create program: %v", err)
	}
	block := &types.ContentBlock{ID: uuid.New(), Title: "Intro", Kind: types.ContentText, Body: "Welcome {{student_name}}", Active: true}
	if _, err := blockRepo.Create(ctx, nil, []*types.ContentBlock{block}); err != nil {
		t.Fatalf("create block: %v", err)
	}

	return &templateFixture{
		db:      db,
		svc:     NewTemplateService(db, log, programRepo, templateRepo, sectionRepo, blockRepo),
		blocks:  blockRepo,
		program: program,
		block:   block,
	}
}

func TestTemplateCreateDefaultsOrderToIndex(t *testing.T) {
	t.Parallel()
	f := newTemplateFixture(t)
	ctx := context.Background()

	tpl, err := f.svc.Create(ctx, nil, CreateTemplateInput{
		ProgramID: f.program.ID,
		Name:      "CS v1",
		Sections: []SectionInput{
			{Title: "Introduction", SectionKind: types.SectionIntro, ContentBlockID: &f.block.ID},
			{Title: "Advisor Notes", SectionKind: types.SectionAdvisorNotes},
			{Title: "Conclusion", SectionKind: types.SectionConclusion},
		},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	for i, s := range tpl.Sections {
		if s.DisplayOrder != i {
			t.Fatalf("section %d has order %d", i, s.DisplayOrder)
		}
	}
}

func TestTemplateCreateRejectsInactiveBlockRef(t *testing.T) {
	t.Parallel()
	f := newTemplateFixture(t)
	ctx := context.Background()

	inactive := &types.ContentBlock{ID: uuid.New(), Title: "Old", Kind: types.ContentText, Body: "x", Active: false}
	if _, err := f.blocks.Create(ctx, nil, []*types.ContentBlock{inactive}); err != nil {
		t.Fatalf("create block: %v", err)
	}
	_, err := f.svc.Create(ctx, nil, CreateTemplateInput{
		ProgramID: f.program.ID,
		Name:      "CS v1",
		Sections: []SectionInput{
			{Title: "Introduction", SectionKind: types.SectionIntro, ContentBlockID: &inactive.ID},
		},
	})
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found for inactive block, got %v", err)
	}

	templates, listErr := f.svc.List(ctx, nil)
	if listErr != nil {
		t.Fatalf("list templates: %v", listErr)
	}
	if len(templates) != 0 {
		t.Fatalf("failed create must roll back, found %d templates", len(templates))
	}
}

func TestTemplateAddSectionAppendsAfterMax(t *testing.T) {
	t.Parallel()
	f := newTemplateFixture(t)
	ctx := context.Background()

	tpl, err := f.svc.Create(ctx, nil, CreateTemplateInput{
		ProgramID: f.program.ID,
		Name:      "CS v1",
		Sections: []SectionInput{
			{Title: "Introduction", SectionKind: types.SectionIntro},
			{Title: "Conclusion", SectionKind: types.SectionConclusion},
		},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	section, err := f.svc.AddSection(ctx, nil, tpl.ID, SectionInput{
		Title:       "Financial Aid",
		SectionKind: types.SectionInfoBlock,
		Optional:    true,
	})
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	if section.DisplayOrder != 2 {
		t.Fatalf("unexpected order: got=%d want=2", section.DisplayOrder)
	}
}

func TestTemplateDeleteSectionLeavesGap(t *testing.T) {
	t.Parallel()
	f := newTemplateFixture(t)
	ctx := context.Background()

	tpl, err := f.svc.Create(ctx, nil, CreateTemplateInput{
		ProgramID: f.program.ID,
		Name:      "CS v1",
		Sections: []SectionInput{
			{Title: "A", SectionKind: types.SectionIntro},
			{Title: "B", SectionKind: types.SectionInfoBlock},
			{Title: "C", SectionKind: types.SectionConclusion},
		},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := f.svc.DeleteSection(ctx, nil, tpl.Sections[1].ID); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	view, err := f.svc.BuilderView(ctx, nil, tpl.ID)
	if err != nil {
		t.Fatalf("builder view: %v", err)
	}
	if len(view.Sections) != 2 {
		t.Fatalf("unexpected section count: got=%d want=2", len(view.Sections))
	}
	if view.Sections[0].DisplayOrder != 0 || view.Sections[1].DisplayOrder != 2 {
		t.Fatalf("orders must keep the gap: got=%d,%d", view.Sections[0].DisplayOrder, view.Sections[1].DisplayOrder)
	}
}

func TestTemplateBuilderViewPreviews(t *testing.T) {
	t.Parallel()
	f := newTemplateFixture(t)
	ctx := context.Background()

	tpl, err := f.svc.Create(ctx, nil, CreateTemplateInput{
		ProgramID: f.program.ID,
		Name:      "CS v1",
		Sections: []SectionInput{
			{Title: "Introduction", SectionKind: types.SectionIntro, ContentBlockID: &f.block.ID},
			{Title: "Advisor Notes", SectionKind: types.SectionAdvisorNotes},
		},
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	view, err := f.svc.BuilderView(ctx, nil, tpl.ID)
	if err != nil {
		t.Fatalf("builder view: %v", err)
	}
	if view.ProgramName != "Computer Science BS" {
		t.Fatalf("unexpected program name: got=%q", view.ProgramName)
	}
	if view.Sections[0].ContentPreview == nil {
		t.Fatalf("linked section must carry a preview")
	}
	if view.Sections[0].ContentPreview.BodyPreview != "Welcome {{student_name}}" {
		t.Fatalf("unexpected preview: got=%q", view.Sections[0].ContentPreview.BodyPreview)
	}
	if view.Sections[1].ContentPreview != nil {
		t.Fatalf("unlinked section must not carry a preview")
	}
}
