package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/transferdesk/advising-backend/internal/db"
	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/repos"
	"github.com/transferdesk/advising-backend/internal/types"
)

type seedFile struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Programs []struct {
		Name string `yaml:"name"`
	} `yaml:"programs"`
	ContentBlocks []struct {
		Title string `yaml:"title"`
		Kind  string `yaml:"kind"`
		Body  string `yaml:"body"`
	} `yaml:"content_blocks"`
	Templates []struct {
		Name     string `yaml:"name"`
		Program  string `yaml:"program"`
		Sections []struct {
			Title        string `yaml:"title"`
			DisplayOrder int    `yaml:"display_order"`
			SectionKind  string `yaml:"section_kind"`
			Optional     bool   `yaml:"optional"`
			ContentBlock string `yaml:"content_block"`
		} `yaml:"sections"`
	} `yaml:"templates"`
}

// Seeds the baseline catalog: two users, the CS program, its reusable
// content blocks, and one template. Safe to rerun; existing rows are kept.
func main() {
	path := flag.String("file", "scripts/seed.yaml", "seed fixture path")
	flag.Parse()

	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Read seed fixture", "path", *path, "error", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		log.Fatal("Parse seed fixture", "error", err)
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	theDB := pg.DB()
	ctx := context.Background()

	userRepo := repos.NewUserRepo(theDB, log)
	programRepo := repos.NewSourceProgramRepo(theDB, log)
	blockRepo := repos.NewContentBlockRepo(theDB, log)
	templateRepo := repos.NewTemplateRepo(theDB, log)
	sectionRepo := repos.NewTemplateSectionRepo(theDB, log)

	for _, u := range seed.Users {
		exists, err := userRepo.EmailExists(ctx, nil, u.Email)
		if err != nil {
			log.Fatal("Check user", "email", u.Email, "error", err)
		}
		if exists {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Hash password", "error", err)
		}
		if _, err := userRepo.Create(ctx, nil, []*types.User{{
			ID:           uuid.New(),
			Email:        u.Email,
			PasswordHash: string(hashed),
			Role:         u.Role,
		}}); err != nil {
			log.Fatal("Create user", "email", u.Email, "error", err)
		}
		log.Info("Seeded user", "email", u.Email, "role", u.Role)
	}

	programsByName := map[string]*types.SourceProgram{}
	for _, p := range seed.Programs {
		existing, err := programRepo.GetByNames(ctx, nil, []string{p.Name})
		if err != nil {
			log.Fatal("Check program", "name", p.Name, "error", err)
		}
		if len(existing) > 0 {
			programsByName[p.Name] = existing[0]
			continue
		}
		program := &types.SourceProgram{ID: uuid.New(), Name: p.Name, Active: true}
		if _, err := programRepo.Create(ctx, nil, []*types.SourceProgram{program}); err != nil {
			log.Fatal("Create program", "name", p.Name, "error", err)
		}
		programsByName[p.Name] = program
		log.Info("Seeded program", "name", p.Name)
	}

	allBlocks, err := blockRepo.List(ctx, nil, false)
	if err != nil {
		log.Fatal("List content blocks", "error", err)
	}
	blocksByTitle := map[string]*types.ContentBlock{}
	for _, b := range allBlocks {
		blocksByTitle[b.Title] = b
	}
	for _, cb := range seed.ContentBlocks {
		if _, ok := blocksByTitle[cb.Title]; ok {
			continue
		}
		block := &types.ContentBlock{
			ID:     uuid.New(),
			Title:  cb.Title,
			Kind:   types.ContentKind(cb.Kind),
			Body:   cb.Body,
			Active: true,
		}
		if _, err := blockRepo.Create(ctx, nil, []*types.ContentBlock{block}); err != nil {
			log.Fatal("Create content block", "title", cb.Title, "error", err)
		}
		blocksByTitle[cb.Title] = block
		log.Info("Seeded content block", "title", cb.Title)
	}

	existingTemplates, err := templateRepo.List(ctx, nil)
	if err != nil {
		log.Fatal("List templates", "error", err)
	}
	templateNames := map[string]bool{}
	for _, t := range existingTemplates {
		templateNames[t.Name] = true
	}
	for _, t := range seed.Templates {
		if templateNames[t.Name] {
			continue
		}
		program, ok := programsByName[t.Program]
		if !ok {
			log.Fatal("Template references unknown program", "template", t.Name, "program", t.Program)
		}
		tpl := &types.Template{
			ID:        uuid.New(),
			ProgramID: program.ID,
			Name:      t.Name,
			Active:    true,
		}
		if _, err := templateRepo.Create(ctx, nil, []*types.Template{tpl}); err != nil {
			log.Fatal("Create template", "name", t.Name, "error", err)
		}
		sections := make([]*types.TemplateSection, 0, len(t.Sections))
		for _, s := range t.Sections {
			section := &types.TemplateSection{
				ID:           uuid.New(),
				TemplateID:   tpl.ID,
				Title:        s.Title,
				DisplayOrder: s.DisplayOrder,
				SectionKind:  types.SectionKind(s.SectionKind),
				Optional:     s.Optional,
			}
			if s.ContentBlock != "" {
				block, ok := blocksByTitle[s.ContentBlock]
				if !ok {
					log.Fatal("Section references unknown content block", "section", s.Title, "block", s.ContentBlock)
				}
				id := block.ID
				section.ContentBlockID = &id
			}
			sections = append(sections, section)
		}
		if _, err := sectionRepo.Create(ctx, nil, sections); err != nil {
			log.Fatal("Create template sections", "template", t.Name, "error", err)
		}
		log.Info("Seeded template", "name", t.Name, "sections", len(sections))
	}

	fmt.Println("Seed complete: users, programs, content blocks, templates.")
}
