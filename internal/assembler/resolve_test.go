package assembler

import (
	"strings"
	"testing"

	"github.com/transferdesk/advising-backend/internal/types"
)

func TestSubstitutePlaceholders(t *testing.T) {
	t.Parallel()

	req := &types.StudentRequest{
		StudentName:       "Dana Smith",
		StudentEmail:      "dana@example.edu",
		SourceInstitution: "Montgomery College",
		TargetProgram:     "Computer Science BS",
	}
	body := "Student: {{student_name}} ({{student_email}})\nFrom: {{source_institution}}\nInto: {{target_program}}"

	got := SubstitutePlaceholders(body, req)
	want := "Student: Dana Smith (dana@example.edu)\nFrom: Montgomery College\nInto: Computer Science BS"
	if got != want {
		t.Fatalf("unexpected substitution: got=%q want=%q", got, want)
	}
}

func TestSubstitutePlaceholdersMissingFieldsBecomeEmpty(t *testing.T) {
	t.Parallel()

	req := &types.StudentRequest{StudentName: "Dana"}
	got := SubstitutePlaceholders("{{student_name}}|{{source_institution}}", req)
	if got != "Dana|" {
		t.Fatalf("unexpected substitution: got=%q", got)
	}
}

func TestSubstitutePlaceholdersSinglePass(t *testing.T) {
	t.Parallel()

	// A student name containing a token literal must not be re-expanded.
	req := &types.StudentRequest{
		StudentName:  "{{student_email}}",
		StudentEmail: "dana@example.edu",
	}
	got := SubstitutePlaceholders("{{student_name}}", req)
	if got != "{{student_email}}" {
		t.Fatalf("substitution recursed: got=%q", got)
	}
}

func TestResolveContentIntroSubstitutes(t *testing.T) {
	t.Parallel()

	req := &types.StudentRequest{StudentName: "Dana", StudentEmail: "dana@example.edu"}
	block := &types.ContentBlock{Kind: types.ContentText, Body: "Hello {{student_name}}"}

	kind, body := ResolveContent(types.SectionIntro, block, req)
	if kind != types.ContentText {
		t.Fatalf("unexpected kind: got=%q want=%q", kind, types.ContentText)
	}
	if body != "Hello Dana" {
		t.Fatalf("unexpected body: got=%q", body)
	}
}

func TestResolveContentIntroDefault(t *testing.T) {
	t.Parallel()

	req := &types.StudentRequest{
		StudentName:  "Dana",
		StudentEmail: "dana@example.edu",
	}
	kind, body := ResolveContent(types.SectionIntro, nil, req)
	if kind != types.ContentText {
		t.Fatalf("unexpected kind: got=%q", kind)
	}
	if !strings.Contains(body, "Dana") || !strings.Contains(body, "dana@example.edu") {
		t.Fatalf("default intro missing student fields: got=%q", body)
	}
}

func TestResolveContentPlanTableCopiesBody(t *testing.T) {
	t.Parallel()

	raw := `{"columns":["Term","Course"],"rows":[["Term 1","CMSC 201"]]}`
	block := &types.ContentBlock{Kind: types.ContentTable, Body: raw}

	kind, body := ResolveContent(types.SectionPlanTable, block, nil)
	if kind != types.ContentTable {
		t.Fatalf("unexpected kind: got=%q", kind)
	}
	if body != raw {
		t.Fatalf("plan table body altered: got=%q want=%q", body, raw)
	}
}

func TestResolveContentDegreeAuditDefaultSchema(t *testing.T) {
	t.Parallel()

	kind, body := ResolveContent(types.SectionDegreeAudit, nil, nil)
	if kind != types.ContentAuditTable {
		t.Fatalf("unexpected kind: got=%q", kind)
	}
	for _, col := range DefaultAuditColumns {
		if !strings.Contains(body, col) {
			t.Fatalf("default audit schema missing column %q: got=%q", col, body)
		}
	}
}

func TestResolveContentAdvisorNotesAlwaysBlank(t *testing.T) {
	t.Parallel()

	block := &types.ContentBlock{Kind: types.ContentMarkdown, Body: "boilerplate"}
	kind, body := ResolveContent(types.SectionAdvisorNotes, block, nil)
	if kind != types.ContentText {
		t.Fatalf("unexpected kind: got=%q", kind)
	}
	if body != "" {
		t.Fatalf("advisor notes must start blank: got=%q", body)
	}
}

func TestResolveContentConclusionDefault(t *testing.T) {
	t.Parallel()

	kind, body := ResolveContent(types.SectionConclusion, nil, nil)
	if kind != types.ContentText {
		t.Fatalf("unexpected kind: got=%q", kind)
	}
	if body != DefaultConclusion {
		t.Fatalf("unexpected default conclusion: got=%q want=%q", body, DefaultConclusion)
	}
}

func TestResolveContentInfoBlockCopiesKind(t *testing.T) {
	t.Parallel()

	block := &types.ContentBlock{Kind: types.ContentMarkdown, Body: "Deadlines..."}
	kind, body := ResolveContent(types.SectionInfoBlock, block, nil)
	if kind != types.ContentMarkdown {
		t.Fatalf("unexpected kind: got=%q", kind)
	}
	if body != "Deadlines..." {
		t.Fatalf("unexpected body: got=%q", body)
	}
}
