package assembler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/transferdesk/advising-backend/internal/types"
)

// DefaultConclusion is frozen into a conclusion section with no linked block.
const DefaultConclusion = "Thank you for reviewing this packet."

// DefaultAuditColumns seed a degree_audit section with no linked schema.
var DefaultAuditColumns = []string{"Requirement", "Satisfied By", "Status", "Credits"}

// SubstitutePlaceholders fills intro script tokens from the student request
// in a single non-recursive pass. Tokens are disjoint literals, so
// replacement order does not matter. Missing fields become empty strings.
func SubstitutePlaceholders(body string, req *types.StudentRequest) string {
	if req == nil {
		return body
	}
	return strings.NewReplacer(
		"{{student_name}}", req.StudentName,
		"{{student_email}}", req.StudentEmail,
		"{{source_institution}}", req.SourceInstitution,
		"{{target_program}}", req.TargetProgram,
	).Replace(body)
}

// ResolveContent decides the frozen (content kind, body) for one section at
// generation time. One rule per section kind; every kind has a synthesized
// default when no block is linked, so resolution never fails.
func ResolveContent(kind types.SectionKind, block *types.ContentBlock, req *types.StudentRequest) (types.ContentKind, string) {
	switch kind {
	case types.SectionIntro:
		if block != nil {
			return block.Kind, SubstitutePlaceholders(block.Body, req)
		}
		return types.ContentText, defaultIntro(req)

	case types.SectionPlanTable:
		if block != nil {
			return block.Kind, block.Body
		}
		return types.ContentTable, mustMarshalTable(types.TableBody{Columns: []string{}, Rows: [][]string{}})

	case types.SectionDegreeAudit:
		if block != nil {
			return block.Kind, block.Body
		}
		return types.ContentAuditTable, mustMarshalTable(types.TableBody{Columns: DefaultAuditColumns, Rows: [][]string{}})

	case types.SectionAdvisorNotes:
		// Always starts blank; the advisor fills it in per student, even
		// when the template links a block to this section.
		return types.ContentText, ""

	case types.SectionInfoBlock:
		if block != nil {
			return block.Kind, block.Body
		}
		return types.ContentText, ""

	case types.SectionConclusion:
		if block != nil {
			return block.Kind, block.Body
		}
		return types.ContentText, DefaultConclusion

	default:
		if block != nil {
			return block.Kind, block.Body
		}
		return types.ContentText, ""
	}
}

func defaultIntro(req *types.StudentRequest) string {
	if req == nil {
		return ""
	}
	return fmt.Sprintf(
		"Student: %s (%s)\nFrom: %s\nProgram: %s\n",
		req.StudentName, req.StudentEmail, req.SourceInstitution, req.TargetProgram,
	)
}

func mustMarshalTable(t types.TableBody) string {
	raw, err := json.Marshal(t)
	if err != nil {
		// Columns/rows of strings cannot fail to marshal.
		return `{"columns":[],"rows":[]}`
	}
	return string(raw)
}
