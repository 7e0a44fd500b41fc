package types

// SectionKind is the functional category of a section. It decides the
// content-resolution rule applied when a packet is generated.
type SectionKind string

const (
	SectionIntro        SectionKind = "intro"
	SectionPlanTable    SectionKind = "plan_table"
	SectionDegreeAudit  SectionKind = "degree_audit"
	SectionAdvisorNotes SectionKind = "advisor_notes"
	SectionInfoBlock    SectionKind = "info_block"
	SectionConclusion   SectionKind = "conclusion"
)

// ContentKind guides rendering in exports.
type ContentKind string

const (
	ContentText       ContentKind = "text"
	ContentMarkdown   ContentKind = "markdown"
	ContentTable      ContentKind = "table"
	ContentAuditTable ContentKind = "audit_table"
)

type PacketStatus string

const (
	PacketDraft     PacketStatus = "draft"
	PacketFinalized PacketStatus = "finalized"
)

// MutableSectionKinds are the kinds an advisor may still edit on a draft
// packet after generation.
func (k SectionKind) Mutable() bool {
	return k == SectionDegreeAudit || k == SectionAdvisorNotes
}
