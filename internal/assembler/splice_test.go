package assembler

import (
	"testing"

	"github.com/transferdesk/advising-backend/internal/types"
)

func section(order int, kind types.SectionKind, title string) *types.PacketSection {
	return &types.PacketSection{Title: title, DisplayOrder: order, SectionKind: kind}
}

func extraBlock(title, body string) *types.ContentBlock {
	return &types.ContentBlock{Title: title, Kind: types.ContentText, Body: body, Active: true}
}

func TestSpliceExtrasBeforeConclusion(t *testing.T) {
	t.Parallel()

	sections := []*types.PacketSection{
		section(0, types.SectionIntro, "Introduction"),
		section(1, types.SectionPlanTable, "Plan"),
		section(2, types.SectionConclusion, "Conclusion"),
	}
	extras := []*types.ContentBlock{
		extraBlock("Housing Info", "a"),
		extraBlock("Parking Info", "b"),
	}

	out := SpliceExtras(sections, extras)

	wantTitles := []string{"Introduction", "Plan", "Housing Info", "Parking Info", "Conclusion"}
	wantOrders := []int{0, 1, 2, 3, 4}
	if len(out) != len(wantTitles) {
		t.Fatalf("unexpected section count: got=%d want=%d", len(out), len(wantTitles))
	}
	for i := range out {
		if out[i].Title != wantTitles[i] {
			t.Fatalf("position %d: got title=%q want=%q", i, out[i].Title, wantTitles[i])
		}
		if out[i].DisplayOrder != wantOrders[i] {
			t.Fatalf("position %d: got order=%d want=%d", i, out[i].DisplayOrder, wantOrders[i])
		}
	}
	if out[len(out)-1].SectionKind != types.SectionConclusion {
		t.Fatalf("packet must end with conclusion, got kind=%q", out[len(out)-1].SectionKind)
	}
}

func TestSpliceExtrasNoConclusionAppends(t *testing.T) {
	t.Parallel()

	sections := []*types.PacketSection{
		section(0, types.SectionIntro, "Introduction"),
		section(1, types.SectionAdvisorNotes, "Notes"),
	}
	out := SpliceExtras(sections, []*types.ContentBlock{extraBlock("Housing Info", "a")})

	if len(out) != 3 {
		t.Fatalf("unexpected section count: got=%d want=3", len(out))
	}
	last := out[2]
	if last.Title != "Housing Info" || last.DisplayOrder != 2 {
		t.Fatalf("extra not appended at max+1: title=%q order=%d", last.Title, last.DisplayOrder)
	}
	if out[0].DisplayOrder != 0 || out[1].DisplayOrder != 1 {
		t.Fatalf("existing orders must not shift: got=%d,%d", out[0].DisplayOrder, out[1].DisplayOrder)
	}
}

func TestSpliceExtrasPreservesCallerOrder(t *testing.T) {
	t.Parallel()

	sections := []*types.PacketSection{
		section(0, types.SectionConclusion, "Conclusion"),
	}
	extras := []*types.ContentBlock{
		extraBlock("First", "1"),
		extraBlock("Second", "2"),
		extraBlock("Third", "3"),
	}
	out := SpliceExtras(sections, extras)

	wantTitles := []string{"First", "Second", "Third", "Conclusion"}
	for i, want := range wantTitles {
		if out[i].Title != want {
			t.Fatalf("position %d: got=%q want=%q", i, out[i].Title, want)
		}
	}
}

func TestSpliceExtrasEmptyIsNoop(t *testing.T) {
	t.Parallel()

	sections := []*types.PacketSection{
		section(0, types.SectionIntro, "Introduction"),
		section(1, types.SectionConclusion, "Conclusion"),
	}
	out := SpliceExtras(sections, nil)
	if len(out) != 2 {
		t.Fatalf("unexpected section count: got=%d want=2", len(out))
	}
	if out[0].DisplayOrder != 0 || out[1].DisplayOrder != 1 {
		t.Fatalf("orders changed without extras: got=%d,%d", out[0].DisplayOrder, out[1].DisplayOrder)
	}
}

func TestSpliceExtrasSectionKind(t *testing.T) {
	t.Parallel()

	out := SpliceExtras(
		[]*types.PacketSection{section(0, types.SectionConclusion, "Conclusion")},
		[]*types.ContentBlock{{Title: "Md Extra", Kind: types.ContentMarkdown, Body: "x"}},
	)
	if out[0].SectionKind != types.SectionInfoBlock {
		t.Fatalf("extras must become info blocks, got=%q", out[0].SectionKind)
	}
	if out[0].ContentKind != types.ContentMarkdown {
		t.Fatalf("extra content kind must copy the block kind, got=%q", out[0].ContentKind)
	}
}
