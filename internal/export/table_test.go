package export

import (
	"testing"

	"github.com/transferdesk/advising-backend/internal/types"
)

func TestParseTableBody(t *testing.T) {
	t.Parallel()

	body, err := ParseTableBody(`{"columns":["Term","Course"],"rows":[["Term 1","CMSC 201"]]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(body.Columns) != 2 || len(body.Rows) != 1 {
		t.Fatalf("unexpected shape: columns=%d rows=%d", len(body.Columns), len(body.Rows))
	}
}

func TestParseTableBodyRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseTableBody("not json"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestVisibleColumnsDropsTerm(t *testing.T) {
	t.Parallel()

	body := types.TableBody{Columns: []string{"Term", "Course", "Credits"}}
	got := VisibleColumns(body)
	if len(got) != 2 || got[0] != "Course" || got[1] != "Credits" {
		t.Fatalf("unexpected visible columns: %v", got)
	}
}

func TestGroupPlanRowsByTerm(t *testing.T) {
	t.Parallel()

	body := types.TableBody{
		Columns: []string{"Term", "Course", "Credits", "Notes"},
		Rows: [][]string{
			{"Term 1", "CMSC 201", "3", ""},
			{"Term 1", "MATH 151", "4", ""},
			{"Term 2", "CMSC 202", "3", ""},
		},
	}
	groups := GroupPlanRows(body)
	if len(groups) != 2 {
		t.Fatalf("unexpected group count: got=%d want=2", len(groups))
	}
	if groups[0].Term != "Term 1" || len(groups[0].Rows) != 2 {
		t.Fatalf("unexpected first group: term=%q rows=%d", groups[0].Term, len(groups[0].Rows))
	}
	if groups[1].Term != "Term 2" || len(groups[1].Rows) != 1 {
		t.Fatalf("unexpected second group: term=%q rows=%d", groups[1].Term, len(groups[1].Rows))
	}
	// Term column is stripped from grouped rows.
	if groups[0].Rows[0][0] != "CMSC 201" {
		t.Fatalf("term column not stripped: %v", groups[0].Rows[0])
	}
}

func TestGroupPlanRowsAttachesBenchmarks(t *testing.T) {
	t.Parallel()

	body := types.TableBody{
		Columns: []string{"Term", "Course", "Credits", "Notes"},
		Rows: [][]string{
			{"Term 1", "CMSC 201", "3", ""},
			{"Benchmark", "", "", "Complete CMSC 201 with B or better"},
			{"Term 2", "CMSC 202", "3", ""},
		},
	}
	groups := GroupPlanRows(body)
	if len(groups) != 2 {
		t.Fatalf("benchmark row must not create a group: got=%d groups", len(groups))
	}
	if len(groups[0].Benchmarks) != 1 || groups[0].Benchmarks[0] != "Complete CMSC 201 with B or better" {
		t.Fatalf("benchmark not attached to preceding term: %v", groups[0].Benchmarks)
	}
	if len(groups[1].Benchmarks) != 0 {
		t.Fatalf("benchmark leaked to later term: %v", groups[1].Benchmarks)
	}
}

func TestGroupPlanRowsLeadingBenchmarkIgnored(t *testing.T) {
	t.Parallel()

	body := types.TableBody{
		Columns: []string{"Term", "Course", "Credits", "Notes"},
		Rows: [][]string{
			{"Benchmark", "", "", "orphan note"},
			{"Term 1", "CMSC 201", "3", ""},
		},
	}
	groups := GroupPlanRows(body)
	if len(groups) != 1 {
		t.Fatalf("unexpected group count: got=%d want=1", len(groups))
	}
	if len(groups[0].Benchmarks) != 0 {
		t.Fatalf("orphan benchmark must be dropped: %v", groups[0].Benchmarks)
	}
}
