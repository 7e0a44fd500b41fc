package export

import (
	"encoding/json"
	"strings"

	"github.com/transferdesk/advising-backend/internal/types"
)

// TermGroup is one term's slice of a plan table, with benchmark rows pulled
// out as notes. Plan tables store the term in the first column; benchmark
// rows are detected by name and attach to the preceding term.
type TermGroup struct {
	Term       string
	Rows       [][]string
	Benchmarks []string
}

func ParseTableBody(raw string) (types.TableBody, error) {
	var t types.TableBody
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return types.TableBody{}, err
	}
	return t, nil
}

// VisibleColumns drops the leading term column; the term renders as a
// heading above each group instead.
func VisibleColumns(t types.TableBody) []string {
	if len(t.Columns) > 1 {
		return t.Columns[1:]
	}
	return t.Columns
}

func GroupPlanRows(t types.TableBody) []TermGroup {
	groups := make([]TermGroup, 0)
	index := make(map[string]int)
	lastTerm := ""

	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		term := row[0]

		if strings.Contains(strings.ToLower(term), "benchmark") {
			note := ""
			if len(row) > 3 {
				note = row[3]
			}
			if lastTerm != "" && note != "" {
				groups[index[lastTerm]].Benchmarks = append(groups[index[lastTerm]].Benchmarks, note)
			}
			continue
		}

		if _, ok := index[term]; !ok {
			index[term] = len(groups)
			groups = append(groups, TermGroup{Term: term})
		}
		lastTerm = term
		groups[index[term]].Rows = append(groups[index[term]].Rows, row[1:])
	}
	return groups
}
