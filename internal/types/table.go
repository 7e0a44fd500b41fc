package types

// TableBody is the serialized structure stored in the body of table and
// audit_table content, and frozen into packet sections of those kinds.
type TableBody struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
