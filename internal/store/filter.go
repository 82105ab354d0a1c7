package store

import "strings"

// predicates accumulates AND-joined equality clauses with positional
// arguments. Column names must be trusted identifiers; values are always bound.
type predicates struct {
	clauses []string
	args    []interface{}
}

// eq adds "column = ?" when value is non-empty.
func (p *predicates) eq(column, value string) {
	if value == "" {
		return
	}
	p.clauses = append(p.clauses, column+" = ?")
	p.args = append(p.args, value)
}

// where renders the WHERE fragment (with a leading space) and its arguments.
func (p *predicates) where() (string, []interface{}) {
	if len(p.clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(p.clauses, " AND "), p.args
}
