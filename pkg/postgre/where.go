package postgres

import (
	"fmt"
	"strings"

	"github.com/aarondl/strmangle"
)

// Where accumulates AND-ed conditions with numbered placeholders for raw queries.
type Where struct {
	clauses []string
	args    []interface{}
}

// Eq adds "column = $n".
func (w *Where) Eq(column string, value interface{}) *Where {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf("%s = $%d", column, len(w.args)))
	return w
}

// Cond adds a clause whose single placeholder is written as "?".
func (w *Where) Cond(clause string, value interface{}) *Where {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1))
	return w
}

// In adds "column IN ($n, ...)". An empty list adds nothing.
func (w *Where) In(column string, values []string) *Where {
	if len(values) == 0 {
		return w
	}
	start := len(w.args) + 1
	w.args = append(w.args, ConvertToInterface(values)...)
	w.clauses = append(w.clauses, fmt.Sprintf("%s IN (%s)", column, strmangle.Placeholders(true, len(values), start, 1)))
	return w
}

// SQL returns the WHERE fragment (empty when no clause was added).
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// Args returns the accumulated arguments.
func (w *Where) Args() []interface{} {
	return w.args
}

// Next returns the next placeholder index, for LIMIT/OFFSET appended after the fragment.
func (w *Where) Next() int {
	return len(w.args) + 1
}
