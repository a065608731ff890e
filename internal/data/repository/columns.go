package repository

import (
	"fmt"
	"strings"
)

// column is one (name, value) pair of a write. Columns with set == false are
// dropped before the statement is built, so optional fields never reach SQL.
type column struct {
	name  string
	value any
	set   bool
}

func setColumn(name string, value any) column {
	return column{name: name, value: value, set: true}
}

func optionalColumn[T any](name string, value *T) column {
	if value == nil {
		return column{name: name}
	}
	return column{name: name, value: *value, set: true}
}

func presentColumns(cols []column) []column {
	out := make([]column, 0, len(cols))
	for _, c := range cols {
		if c.set {
			out = append(out, c)
		}
	}
	return out
}

// buildInsert renders INSERT INTO table (...) VALUES ($1, ...) RETURNING returning.
func buildInsert(table string, cols []column, returning string) (string, []any) {
	cols = presentColumns(cols)

	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = c.name
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = c.value
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "), returning)
	return query, args
}

// buildUpdate renders UPDATE table SET ... WHERE key = $n RETURNING returning.
// rawSet entries (for example "updated_at = NOW()") are appended verbatim
// after the parameterized assignments.
func buildUpdate(table string, cols []column, rawSet []string, key column, returning string) (string, []any) {
	cols = presentColumns(cols)

	assignments := make([]string, 0, len(cols)+len(rawSet))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", c.name, i+1))
		args = append(args, c.value)
	}
	assignments = append(assignments, rawSet...)
	args = append(args, key.value)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		table, strings.Join(assignments, ", "), key.name, len(args), returning)
	return query, args
}
