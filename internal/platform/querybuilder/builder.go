// Package querybuilder renders read-only postgres SELECT statements with
// numbered placeholders.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type Condition interface {
	appendSQL(w *writer)
}

// writer accumulates SQL text and positional arguments.
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func Gte(column string, value any) Condition {
	return compareCondition{column: column, op: ">=", value: value}
}

func Lt(column string, value any) Condition {
	return compareCondition{column: column, op: "<", value: value}
}

func Lte(column string, value any) Condition {
	return compareCondition{column: column, op: "<=", value: value}
}

func (c compareCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" ")
	w.buf.WriteString(c.op)
	w.buf.WriteString(" ")
	w.bind(c.value)
}

type anyCondition struct {
	column string
	array  any
}

// Any matches column against a postgres array argument, e.g. pq.Array(ids).
// The statement text stays the same for any number of ids.
func Any(column string, array any) Condition {
	return anyCondition{column: column, array: array}
}

func (c anyCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" = ANY(")
	w.bind(c.array)
	w.buf.WriteString(")")
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) appendSQL(w *writer) {
	if len(c.values) == 0 {
		w.buf.WriteString("1=0")
		return
	}

	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
}

type isNullCondition struct {
	column string
	not    bool
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func IsNotNull(column string) Condition {
	return isNullCondition{column: column, not: true}
}

func (c isNullCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	if c.not {
		w.buf.WriteString(" IS NOT NULL")
		return
	}
	w.buf.WriteString(" IS NULL")
}

type orCondition struct {
	conditions []Condition
}

// Or groups conditions in parentheses joined by OR.
func Or(conditions ...Condition) Condition {
	return orCondition{conditions: conditions}
}

func (c orCondition) appendSQL(w *writer) {
	if len(c.conditions) == 0 {
		w.buf.WriteString("1=0")
		return
	}
	w.buf.WriteString("(")
	for i, cond := range c.conditions {
		if i > 0 {
			w.buf.WriteString(" OR ")
		}
		cond.appendSQL(w)
	}
	w.buf.WriteString(")")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr inserts raw SQL. Each '?' is replaced by the next argument.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(w *writer) {
	next := 0
	for i := 0; i < len(c.expr); i++ {
		if c.expr[i] == '?' && next < len(c.args) {
			w.bind(c.args[next])
			next++
			continue
		}
		w.buf.WriteByte(c.expr[i])
	}
}

type join struct {
	kind  string
	table string
	on    string
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []join
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) LeftJoin(table, on string) *SelectBuilder {
	b.joins = append(b.joins, join{kind: "LEFT JOIN", table: table, on: on})
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &writer{args: make([]any, 0, len(b.where))}
	w.buf.WriteString("SELECT ")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)

	for _, j := range b.joins {
		w.buf.WriteString(" ")
		w.buf.WriteString(j.kind)
		w.buf.WriteString(" ")
		w.buf.WriteString(j.table)
		w.buf.WriteString(" ON ")
		w.buf.WriteString(j.on)
	}

	if len(b.where) > 0 {
		w.buf.WriteString(" WHERE ")
		for i, c := range b.where {
			if i > 0 {
				w.buf.WriteString(" AND ")
			}
			c.appendSQL(w)
		}
	}

	if len(b.orderBy) > 0 {
		w.buf.WriteString(" ORDER BY ")
		w.buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT ")
		w.buf.WriteString(strconv.Itoa(b.limit))
	}

	return w.buf.String(), w.args, nil
}
