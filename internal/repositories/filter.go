package repositories

import (
	"fmt"
	"strings"
)

// FilterExpr is a composable predicate tree that repositories translate
// into a SQL condition with positional arguments. Leaves compare a column
// against a value; And/Or/Not combine sub-expressions.
type FilterExpr interface {
	ToSQL() (string, []any)
}

type comparison struct {
	column string
	op     string
	value  any
}

func (c comparison) ToSQL() (string, []any) {
	return fmt.Sprintf("%s %s ?", c.column, c.op), []any{c.value}
}

type inExpr struct {
	column string
	values []any
}

func (e inExpr) ToSQL() (string, []any) {
	if len(e.values) == 0 {
		// IN over an empty set matches nothing
		return "1 = 0", nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(e.values)), ",")
	return fmt.Sprintf("%s IN (%s)", e.column, placeholders), e.values
}

type nullExpr struct {
	column string
	isNull bool
}

func (e nullExpr) ToSQL() (string, []any) {
	if e.isNull {
		return e.column + " IS NULL", nil
	}
	return e.column + " IS NOT NULL", nil
}

type combinedExpr struct {
	op    string // "AND" or "OR"
	exprs []FilterExpr
}

func (e combinedExpr) ToSQL() (string, []any) {
	if len(e.exprs) == 0 {
		return "1 = 1", nil
	}
	if len(e.exprs) == 1 {
		return e.exprs[0].ToSQL()
	}
	parts := make([]string, 0, len(e.exprs))
	var args []any
	for _, sub := range e.exprs {
		sql, subArgs := sub.ToSQL()
		parts = append(parts, "("+sql+")")
		args = append(args, subArgs...)
	}
	return strings.Join(parts, " "+e.op+" "), args
}

type notExpr struct {
	expr FilterExpr
}

func (e notExpr) ToSQL() (string, []any) {
	sql, args := e.expr.ToSQL()
	return "NOT (" + sql + ")", args
}

func Eq(column string, value any) FilterExpr  { return comparison{column, "=", value} }
func Neq(column string, value any) FilterExpr { return comparison{column, "<>", value} }
func Gt(column string, value any) FilterExpr  { return comparison{column, ">", value} }
func Gte(column string, value any) FilterExpr { return comparison{column, ">=", value} }
func Lt(column string, value any) FilterExpr  { return comparison{column, "<", value} }
func Lte(column string, value any) FilterExpr { return comparison{column, "<=", value} }

// Like performs a case-insensitive substring match.
func Like(column string, value string) FilterExpr {
	return comparison{column, "ILIKE", "%" + value + "%"}
}

func In(column string, values ...any) FilterExpr { return inExpr{column, values} }
func IsNull(column string) FilterExpr            { return nullExpr{column, true} }
func NotNull(column string) FilterExpr           { return nullExpr{column, false} }

func And(exprs ...FilterExpr) FilterExpr { return combinedExpr{"AND", exprs} }
func Or(exprs ...FilterExpr) FilterExpr  { return combinedExpr{"OR", exprs} }
func Not(expr FilterExpr) FilterExpr     { return notExpr{expr} }
