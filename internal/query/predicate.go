package query

import (
	"strconv"
	"strings"
)

// Predicate is one composable filter condition. Expr uses "?" placeholders;
// Args supplies one value per placeholder.
type Predicate struct {
	Expr string
	Args []any
}

// Never is a predicate that matches no rows. Used when a filter references a
// lookup key (e.g. an address) that does not exist: the documented behavior
// is an empty result set, not an error.
func Never() Predicate { return Predicate{Expr: "FALSE"} }

// Always is a predicate that matches every row.
func Always() Predicate { return Predicate{Expr: "TRUE"} }

// Conjoin combines predicate fragments with AND. An empty input yields
// Always, keeping callers free of special cases.
func Conjoin(preds ...Predicate) Predicate {
	if len(preds) == 0 {
		return Always()
	}
	if len(preds) == 1 {
		return preds[0]
	}
	exprs := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		exprs = append(exprs, "("+p.Expr+")")
		args = append(args, p.Args...)
	}
	return Predicate{Expr: strings.Join(exprs, " AND "), Args: args}
}

// Render rewrites "?" placeholders to "$n" starting at start and returns the
// SQL text plus its arguments. start lets the repository prepend its own
// positional arguments.
func (p Predicate) Render(start int) (string, []any) {
	var b strings.Builder
	n := start
	for i := 0; i < len(p.Expr); i++ {
		if p.Expr[i] == '?' {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		b.WriteByte(p.Expr[i])
	}
	return b.String(), p.Args
}
