package query

import (
	"fmt"
	"strings"
)

// Op is the comparison operator of a predicate descriptor.
type Op string

const (
	// OpEq matches column equality.
	OpEq Op = "eq"
	// OpContains matches case-insensitive substring containment on a text column.
	OpContains Op = "contains"
	// OpOverlaps matches non-empty intersection with an array column.
	OpOverlaps Op = "overlaps"
	// OpAnyContains matches case-insensitive substring containment against any
	// element of an array column.
	OpAnyContains Op = "any_contains"
)

// Predicate is a typed (column, operator, value) descriptor. Predicates are
// rendered into parameterized SQL; values travel as statement arguments and
// are never concatenated into the query text.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Builder accumulates predicate descriptors and renders them as a single
// parameterized SQL condition.
type Builder struct {
	preds  []Predicate
	joiner string
}

// NewAnd creates a builder whose predicates compose conjunctively.
func NewAnd() *Builder {
	return &Builder{joiner: " AND "}
}

// NewOr creates a builder whose predicates compose disjunctively.
func NewOr() *Builder {
	return &Builder{joiner: " OR "}
}

// Add appends a predicate descriptor.
func (b *Builder) Add(column string, op Op, value any) *Builder {
	b.preds = append(b.preds, Predicate{Column: column, Op: op, Value: value})
	return b
}

// Eq appends an equality predicate.
func (b *Builder) Eq(column string, value any) *Builder {
	return b.Add(column, OpEq, value)
}

// Contains appends a case-insensitive substring predicate.
func (b *Builder) Contains(column, substring string) *Builder {
	return b.Add(column, OpContains, likePattern(substring))
}

// Overlaps appends an array-intersection predicate.
func (b *Builder) Overlaps(column string, values []string) *Builder {
	return b.Add(column, OpOverlaps, values)
}

// AnyContains appends a substring predicate over the elements of an array column.
func (b *Builder) AnyContains(column, substring string) *Builder {
	return b.Add(column, OpAnyContains, likePattern(substring))
}

// Empty reports whether no predicates were added.
func (b *Builder) Empty() bool {
	return len(b.preds) == 0
}

// Len returns the number of accumulated predicates.
func (b *Builder) Len() int {
	return len(b.preds)
}

// Clause renders the accumulated predicates as a SQL condition using $n
// placeholders starting at start, and returns the condition together with
// the positional arguments. An empty builder renders an empty condition.
func (b *Builder) Clause(start int) (string, []any) {
	if len(b.preds) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(b.preds))
	args := make([]any, 0, len(b.preds))
	for i, p := range b.preds {
		n := start + i
		switch p.Op {
		case OpContains:
			conds = append(conds, fmt.Sprintf("%s ILIKE $%d", p.Column, n))
		case OpOverlaps:
			conds = append(conds, fmt.Sprintf("%s && $%d", p.Column, n))
		case OpAnyContains:
			conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) AS el WHERE el ILIKE $%d)", p.Column, n))
		default:
			conds = append(conds, fmt.Sprintf("%s = $%d", p.Column, n))
		}
		args = append(args, p.Value)
	}
	return strings.Join(conds, b.joiner), args
}

// Where renders the predicates as a complete WHERE clause (leading space
// included), or an empty string when no predicates were added.
func (b *Builder) Where(start int) (string, []any) {
	clause, args := b.Clause(start)
	if clause == "" {
		return "", nil
	}
	return " WHERE " + clause, args
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
