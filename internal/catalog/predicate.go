package catalog

import (
	"fmt"
	"strings"
)

// Op is a predicate comparison operator.
type Op string

const (
	OpEq   Op = "eq"   // exact match
	OpLike Op = "like" // case-insensitive substring match
	OpLte  Op = "lte"  // numeric less-than-or-equal
)

// Predicate is one typed filter clause. Field names are logical; compileQuery
// maps them to columns and rejects anything it does not know, so predicate
// values never reach SQL text.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Query describes one catalog search.
//
// Any clauses are OR'ed: a row qualifies when at least one holds. All clauses
// are AND'ed hard filters applied on top. When Broad is set the Any clauses
// only contribute to match-count ordering and do not filter rows; this is how
// an empty intent still returns generically relevant stock.
type Query struct {
	Any   []Predicate
	All   []Predicate
	Broad bool
	Limit int
}

// columnFor maps logical predicate fields to join-qualified columns.
var columnFor = map[string]string{
	"sku":             "p.sku",
	"title":           "p.title",
	"price":           "p.price",
	"in_stock":        "p.in_stock",
	"category":        "p.category",
	"color":           "va.color",
	"secondary_color": "va.secondary_color",
	"vision_category": "va.category",
	"material":        "va.material",
	"pattern":         "va.pattern",
	"style":           "va.style",
	"occasion":        "va.occasion",
	"fit":             "va.fit",
	"formal_level":    "va.formal_level",
}

const selectColumns = `p.sku, p.title, p.price, p.image_key, p.in_stock, p.category,
	va.sku, va.color, va.secondary_color, va.category, va.material, va.pattern,
	va.style, va.occasion, va.fit, va.formal_level, va.confidence_score`

// compileClause renders one predicate to a parameterized SQL fragment.
func compileClause(p Predicate) (string, any, error) {
	col, ok := columnFor[p.Field]
	if !ok {
		return "", nil, fmt.Errorf("unknown predicate field: %q", p.Field)
	}
	switch p.Op {
	case OpEq:
		if s, ok := p.Value.(string); ok {
			return fmt.Sprintf("LOWER(%s) = LOWER(?)", col), s, nil
		}
		return fmt.Sprintf("%s = ?", col), p.Value, nil
	case OpLike:
		s, ok := p.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("like predicate on %q requires a string value", p.Field)
		}
		return fmt.Sprintf("%s LIKE ? ESCAPE '\\'", col), "%" + escapeLike(s) + "%", nil
	case OpLte:
		return fmt.Sprintf("%s <= ?", col), p.Value, nil
	default:
		return "", nil, fmt.Errorf("unknown predicate operator: %q", p.Op)
	}
}

// escapeLike escapes LIKE wildcards in user-derived terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// compileQuery turns a Query into one parameterized SELECT. Rows are ordered
// by how many Any clauses they satisfy (descending), then price ascending, so
// the scorer receives the most-matched candidates first.
func compileQuery(q Query) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)
	for _, p := range q.Any {
		sql, arg, err := compileClause(p)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, sql)
		args = append(args, arg)
	}

	matchExpr := "0"
	var matchArgs []any
	if len(clauses) > 0 {
		terms := make([]string, len(clauses))
		for i, c := range clauses {
			terms[i] = fmt.Sprintf("(CASE WHEN %s THEN 1 ELSE 0 END)", c)
		}
		matchExpr = strings.Join(terms, " + ")
		matchArgs = args
	}

	var (
		where     []string
		whereArgs []any
	)
	if len(clauses) > 0 && !q.Broad {
		where = append(where, "("+strings.Join(clauses, " OR ")+")")
		whereArgs = append(whereArgs, args...)
	}
	for _, p := range q.All {
		sql, arg, err := compileClause(p)
		if err != nil {
			return "", nil, err
		}
		where = append(where, sql)
		whereArgs = append(whereArgs, arg)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s,\n\t(%s) AS match_count\n", selectColumns, matchExpr)
	b.WriteString("FROM products p\nLEFT JOIN vision_attributes va ON va.sku = p.sku\n")
	if len(where) > 0 {
		b.WriteString("WHERE " + strings.Join(where, " AND ") + "\n")
	}
	b.WriteString("ORDER BY match_count DESC, p.price ASC, p.sku ASC\n")

	allArgs := append(append([]any{}, matchArgs...), whereArgs...)
	if q.Limit > 0 {
		b.WriteString("LIMIT ?")
		allArgs = append(allArgs, q.Limit)
	}

	return b.String(), allArgs, nil
}
