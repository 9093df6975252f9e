// Package apifilter translates request query strings into store operations
// on a chainable gorm query: filtering, sorting, field projection, full-text
// search and pagination, applied in that fixed order. Nothing executes until
// the caller materializes the query.
package apifilter

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	defaultSort  = "posting_date DESC"
)

// Parameters that drive pipeline stages and must never become filters.
var reservedParams = map[string]bool{
	"sort":   true,
	"fields": true,
	"q":      true,
	"limit":  true,
	"page":   true,
}

// Comparison tokens allowed in bracket keys, mapped to SQL operators. Keys
// outside this list are dropped rather than interpolated.
var operators = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
	"in":  "IN",
}

// Condition is one WHERE clause derived from a query parameter.
type Condition struct {
	Column   string
	Operator string
	Value    interface{}
}

// Filter builds a query from request parameters.
type Filter struct {
	params url.Values
}

// New creates a Filter over the given query parameters.
func New(params url.Values) *Filter {
	return &Filter{params: params}
}

// Apply chains all five stages onto the base query in order.
func (f *Filter) Apply(db *gorm.DB) *gorm.DB {
	for _, cond := range f.Conditions() {
		if cond.Operator == "IN" {
			db = db.Where(cond.Column+" IN ?", cond.Value)
		} else {
			db = db.Where(cond.Column+" "+cond.Operator+" ?", cond.Value)
		}
	}

	for _, order := range f.OrderClauses() {
		db = db.Order(order)
	}

	if fields := f.SelectedFields(); len(fields) > 0 {
		db = db.Select(fields)
	}

	if phrase, ok := f.SearchPhrase(); ok {
		db = db.Where(
			"to_tsvector('english', coalesce(title,'') || ' ' || coalesce(description,'')) @@ phraseto_tsquery('english', ?)",
			phrase,
		)
	}

	_, limit, offset := f.Pagination()
	return db.Offset(offset).Limit(limit)
}

// Conditions returns the WHERE clauses for every non-reserved parameter.
// Bare keys become equality checks; field[op] keys use the operator
// allow-list. Column names are normalized to snake_case and must be plain
// identifiers; anything else is skipped. Unknown but well-formed columns are
// passed through for the store to reject.
func (f *Filter) Conditions() []Condition {
	var conds []Condition
	for _, key := range sortedKeys(f.params) {
		if reservedParams[key] {
			continue
		}

		value := f.params.Get(key)
		field, op := splitBracketKey(key)
		column := toSnake(field)
		if !validIdent(column) {
			continue
		}

		if op == "" {
			conds = append(conds, Condition{Column: column, Operator: "=", Value: coerce(value)})
			continue
		}

		sqlOp, ok := operators[op]
		if !ok {
			continue
		}
		if sqlOp == "IN" {
			parts := strings.Split(value, ",")
			vals := make([]interface{}, 0, len(parts))
			for _, p := range parts {
				vals = append(vals, coerce(p))
			}
			conds = append(conds, Condition{Column: column, Operator: "IN", Value: vals})
			continue
		}
		conds = append(conds, Condition{Column: column, Operator: sqlOp, Value: coerce(value)})
	}
	return conds
}

// OrderClauses returns the compound sort key, first field highest priority.
// A leading '-' means descending. Defaults to newest postings first.
func (f *Filter) OrderClauses() []string {
	raw := f.params.Get("sort")
	if raw == "" {
		return []string{defaultSort}
	}

	var clauses []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		dir := "ASC"
		if strings.HasPrefix(item, "-") {
			dir = "DESC"
			item = item[1:]
		}
		column := toSnake(item)
		if !validIdent(column) {
			continue
		}
		clauses = append(clauses, column+" "+dir)
	}
	if len(clauses) == 0 {
		return []string{defaultSort}
	}
	return clauses
}

// SelectedFields returns the inclusion projection, or nil for all columns.
func (f *Filter) SelectedFields() []string {
	raw := f.params.Get("fields")
	if raw == "" {
		return nil
	}

	var fields []string
	for _, item := range strings.Split(raw, ",") {
		column := toSnake(strings.TrimSpace(item))
		if validIdent(column) {
			fields = append(fields, column)
		}
	}
	return fields
}

// SearchPhrase returns the whole-phrase search text with hyphens treated as
// word separators.
func (f *Filter) SearchPhrase() (string, bool) {
	raw := f.params.Get("q")
	if raw == "" {
		return "", false
	}
	return strings.ReplaceAll(raw, "-", " "), true
}

// Pagination returns page, limit and the computed skip offset. Non-numeric
// or non-positive values fall back to the defaults. The limit is unbounded
// above by design; callers absorbing untrusted traffic should cap it.
func (f *Filter) Pagination() (page, limit, offset int) {
	page = atoiOr(f.params.Get("page"), defaultPage)
	if page < 1 {
		page = defaultPage
	}
	limit = atoiOr(f.params.Get("limit"), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// splitBracketKey splits "salary[gte]" into ("salary", "gte"). A key without
// brackets returns an empty operator.
func splitBracketKey(key string) (field, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

// coerce turns numeric-looking values into numbers so comparisons hit the
// store with the right type.
func coerce(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		return fl
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// toSnake converts camelCase parameter names to snake_case columns.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// validIdent reports whether s is a plain snake_case identifier, the only
// shape ever interpolated into SQL.
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return false
	}
	return true
}

func sortedKeys(params url.Values) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	// Deterministic clause order keeps generated SQL stable.
	sort.Strings(keys)
	return keys
}
