// Package querybuilder turns raw request query parameters into a scoped
// gorm query: search, filtering, sorting, pagination and field projection
// over a whitelisted column set. Listing endpoints for parcels and users
// share this one implementation.
package querybuilder

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// reserved query keys consumed by the builder itself; everything else is
// treated as a field filter.
var reservedKeys = map[string]bool{
	"searchTerm": true,
	"page":       true,
	"limit":      true,
	"sort":       true,
	"fields":     true,
}

// Meta is the pagination envelope returned alongside a page of results.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Builder accumulates query scopes over a table. The zero value is not
// usable; create instances with New.
//
// The builder keeps two queries in sync: the result query, which receives
// every scope, and a filter-only clone used by Meta to count the total
// without sort, pagination or projection.
type Builder struct {
	query   *gorm.DB
	counter *gorm.DB
	params  map[string]string
	columns map[string]string
	page    int
	limit   int
}

// New creates a Builder over db for the given request parameters.
// columns whitelists the external field names callers may search, filter,
// sort and project by, mapping each to its database column. Unknown field
// names are ignored rather than rejected.
func New(db *gorm.DB, params map[string]string, columns map[string]string) *Builder {
	page := parseBounded(params["page"], DefaultPage, 1, math.MaxInt32)
	limit := parseBounded(params["limit"], DefaultLimit, 1, MaxLimit)

	return &Builder{
		query:   db.Session(&gorm.Session{}),
		counter: db.Session(&gorm.Session{}),
		params:  params,
		columns: columns,
		page:    page,
		limit:   limit,
	}
}

// Search applies a case-insensitive substring match of the searchTerm
// parameter over the given external field names, OR-combined. Fields not
// in the column whitelist are skipped. Without a searchTerm this is a
// no-op.
func (b *Builder) Search(fields ...string) *Builder {
	term := strings.TrimSpace(b.params["searchTerm"])
	if term == "" {
		return b
	}

	var clauses []string
	var args []any
	for _, field := range fields {
		column, ok := b.columns[field]
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s ILIKE ?", column))
		args = append(args, "%"+term+"%")
	}
	if len(clauses) == 0 {
		return b
	}

	condition := strings.Join(clauses, " OR ")
	b.query = b.query.Where(condition, args...)
	b.counter = b.counter.Where(condition, args...)
	return b
}

// Filter applies equality filters for every non-reserved parameter whose
// name is in the column whitelist.
func (b *Builder) Filter() *Builder {
	for key, value := range b.params {
		if reservedKeys[key] || value == "" {
			continue
		}
		column, ok := b.columns[key]
		if !ok {
			continue
		}
		b.query = b.query.Where(fmt.Sprintf("%s = ?", column), value)
		b.counter = b.counter.Where(fmt.Sprintf("%s = ?", column), value)
	}
	return b
}

// Sort orders the result by the sort parameter: a whitelisted field name,
// optionally prefixed with "-" for descending. Defaults to newest first.
func (b *Builder) Sort() *Builder {
	order := "created_at DESC"

	if sort := strings.TrimSpace(b.params["sort"]); sort != "" {
		direction := "ASC"
		field := sort
		if strings.HasPrefix(sort, "-") {
			direction = "DESC"
			field = sort[1:]
		}
		if column, ok := b.columns[field]; ok {
			order = fmt.Sprintf("%s %s", column, direction)
		}
	}

	b.query = b.query.Order(order)
	return b
}

// Paginate applies the page/limit window.
func (b *Builder) Paginate() *Builder {
	b.query = b.query.Offset((b.page - 1) * b.limit).Limit(b.limit)
	return b
}

// Fields projects the result to the comma-separated fields parameter.
// Unknown field names are dropped; an empty resolved set keeps the full
// row so a bogus projection cannot produce an invalid statement.
func (b *Builder) Fields() *Builder {
	raw := strings.TrimSpace(b.params["fields"])
	if raw == "" {
		return b
	}

	var selected []string
	for _, field := range strings.Split(raw, ",") {
		if column, ok := b.columns[strings.TrimSpace(field)]; ok {
			selected = append(selected, column)
		}
	}
	if len(selected) > 0 {
		b.query = b.query.Select(selected)
	}
	return b
}

// Build returns the fully scoped result query.
func (b *Builder) Build() *gorm.DB {
	return b.query
}

// Meta counts the filtered total on the filter-only query and derives the
// pagination envelope.
func (b *Builder) Meta(ctx context.Context) (Meta, error) {
	var total int64
	if err := b.counter.WithContext(ctx).Count(&total).Error; err != nil {
		return Meta{}, err
	}

	return Meta{
		Page:       b.page,
		Limit:      b.limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(b.limit))),
	}, nil
}

func parseBounded(raw string, fallback, low, high int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < low {
		return fallback
	}
	if value > high {
		return high
	}
	return value
}
