package repository

import "strings"

// Pageable carries offset/limit pagination and sort for list queries
type Pageable struct {
	Page int
	Size int
	Sort string
}

// sortableColumns is the set of columns list endpoints may sort by.
// Sort input is matched against this before it reaches the ORDER BY
// clause; anything else falls back to the default sort.
var sortableColumns = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"code":             true,
	"name":             true,
	"email":            true,
	"first_name":       true,
	"last_name":        true,
	"display_order":    true,
	"min_points":       true,
	"total_points":     true,
	"transaction_type": true,
	"setting_key":      true,
	"category":         true,
	"effective_from":   true,
	"price":            true,
}

// Offset returns the row offset for the page
func (p Pageable) Offset() int {
	if p.Page < 0 {
		return 0
	}
	return p.Page * p.Limit()
}

// Limit returns the page size, defaulting to 20 and capping at 100
func (p Pageable) Limit() int {
	if p.Size <= 0 {
		return 20
	}
	if p.Size > 100 {
		return 100
	}
	return p.Size
}

// Order returns a safe sort expression built from Sort, which takes
// the form "column" or "column,desc". Columns outside sortableColumns
// fall back to newest-first, so raw caller input never reaches the SQL.
func (p Pageable) Order() string {
	column, direction, _ := strings.Cut(p.Sort, ",")
	column = strings.TrimSpace(column)
	if !sortableColumns[column] {
		return "created_at desc"
	}
	if strings.EqualFold(strings.TrimSpace(direction), "desc") {
		return column + " desc"
	}
	return column + " asc"
}

// Page is a paginated result with navigation metadata
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage builds a Page from query results and the total row count
func NewPage[T any](content []T, pageable Pageable, total int64) Page[T] {
	size := pageable.Limit()
	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}
	return Page[T]{
		Content:       content,
		Page:          pageable.Page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
