package entity

import "strings"

// Paging and sorting defaults for UserQuery.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "name"
	SortAsc         = "ASC"
	SortDesc        = "DESC"
)

// SortableFields lists the user fields a search may sort on.
var SortableFields = []string{"name", "email", "department", "role", "active", "createdAt", "updatedAt"}

// UserQuery is a multi-criteria search with paging.
// Unset criteria do not constrain the result.
type UserQuery struct {
	Name          *string
	Department    *string
	Active        *bool
	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

// IsSortable reports whether field may be used in SortBy.
func IsSortable(field string) bool {
	for _, f := range SortableFields {
		if f == field {
			return true
		}
	}
	return false
}

// Normalize fills defaults and clamps out-of-range values.
func (q UserQuery) Normalize() UserQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	if !IsSortable(q.SortBy) {
		q.SortBy = DefaultSortBy
	}
	if strings.EqualFold(q.SortDirection, SortDesc) {
		q.SortDirection = SortDesc
	} else {
		q.SortDirection = SortAsc
	}
	if q.Name != nil && strings.TrimSpace(*q.Name) == "" {
		q.Name = nil
	}
	if q.Department != nil && strings.TrimSpace(*q.Department) == "" {
		q.Department = nil
	}
	return q
}

// Skip is the number of matches to pass over before the requested page.
func (q UserQuery) Skip() int64 {
	return int64(q.Page) * int64(q.Size)
}
