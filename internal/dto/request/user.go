package request

import (
	"strings"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// CreateUserRequest represents a user creation request
type CreateUserRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=50"`
	Email      string `json:"email" binding:"required,email,max=100"`
	Department string `json:"department" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

// UpdateUserRequest is a partial update; absent fields keep their value.
type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=2,max=50"`
	Email      *string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	Department *string `json:"department,omitempty" binding:"omitempty,min=1"`
	Role       *string `json:"role,omitempty" binding:"omitempty,min=1"`
	Active     *bool   `json:"active,omitempty"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateUserRequest) ToPatch() entity.UserPatch {
	return entity.UserPatch{
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
		Role:       r.Role,
		Active:     r.Active,
	}
}

// SearchUsersRequest represents a paginated user search
type SearchUsersRequest struct {
	Name          *string `json:"name,omitempty"`
	Department    *string `json:"department,omitempty"`
	Active        *bool   `json:"active,omitempty"`
	Page          *int    `json:"page,omitempty" binding:"omitempty,min=0"`
	Size          *int    `json:"size,omitempty" binding:"omitempty,min=1,max=100"`
	SortBy        string  `json:"sortBy,omitempty" binding:"omitempty,oneof=name email department role active createdAt updatedAt"`
	SortDirection string  `json:"sortDirection,omitempty" binding:"omitempty,oneof=ASC DESC asc desc"`
}

// ToQuery converts the request into a domain query. Defaults are filled in by
// the services.
func (r SearchUsersRequest) ToQuery() entity.UserQuery {
	q := entity.UserQuery{
		Name:          r.Name,
		Department:    r.Department,
		Active:        r.Active,
		SortBy:        r.SortBy,
		SortDirection: strings.ToUpper(r.SortDirection),
	}
	if r.Page != nil {
		q.Page = *r.Page
	}
	if r.Size != nil {
		q.Size = *r.Size
	}
	return q
}
