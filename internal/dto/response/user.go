package response

import (
	"time"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// UserResponse represents a user in API responses
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FromUser converts an entity to its response form.
func FromUser(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Department: user.Department,
		Role:       user.Role,
		Active:     user.Active,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// FromUsers converts a list, returning an empty slice for none so the JSON is [] not null.
func FromUsers(users []*entity.User) []UserResponse {
	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, FromUser(u))
	}
	return items
}

// DepartmentStatsResponse is one row of the department statistics.
type DepartmentStatsResponse struct {
	Department    string `json:"department"`
	TotalUsers    int64  `json:"totalUsers"`
	ActiveUsers   int64  `json:"activeUsers"`
	InactiveUsers int64  `json:"inactiveUsers"`
}

// FromDepartmentStats converts aggregation rows, keeping their order.
func FromDepartmentStats(stats []entity.DepartmentStats) []DepartmentStatsResponse {
	items := make([]DepartmentStatsResponse, 0, len(stats))
	for _, s := range stats {
		items = append(items, DepartmentStatsResponse(s))
	}
	return items
}
