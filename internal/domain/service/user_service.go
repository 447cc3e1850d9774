package service

import (
	"context"
	"net/http"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
	apperrors "github.com/jrjohn/docstore-users/pkg/errors"
)

// Variant names, used in routes, logs and metric labels.
const (
	VariantNative = "native"
	VariantMapped = "mapped"
)

// Error codes of the user data-access services.
const (
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeInvalidUserID  = "INVALID_USER_ID"
	CodeDuplicateEmail = "DUPLICATE_EMAIL"
	CodeDataAccess     = "DATA_ACCESS_ERROR"
)

var (
	ErrUserNotFound   = apperrors.New(CodeUserNotFound, "user not found", http.StatusNotFound)
	ErrInvalidUserID  = apperrors.New(CodeInvalidUserID, "invalid user id", http.StatusBadRequest)
	ErrDuplicateEmail = apperrors.New(CodeDuplicateEmail, "email already in use", http.StatusConflict)
	ErrDataAccess     = apperrors.New(CodeDataAccess, "data access failure", http.StatusInternalServerError)
	ErrNotImplemented = apperrors.ErrNotImplemented.WithMessage("operation not implemented yet")
)

// UserDataService defines the user operations offered by both data-access variants.
// Both implementations must be indistinguishable from the caller's side.
type UserDataService interface {
	// TestConnection reports whether the store is reachable
	TestConnection(ctx context.Context) (string, error)

	// CreateUser stores a new active user
	CreateUser(ctx context.Context, name, email, department, role string) (*entity.User, error)

	// FindUserByID retrieves a user by ID
	FindUserByID(ctx context.Context, id string) (*entity.User, error)

	// UpdateUser applies a partial update and returns the updated user
	UpdateUser(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)

	// DeleteUser hard-deletes a user. Returns false when nothing matched.
	DeleteUser(ctx context.Context, id string) (bool, error)

	// FindAll retrieves every user
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindUsersByDepartment retrieves users of one department
	FindUsersByDepartment(ctx context.Context, department string) ([]*entity.User, error)

	// SearchUsers returns one page of users matching the query
	SearchUsers(ctx context.Context, query entity.UserQuery) ([]*entity.User, error)

	// CountByDepartment counts users of one department
	CountByDepartment(ctx context.Context, department string) (int64, error)
}

// DepartmentStatsService computes per-department statistics.
type DepartmentStatsService interface {
	GetStatsByDepartment(ctx context.Context) ([]entity.DepartmentStats, error)
}
