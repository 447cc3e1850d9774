package dao

import (
	"context"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// UserDAO extends BaseDAO with user-specific data access operations.
type UserDAO interface {
	BaseDAO[entity.User, string]

	// FindByDepartment retrieves users whose department equals department exactly.
	FindByDepartment(ctx context.Context, department string) ([]*entity.User, error)

	// CountByDepartment counts users whose department equals department exactly.
	CountByDepartment(ctx context.Context, department string) (int64, error)

	// Search applies a normalized UserQuery and returns one page of matches.
	Search(ctx context.Context, query entity.UserQuery) ([]*entity.User, error)

	// CollectionExists reports whether the backing collection has been created.
	CollectionExists(ctx context.Context) (bool, error)

	// CollectionName returns the backing collection name.
	CollectionName() string
}
