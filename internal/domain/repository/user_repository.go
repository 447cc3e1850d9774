package repository

import (
	"context"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// UserRepository is the mapped variant's view of stored users.
type UserRepository interface {
	// Create stores a new user and sets its ID
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// Update replaces a stored user. Returns false when absent.
	Update(ctx context.Context, user *entity.User) (bool, error)

	// Delete hard-deletes a user. Returns false when absent.
	Delete(ctx context.Context, id string) (bool, error)

	// List retrieves every user
	List(ctx context.Context) ([]*entity.User, error)

	// ListByDepartment retrieves users of one department
	ListByDepartment(ctx context.Context, department string) ([]*entity.User, error)

	// CountByDepartment counts users of one department
	CountByDepartment(ctx context.Context, department string) (int64, error)

	// Search returns one page of users matching the query
	Search(ctx context.Context, query entity.UserQuery) ([]*entity.User, error)

	// Count returns the number of stored users
	Count(ctx context.Context) (int64, error)

	// CollectionExists reports whether the backing collection exists
	CollectionExists(ctx context.Context) (bool, error)

	// CollectionName returns the backing collection name
	CollectionName() string
}
