// Package impl provides repository implementations that delegate to the DAO layer.
// Repositories keep the service's vocabulary while DAOs handle store-specific
// operations.
package impl

import (
	"context"

	"github.com/jrjohn/docstore-users/internal/domain/dao"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
	"github.com/jrjohn/docstore-users/internal/domain/repository"
)

// userRepository implements repository.UserRepository by delegating to UserDAO.
type userRepository struct {
	dao dao.UserDAO
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(userDAO dao.UserDAO) repository.UserRepository {
	return &userRepository{dao: userDAO}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.dao.Create(ctx, user)
}

// GetByID retrieves a user by their ID.
func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.dao.FindByID(ctx, id)
}

// Update replaces an existing user.
func (r *userRepository) Update(ctx context.Context, user *entity.User) (bool, error) {
	return r.dao.Update(ctx, user)
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.dao.Delete(ctx, id)
}

// List retrieves every user.
func (r *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	return r.dao.FindAll(ctx)
}

// ListByDepartment retrieves users of one department.
func (r *userRepository) ListByDepartment(ctx context.Context, department string) ([]*entity.User, error) {
	return r.dao.FindByDepartment(ctx, department)
}

// CountByDepartment counts users of one department.
func (r *userRepository) CountByDepartment(ctx context.Context, department string) (int64, error) {
	return r.dao.CountByDepartment(ctx, department)
}

// Search returns one page of matching users.
func (r *userRepository) Search(ctx context.Context, query entity.UserQuery) ([]*entity.User, error) {
	return r.dao.Search(ctx, query)
}

// Count returns the number of stored users.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return r.dao.Count(ctx)
}

// CollectionExists reports whether the backing collection exists.
func (r *userRepository) CollectionExists(ctx context.Context) (bool, error) {
	return r.dao.CollectionExists(ctx)
}

// CollectionName returns the backing collection name.
func (r *userRepository) CollectionName() string {
	return r.dao.CollectionName()
}
