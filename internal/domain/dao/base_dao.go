// Package dao defines data access object interfaces for database abstraction.
// The DAO layer separates repository logic from the store-specific
// implementation in dao/mongo.
package dao

import (
	"context"
	"errors"
)

// Errors reported by every DAO implementation.
var (
	// ErrInvalidID is returned when an identifier is not in the store's id format.
	ErrInvalidID = errors.New("invalid id")

	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// BaseDAO defines common CRUD operations for all DAOs.
// T is the entity type, ID is the identifier type.
type BaseDAO[T any, ID comparable] interface {
	// Create inserts a new entity and sets its store-assigned ID.
	Create(ctx context.Context, entity *T) error

	// FindByID retrieves an entity by its primary key.
	// Returns nil, nil if the entity is not found.
	FindByID(ctx context.Context, id ID) (*T, error)

	// Update replaces the stored entity with the same ID.
	// Returns false when no entity has that ID.
	Update(ctx context.Context, entity *T) (bool, error)

	// Delete removes an entity by its ID.
	// Returns false when no entity has that ID.
	Delete(ctx context.Context, id ID) (bool, error)

	// FindAll retrieves every entity in store order.
	FindAll(ctx context.Context) ([]*T, error)

	// Count returns the total number of entities.
	Count(ctx context.Context) (int64, error)
}
