// Package mapper provides conversion functions between domain entities and MongoDB documents.
package mapper

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/document"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// UserMapper converts between User entity and UserDocument.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDocument converts a User entity to a UserDocument.
// An empty or malformed ID maps to the zero ObjectID, which the store replaces on insert.
func (m *UserMapper) ToDocument(user *entity.User) *document.UserDocument {
	if user == nil {
		return nil
	}

	active := user.Active
	doc := &document.UserDocument{
		Name:       user.Name,
		Email:      user.Email,
		Department: user.Department,
		Role:       user.Role,
		Active:     &active,
		CreatedAt:  entity.Timestamp(user.CreatedAt),
		UpdatedAt:  entity.Timestamp(user.UpdatedAt),
	}
	if oid, err := primitive.ObjectIDFromHex(user.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

// ToEntity converts a UserDocument to a User entity.
func (m *UserMapper) ToEntity(doc *document.UserDocument) *entity.User {
	if doc == nil {
		return nil
	}

	user := &entity.User{
		Name:       doc.Name,
		Email:      doc.Email,
		Department: doc.Department,
		Role:       doc.Role,
		Active:     doc.IsActive(),
		CreatedAt:  entity.Timestamp(doc.CreatedAt),
		UpdatedAt:  entity.Timestamp(doc.UpdatedAt),
	}
	if !doc.ID.IsZero() {
		user.ID = doc.ID.Hex()
	}
	return user
}

// ToEntities converts a slice of UserDocument to a slice of User entities.
// The result is never nil.
func (m *UserMapper) ToEntities(docs []*document.UserDocument) []*entity.User {
	users := make([]*entity.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, m.ToEntity(doc))
	}
	return users
}

// StatsToEntities converts aggregation rows to DepartmentStats.
func StatsToEntities(rows []document.DepartmentStatsDocument) []entity.DepartmentStats {
	stats := make([]entity.DepartmentStats, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, entity.NewDepartmentStats(row.Department, row.TotalUsers, row.ActiveUsers))
	}
	return stats
}
