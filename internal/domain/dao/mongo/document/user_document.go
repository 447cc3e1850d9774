// Package document defines MongoDB document structs for persistence.
// These structs are separate from domain entities so storage field names and
// BSON types can evolve without touching the entity.
package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage field names in the users collection.
const (
	FieldID         = "_id"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldDepartment = "department"
	FieldRole       = "role"
	FieldActive     = "active"
	FieldCreatedAt  = "createdAt"
	FieldUpdatedAt  = "updatedAt"
)

// UserDocument represents a user in MongoDB.
// Active is a pointer so a document written without the field can be told
// apart from an explicitly inactive user.
type UserDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Department string             `bson:"department"`
	Role       string             `bson:"role"`
	Active     *bool              `bson:"active,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// CollectionName returns the default MongoDB collection name for users.
func (UserDocument) CollectionName() string {
	return "users"
}

// IsActive reports the stored flag, treating a missing field as active.
func (d *UserDocument) IsActive() bool {
	return d.Active == nil || *d.Active
}

// DepartmentStatsDocument is one row produced by the department aggregation.
type DepartmentStatsDocument struct {
	Department  string `bson:"_id"`
	TotalUsers  int64  `bson:"totalUsers"`
	ActiveUsers int64  `bson:"activeUsers"`
}
