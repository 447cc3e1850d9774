package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jrjohn/docstore-users/internal/domain/dao"
	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/document"
	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/mapper"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// userDAO implements dao.UserDAO using typed documents.
type userDAO struct {
	*baseMongoDAO[document.UserDocument]
	mapper *mapper.UserMapper
}

// NewUserDAO creates a new MongoDB-based UserDAO over the named collection.
// inst may be nil.
func NewUserDAO(db *mongo.Database, collectionName string, inst *Instrumenter) dao.UserDAO {
	if collectionName == "" {
		collectionName = document.UserDocument{}.CollectionName()
	}
	return &userDAO{
		baseMongoDAO: newBaseMongoDAO[document.UserDocument](db, collectionName, inst),
		mapper:       mapper.NewUserMapper(),
	}
}

// CollectionName returns the backing collection name.
func (d *userDAO) CollectionName() string {
	return d.collection.Name()
}

// Create inserts a new user and sets its ID from the store.
func (d *userDAO) Create(ctx context.Context, user *entity.User) error {
	doc := d.mapper.ToDocument(user)
	doc.ID = primitive.NilObjectID

	id, err := d.insertOne(ctx, doc)
	if err != nil {
		return err
	}
	user.ID = id.Hex()
	return nil
}

// FindByID retrieves a user by its hex ObjectID.
func (d *userDAO) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	doc, err := d.findOne(ctx, ByID(oid))
	if err != nil || doc == nil {
		return nil, err
	}
	return d.mapper.ToEntity(doc), nil
}

// Update replaces the stored user with user's current state.
func (d *userDAO) Update(ctx context.Context, user *entity.User) (bool, error) {
	oid, err := ParseObjectID(user.ID)
	if err != nil {
		return false, err
	}
	return d.replaceOne(ctx, ByID(oid), d.mapper.ToDocument(user))
}

// Delete hard-deletes a user.
func (d *userDAO) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := ParseObjectID(id)
	if err != nil {
		return false, err
	}
	return d.deleteOne(ctx, ByID(oid))
}

// FindAll retrieves every user in natural order.
func (d *userDAO) FindAll(ctx context.Context) ([]*entity.User, error) {
	docs, err := d.findMany(ctx, And())
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntities(docs), nil
}

// Count returns the total number of users.
func (d *userDAO) Count(ctx context.Context) (int64, error) {
	return d.count(ctx, And())
}

// FindByDepartment retrieves users in one department.
func (d *userDAO) FindByDepartment(ctx context.Context, department string) ([]*entity.User, error) {
	docs, err := d.findMany(ctx, ByDepartment(department))
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntities(docs), nil
}

// CountByDepartment counts users in one department.
func (d *userDAO) CountByDepartment(ctx context.Context, department string) (int64, error) {
	return d.count(ctx, ByDepartment(department))
}

// Search returns one page of users matching the query.
func (d *userDAO) Search(ctx context.Context, query entity.UserQuery) ([]*entity.User, error) {
	q := query.Normalize()
	docs, err := d.findMany(ctx, FilterFromQuery(q), FindOptionsFromQuery(q))
	if err != nil {
		return nil, err
	}
	return d.mapper.ToEntities(docs), nil
}

// CollectionExists reports whether the users collection exists.
func (d *userDAO) CollectionExists(ctx context.Context) (bool, error) {
	return d.collectionExists(ctx)
}
