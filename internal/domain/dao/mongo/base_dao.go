// Package mongo provides MongoDB-based DAO implementations and the low-level
// helpers (filters, pipelines, instrumentation) shared with the native service.
package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// baseMongoDAO provides common MongoDB operations for typed document DAOs.
// D is the document struct stored in the collection.
type baseMongoDAO[D any] struct {
	db         *mongo.Database
	collection *mongo.Collection
	inst       *Instrumenter
}

// newBaseMongoDAO creates a new base MongoDB DAO instance.
func newBaseMongoDAO[D any](db *mongo.Database, collectionName string, inst *Instrumenter) *baseMongoDAO[D] {
	return &baseMongoDAO[D]{
		db:         db,
		collection: db.Collection(collectionName),
		inst:       inst,
	}
}

// count returns the count of documents matching the filter.
func (d *baseMongoDAO[D]) count(ctx context.Context, filter bson.D) (int64, error) {
	var n int64
	err := d.inst.Observe(ctx, "count", func(ctx context.Context) error {
		var err error
		n, err = d.collection.CountDocuments(ctx, filter)
		return err
	})
	return n, err
}

// findOne decodes the first document matching the filter.
// Returns nil, nil when nothing matches.
func (d *baseMongoDAO[D]) findOne(ctx context.Context, filter bson.D) (*D, error) {
	var doc D
	err := d.inst.Observe(ctx, "findOne", func(ctx context.Context) error {
		return d.collection.FindOne(ctx, filter).Decode(&doc)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// findMany decodes every document matching the filter.
func (d *baseMongoDAO[D]) findMany(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]*D, error) {
	docs := []*D{}
	err := d.inst.Observe(ctx, "find", func(ctx context.Context) error {
		cursor, err := d.collection.Find(ctx, filter, opts...)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &docs)
	})
	return docs, err
}

// insertOne inserts a single document and returns its generated ObjectID.
func (d *baseMongoDAO[D]) insertOne(ctx context.Context, doc *D) (primitive.ObjectID, error) {
	var id primitive.ObjectID
	err := d.inst.Observe(ctx, "insert", func(ctx context.Context) error {
		res, err := d.collection.InsertOne(ctx, doc)
		if err != nil {
			return err
		}
		id, _ = res.InsertedID.(primitive.ObjectID)
		return nil
	})
	return id, translateWriteError(err)
}

// replaceOne replaces the document matching the filter.
// Returns false when nothing matched.
func (d *baseMongoDAO[D]) replaceOne(ctx context.Context, filter bson.D, doc *D) (bool, error) {
	var matched int64
	err := d.inst.Observe(ctx, "replace", func(ctx context.Context) error {
		res, err := d.collection.ReplaceOne(ctx, filter, doc)
		if err != nil {
			return err
		}
		matched = res.MatchedCount
		return nil
	})
	return matched > 0, translateWriteError(err)
}

// deleteOne removes the document matching the filter.
// Returns false when nothing matched.
func (d *baseMongoDAO[D]) deleteOne(ctx context.Context, filter bson.D) (bool, error) {
	var deleted int64
	err := d.inst.Observe(ctx, "delete", func(ctx context.Context) error {
		res, err := d.collection.DeleteOne(ctx, filter)
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	return deleted > 0, err
}

// collectionExists checks the database's collection list for this collection.
func (d *baseMongoDAO[D]) collectionExists(ctx context.Context) (bool, error) {
	var names []string
	err := d.inst.Observe(ctx, "listCollections", func(ctx context.Context) error {
		var err error
		names, err = d.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: d.collection.Name()}})
		return err
	})
	return len(names) > 0, err
}
