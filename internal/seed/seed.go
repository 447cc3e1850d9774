// Package seed prepares the users collection at startup: it creates the
// indexes the services rely on and loads sample users into an empty collection.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/document"
	"github.com/jrjohn/docstore-users/internal/domain/dao/mongo/mapper"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

//go:embed users.yaml
var defaultFixtures []byte

// Fixture is one sample user. Active defaults to true when omitted.
type Fixture struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Department string `yaml:"department"`
	Role       string `yaml:"role"`
	Active     *bool  `yaml:"active"`
}

type fixtureFile struct {
	Users []Fixture `yaml:"users"`
}

// ParseFixtures decodes a fixture file.
func ParseFixtures(data []byte) ([]Fixture, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	for i, u := range f.Users {
		if u.Name == "" || u.Email == "" {
			return nil, fmt.Errorf("fixture %d: name and email are required", i)
		}
	}
	return f.Users, nil
}

// DefaultFixtures returns the embedded sample users.
func DefaultFixtures() []Fixture {
	users, err := ParseFixtures(defaultFixtures)
	if err != nil {
		panic(err)
	}
	return users
}

// Users converts fixtures to entities stamped with now.
func Users(fixtures []Fixture, now time.Time) []*entity.User {
	users := make([]*entity.User, 0, len(fixtures))
	for _, f := range fixtures {
		u := entity.NewUser(f.Name, f.Email, f.Department, f.Role, now)
		if f.Active != nil {
			u.Active = *f.Active
		}
		users = append(users, u)
	}
	return users
}

// IndexModels returns the indexes of the users collection.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: document.FieldEmail, Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: document.FieldDepartment, Value: 1}},
		},
		{
			Keys: bson.D{{Key: document.FieldName, Value: 1}},
		},
	}
}

// Initializer creates indexes and loads fixtures.
type Initializer struct {
	collection *mongo.Collection
	fixtures   []Fixture
	logger     *zap.Logger
	now        func() time.Time
}

// NewInitializer creates an Initializer for collection. A nil fixtures slice
// selects the embedded defaults.
func NewInitializer(collection *mongo.Collection, fixtures []Fixture, logger *zap.Logger) *Initializer {
	if fixtures == nil {
		fixtures = DefaultFixtures()
	}
	return &Initializer{
		collection: collection,
		fixtures:   fixtures,
		logger:     logger,
		now:        time.Now,
	}
}

// EnsureIndexes creates the users indexes. Existing identical indexes are left alone.
func (i *Initializer) EnsureIndexes(ctx context.Context) error {
	names, err := i.collection.Indexes().CreateMany(ctx, IndexModels())
	if err != nil {
		i.logger.Error("Failed to create user indexes", zap.Error(err))
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	i.logger.Info("MongoDB indexes ready",
		zap.String("collection", i.collection.Name()),
		zap.Strings("indexes", names),
	)
	return nil
}

// Seed inserts the fixtures when the collection is empty and returns how many
// users were inserted.
func (i *Initializer) Seed(ctx context.Context) (int, error) {
	n, err := i.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		i.logger.Info("Collection not empty, skipping seed", zap.Int64("users", n))
		return 0, nil
	}
	if len(i.fixtures) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(i.fixtures))
	for _, u := range Users(i.fixtures, i.now()) {
		docs = append(docs, mapper.ToBSON(u))
	}

	res, err := i.collection.InsertMany(ctx, docs)
	if err != nil {
		i.logger.Error("Failed to seed users", zap.Error(err))
		return 0, fmt.Errorf("failed to seed users: %w", err)
	}
	i.logger.Info("Sample users loaded", zap.Int("count", len(res.InsertedIDs)))
	return len(res.InsertedIDs), nil
}

// Run creates indexes, then seeds when seedData is true.
func (i *Initializer) Run(ctx context.Context, seedData bool) error {
	if err := i.EnsureIndexes(ctx); err != nil {
		return err
	}
	if !seedData {
		return nil
	}
	_, err := i.Seed(ctx)
	return err
}
