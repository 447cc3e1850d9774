package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// testIDCounter is used to generate unique test IDs
var testIDCounter uint64

// TestConfig holds test configuration
type TestConfig struct {
	MongoURI string
	MongoDB  string
}

// DefaultTestConfig returns default test configuration
func DefaultTestConfig() TestConfig {
	mongoURI := os.Getenv("TEST_MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	mongoDB := os.Getenv("TEST_MONGO_DB")
	if mongoDB == "" {
		mongoDB = "teaching_db_test"
	}

	return TestConfig{
		MongoURI: mongoURI,
		MongoDB:  mongoDB,
	}
}

// NewTestLogger creates a test logger
func NewTestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// NewTestMongoDB creates a MongoDB connection for testing. Each call gets its
// own database, dropped on cleanup.
func NewTestMongoDB(t *testing.T, config TestConfig) (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.MongoURI).
		SetServerSelectionTimeout(3 * time.Second)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		t.Skipf("MongoDB ping failed: %v", err)
	}

	db := client.Database(fmt.Sprintf("%s_%d", config.MongoDB, atomic.AddUint64(&testIDCounter, 1)))

	t.Cleanup(func() {
		// Drop test database
		db.Drop(context.Background())
		client.Disconnect(context.Background())
	})

	return client, db
}

// SkipIfNoMongo skips the test if MongoDB is not available
func SkipIfNoMongo(t *testing.T) {
	config := DefaultTestConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.MongoURI).
		SetServerSelectionTimeout(2 * time.Second)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		t.Skip("MongoDB not available")
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		t.Skip("MongoDB not available")
	}
}

// SkipIfShort skips the test if running in short mode
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping in short mode")
	}
}
