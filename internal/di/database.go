package di

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"go.opentelemetry.io/otel/codes"

	"github.com/jrjohn/docstore-users/internal/config"
	"github.com/jrjohn/docstore-users/internal/observability"
	"github.com/jrjohn/docstore-users/internal/seed"
)

// MongoDatabase wraps the shared client and the configured database.
type MongoDatabase struct {
	DB     *mongo.Database
	Client *mongo.Client
}

// Users returns the configured users collection.
func (m *MongoDatabase) Users(cfg *config.DatabaseConfig) *mongo.Collection {
	return m.DB.Collection(cfg.Collection)
}

// Ping checks the primary is reachable.
func (m *MongoDatabase) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// DatabaseModule provides the MongoDB connection and prepares the users collection.
var DatabaseModule = fx.Module("database",
	fx.Provide(provideMongoDatabase),
	fx.Invoke(initializeCollection),
)

// provideMongoDatabase connects and pings MongoDB.
func provideMongoDatabase(lc fx.Lifecycle, cfg *config.DatabaseConfig, logger *zap.Logger) (*MongoDatabase, error) {
	logger.Info("Connecting to MongoDB",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.Bool("uri_override", cfg.URI != ""),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})

	return &MongoDatabase{DB: client.Database(cfg.Name), Client: client}, nil
}

// initializeCollection creates indexes and, when enabled, seeds sample users on start.
func initializeCollection(
	lc fx.Lifecycle,
	mongoDB *MongoDatabase,
	cfg *config.Config,
	tracing *observability.TracingProvider,
	logger *zap.Logger,
) {
	initializer := seed.NewInitializer(mongoDB.Users(&cfg.Database), nil, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, span := tracing.StartSpan(ctx, "startup.initialize-collection")
			defer span.End()

			if err := initializer.Run(ctx, cfg.Seed.Enabled); err != nil {
				observability.SetSpanStatus(ctx, codes.Error, err.Error())
				return err
			}
			return nil
		},
	})
}
